package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies what a user supplied reference points at.
type Kind uint8

const (
	// KindUnknown is an input that matched no recognizable shape.
	KindUnknown Kind = iota
	// KindCommit is a 7 to 40 character hexadecimal commit hash.
	KindCommit
	// KindPullRequest is a pull request recognized from its URL.
	KindPullRequest
	// KindIssue is an issue recognized from its URL.
	KindIssue
	// KindAmbiguous is a bare number that may name either a pull request or an issue.
	KindAmbiguous
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCommit:
		return "commit"
	case KindPullRequest:
		return "pull_request"
	case KindIssue:
		return "issue"
	case KindAmbiguous:
		return "ambiguous"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Numbered reports whether references of this kind carry a pull request or issue number.
func (k Kind) Numbered() bool {
	return k == KindPullRequest || k == KindIssue || k == KindAmbiguous
}

// Reference is the classified form of a free-form query.
//
// Exactly one of SHA or Number is meaningful, depending on Kind. Unknown
// references keep only the original input.
type Reference struct {
	Kind   Kind
	SHA    string
	Number int
	Raw    string
}

// maxAmbiguousDigits is the longest all-digit input still read as a number.
// Longer all-digit strings cannot be a pull request or issue and are read as commits.
const maxAmbiguousDigits = 10

var (
	commitPattern    = regexp.MustCompile(`^[0-9a-fA-F]{7,40}$`)
	commitURLPattern = regexp.MustCompile(`/commits?/([0-9a-fA-F]{7,40})(?:[/?#]|$)`)
	pullURLPattern   = regexp.MustCompile(`/pulls?/(\d+)(?:[/?#]|$)`)
	issueURLPattern  = regexp.MustCompile(`/issues/(\d+)(?:[/?#]|$)`)
	numberPattern    = regexp.MustCompile(`^#?(\d+)$`)
)

// Classify maps a free-form string to a Reference. It is pure and total:
// every input yields exactly one kind.
//
// Rules are applied in priority order: bare hash, commit URL, pull request
// URL, issue URL, bare or #-prefixed number. A commit link inside a pull
// request (/pull/<n>/commits/<sha>) names the pull request. A string made only
// of decimal digits is a number unless it is too long to be one.
func Classify(input string) Reference {
	s := strings.TrimSpace(input)
	ref := Reference{Kind: KindUnknown, Raw: s}
	if s == "" {
		return ref
	}

	if commitPattern.MatchString(s) && !looksNumeric(s) {
		ref.Kind = KindCommit
		ref.SHA = strings.ToLower(s)
		return ref
	}

	if m := commitURLPattern.FindStringSubmatch(s); m != nil && !pullURLPattern.MatchString(s) {
		ref.Kind = KindCommit
		ref.SHA = strings.ToLower(m[1])
		return ref
	}

	if n, ok := matchNumber(pullURLPattern, s); ok {
		ref.Kind = KindPullRequest
		ref.Number = n
		return ref
	}

	if n, ok := matchNumber(issueURLPattern, s); ok {
		ref.Kind = KindIssue
		ref.Number = n
		return ref
	}

	if n, ok := matchNumber(numberPattern, s); ok {
		ref.Kind = KindAmbiguous
		ref.Number = n
		return ref
	}

	return ref
}

// looksNumeric reports whether s is short enough and decimal enough to be read as a number.
func looksNumeric(s string) bool {
	if len(s) > maxAmbiguousDigits {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func matchNumber(pattern *regexp.Regexp, s string) (int, bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
