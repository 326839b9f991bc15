package domain

// Timeline event names consulted when resolving an issue.
const (
	EventClosed          = "closed"
	EventCrossReferenced = "cross-referenced"
)

// TimelineEvent is the subset of an issue timeline entry needed to find a fix.
type TimelineEvent struct {
	Event    string
	CommitID string
	// SourceNumber is the number of the issue or pull request that referenced this one.
	SourceNumber int
	// SourceIsPullRequest is set when the referencing item is a pull request.
	SourceIsPullRequest bool
}

// ClosingCommit returns the commit of the first closed event that names one.
func ClosingCommit(events []TimelineEvent) (string, bool) {
	for _, e := range events {
		if e.Event == EventClosed && e.CommitID != "" {
			return e.CommitID, true
		}
	}
	return "", false
}

// LinkedPullRequests returns the numbers of cross-referencing pull requests in timeline order.
func LinkedPullRequests(events []TimelineEvent) []int {
	var out []int
	seen := make(map[int]struct{})
	for _, e := range events {
		if e.Event != EventCrossReferenced || !e.SourceIsPullRequest || e.SourceNumber <= 0 {
			continue
		}
		if _, ok := seen[e.SourceNumber]; ok {
			continue
		}
		seen[e.SourceNumber] = struct{}{}
		out = append(out, e.SourceNumber)
	}
	return out
}
