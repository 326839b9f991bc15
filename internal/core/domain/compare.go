package domain

// CompareStatus is the relationship reported when comparing a base commit to a head commit.
type CompareStatus string

// Statuses returned by a base...head comparison.
const (
	// CompareAhead means head contains base plus further commits.
	CompareAhead CompareStatus = "ahead"
	// CompareBehind means head is an ancestor of base.
	CompareBehind CompareStatus = "behind"
	// CompareIdentical means base and head are the same commit.
	CompareIdentical CompareStatus = "identical"
	// CompareDiverged means each side has commits the other lacks.
	CompareDiverged CompareStatus = "diverged"
)

// Includes reports whether a comparison of base=subject, head=target shows
// the target containing the subject: the target is the subject itself or
// strictly derived from it. Every other status, including an empty one, is false.
func (s CompareStatus) Includes() bool {
	return s == CompareAhead || s == CompareIdentical
}
