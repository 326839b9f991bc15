package domain

import "strconv"

// NoReleasesAgo is rendered when no release includes the commit.
const NoReleasesAgo = "—"

// Inclusion is the earliest release on a channel whose build contains a commit.
type Inclusion struct {
	Commit  string
	Release Release
	Index   int
}

// ReleasesAgo returns how many releases separate the first including release
// from the latest one. It returns NoReleasesAgo when first is nil.
func ReleasesAgo(latestIndex int, first *int) string {
	if first == nil {
		return NoReleasesAgo
	}
	return strconv.Itoa(latestIndex - *first)
}
