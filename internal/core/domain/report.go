package domain

import "strconv"

// ChannelStatus is the per-channel line of a report.
type ChannelStatus struct {
	Channel       string  `json:"channel"`
	LatestVersion string  `json:"latest_version"`
	Included      bool    `json:"included"`
	FirstVersion  *string `json:"first_version"`
	FirstDate     *string `json:"first_date"`
	ReleasesAgo   *int    `json:"releases_ago"`
	// MatchedCommit is the candidate commit that produced the inclusion.
	MatchedCommit string `json:"matched_commit,omitempty"`
}

// ReleasesAgoLabel renders ReleasesAgo for display.
func (c ChannelStatus) ReleasesAgoLabel() string {
	if c.ReleasesAgo == nil {
		return NoReleasesAgo
	}
	return strconv.Itoa(*c.ReleasesAgo)
}

// Subject describes the pull request or issue a numbered reference resolved to.
type Subject struct {
	Number        int    `json:"number"`
	Title         string `json:"title"`
	State         string `json:"state"`
	URL           string `json:"url"`
	IsPullRequest bool   `json:"is_pull_request"`
}

// Resolution is the outcome of resolving a query to candidate commits.
type Resolution struct {
	Query   string   `json:"query"`
	Kind    Kind     `json:"type"`
	Commits []string `json:"commits"`
	Subject *Subject `json:"subject,omitempty"`
}

// Report is the full answer to a query: its resolution plus one status per channel.
type Report struct {
	Resolution
	Channels []ChannelStatus `json:"channels"`
}

// CommitReport answers a direct commit check without any resolution step.
type CommitReport struct {
	Commit   string          `json:"commit"`
	Channels []ChannelStatus `json:"channels"`
}

// Reported reports whether at least one candidate commit exists to evaluate.
func (r *Resolution) Reported() bool {
	return r != nil && len(r.Commits) > 0
}
