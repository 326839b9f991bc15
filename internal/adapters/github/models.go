package github

import "encoding/json"

// CommitResponse is an entry of the pull request commits listing.
type CommitResponse struct {
	SHA string `json:"sha"`
}

// TimelineResponse is an entry of an issue timeline.
type TimelineResponse struct {
	Event    string          `json:"event"`
	CommitID *string         `json:"commit_id,omitempty"`
	Source   *TimelineSource `json:"source,omitempty"`
}

// TimelineSource is the item that cross-referenced an issue.
type TimelineSource struct {
	Type  string         `json:"type,omitempty"`
	Issue *IssueResponse `json:"issue,omitempty"`
}

// IssueResponse is the subset of an issue or pull request needed for display and linking.
type IssueResponse struct {
	Number      int             `json:"number"`
	Title       string          `json:"title"`
	State       string          `json:"state"`
	HTMLURL     string          `json:"html_url"`
	PullRequest json.RawMessage `json:"pull_request,omitempty"`
}

// CompareResponse is the subset of a comparison needed to decide inclusion.
type CompareResponse struct {
	Status   string `json:"status"`
	AheadBy  int    `json:"ahead_by"`
	BehindBy int    `json:"behind_by"`
}

// isPullRequest reports whether the issue payload describes a pull request.
func (i *IssueResponse) isPullRequest() bool {
	return len(i.PullRequest) > 0 && string(i.PullRequest) != "null"
}
