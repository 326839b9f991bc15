// Package github implements the Platform and Comparer ports against the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/adapters/credential"
	"github.com/gmackall/flutter-fix-status/internal/build"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"
	perPage      = 100
)

var nextLinkPattern = regexp.MustCompile(`<([^>]+)>\s*;\s*rel="next"`)

// Client talks to one repository on GitHub.
type Client struct {
	baseURL    string
	repository string
	httpClient *http.Client
	token      *credential.Token
	metrics    ports.Metrics
}

// NewClient creates a Client for the configured repository.
func NewClient(cfg *domain.Config, token *credential.Token, metrics ports.Metrics) *Client {
	return newClientWithHTTP(cfg.APIBase, cfg.Repository, &http.Client{Timeout: cfg.HTTP.Timeout}, token, metrics)
}

// newClientWithHTTP creates a Client with a custom http client (used for testing).
func newClientWithHTTP(
	baseURL, repository string,
	httpClient *http.Client,
	token *credential.Token,
	metrics ports.Metrics,
) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		repository: repository,
		httpClient: httpClient,
		token:      token,
		metrics:    metrics,
	}
}

// PullRequestCommits lists one page of the commit hashes of a pull request in order.
// An empty cursor requests the first page. The returned cursor is empty after the last page.
func (c *Client) PullRequestCommits(ctx context.Context, number int, cursor string) ([]string, string, error) {
	url, err := c.pageURL(fmt.Sprintf("pulls/%d/commits", number), cursor)
	if err != nil {
		return nil, "", zerr.With(err, "pull_request", number)
	}

	var page []CommitResponse
	header, err := c.get(ctx, "pull_commits", url, &page)
	if err != nil {
		return nil, "", zerr.With(err, "pull_request", number)
	}

	shas := make([]string, 0, len(page))
	for _, commit := range page {
		if commit.SHA != "" {
			shas = append(shas, strings.ToLower(commit.SHA))
		}
	}
	return shas, nextLink(header.Get("Link")), nil
}

// IssueTimeline lists one page of the timeline events of an issue in order.
// Cursors work as in PullRequestCommits.
func (c *Client) IssueTimeline(ctx context.Context, number int, cursor string) ([]domain.TimelineEvent, string, error) {
	url, err := c.pageURL(fmt.Sprintf("issues/%d/timeline", number), cursor)
	if err != nil {
		return nil, "", zerr.With(err, "issue", number)
	}

	var page []TimelineResponse
	header, err := c.get(ctx, "issue_timeline", url, &page)
	if err != nil {
		return nil, "", zerr.With(err, "issue", number)
	}

	events := make([]domain.TimelineEvent, 0, len(page))
	for i := range page {
		events = append(events, toTimelineEvent(&page[i]))
	}
	return events, nextLink(header.Get("Link")), nil
}

// Subject fetches the title and state of a pull request or issue.
func (c *Client) Subject(ctx context.Context, number int) (*domain.Subject, error) {
	url := fmt.Sprintf("%s/repos/%s/issues/%d", c.baseURL, c.repository, number)

	var issue IssueResponse
	if _, err := c.get(ctx, "issue", url, &issue); err != nil {
		return nil, zerr.With(err, "number", number)
	}

	return &domain.Subject{
		Number:        issue.Number,
		Title:         issue.Title,
		State:         issue.State,
		URL:           issue.HTMLURL,
		IsPullRequest: issue.isPullRequest(),
	}, nil
}

// Compare returns the status of head relative to base.
func (c *Client) Compare(ctx context.Context, base, head string) (domain.CompareStatus, error) {
	url := fmt.Sprintf("%s/repos/%s/compare/%s...%s?per_page=1", c.baseURL, c.repository, base, head)

	var cmp CompareResponse
	if _, err := c.get(ctx, "compare", url, &cmp); err != nil {
		return "", zerr.With(zerr.With(err, "base", base), "head", head)
	}
	return domain.CompareStatus(cmp.Status), nil
}

func toTimelineEvent(r *TimelineResponse) domain.TimelineEvent {
	event := domain.TimelineEvent{Event: r.Event}
	if r.CommitID != nil {
		event.CommitID = strings.ToLower(*r.CommitID)
	}
	if r.Source != nil && r.Source.Issue != nil {
		event.SourceNumber = r.Source.Issue.Number
		event.SourceIsPullRequest = r.Source.Issue.isPullRequest()
	}
	return event
}

// pageURL returns the first page of a repository listing, or cursor when set.
// A cursor must stay under the API base so the credential never leaves it.
func (c *Client) pageURL(path, cursor string) (string, error) {
	if cursor == "" {
		return fmt.Sprintf("%s/repos/%s/%s?per_page=%d", c.baseURL, c.repository, path, perPage), nil
	}
	if !strings.HasPrefix(cursor, c.baseURL+"/") {
		return "", zerr.With(zerr.Wrap(domain.ErrGitHubRequestFailed, "page outside the API base"), "url", cursor)
	}
	return cursor, nil
}

// get fetches url and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, url string, out any) (http.Header, error) {
	resp, err := c.do(ctx, endpoint, url)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrGitHubParseFailed, err.Error()), "url", url)
	}
	return resp.Header, nil
}

// do issues the request and maps non-2xx answers onto domain errors.
// On success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, endpoint, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrGitHubRequestFailed, err.Error()), "url", url)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", "fixstatus/"+build.Version)
	if err := c.token.Use(func(secret string) {
		req.Header.Set("Authorization", "Bearer "+secret)
	}); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(endpoint, "error", start)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrGitHubTransport, err.Error()), "url", url)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.record(endpoint, "ok", start)
		return resp, nil
	}

	defer closeBody(resp)
	statusErr := classifyStatus(resp)
	switch {
	case errors.Is(statusErr, domain.ErrNotFound):
		c.record(endpoint, "not_found", start)
	case errors.Is(statusErr, domain.ErrRateLimited):
		c.record(endpoint, "rate_limited", start)
	default:
		c.record(endpoint, "error", start)
	}
	return nil, zerr.With(zerr.With(statusErr, "url", url), "status_code", resp.StatusCode)
}

// classifyStatus maps a non-2xx response to a domain error.
func classifyStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return zerr.Wrap(domain.ErrNotFound, http.StatusText(resp.StatusCode))
	case http.StatusUnauthorized:
		return zerr.Wrap(domain.ErrUnauthorized, apiMessage(resp))
	case http.StatusTooManyRequests:
		return rateLimited(resp, apiMessage(resp))
	case http.StatusForbidden:
		msg := apiMessage(resp)
		if resp.Header.Get("X-RateLimit-Remaining") == "0" || resp.Header.Get("Retry-After") != "" ||
			mentionsRateLimit(msg) {
			return rateLimited(resp, msg)
		}
		return zerr.Wrap(domain.ErrUnauthorized, msg)
	default:
		return zerr.Wrap(domain.ErrGitHubRequestFailed, apiMessage(resp))
	}
}

// mentionsRateLimit recognizes primary and secondary limit messages, which may
// arrive on a 403 without any rate-limit headers.
func mentionsRateLimit(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "rate limit")
}

func rateLimited(resp *http.Response, msg string) error {
	err := zerr.Wrap(domain.ErrRateLimited, msg)
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		err = zerr.With(err, "reset", reset)
	}
	if retry := resp.Header.Get("Retry-After"); retry != "" {
		err = zerr.With(err, "retry_after", retry)
	}
	return err
}

// apiMessage extracts GitHub's error message, falling back to the status text.
func apiMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && json.Unmarshal(data, &body) == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(resp.StatusCode)
}

func (c *Client) record(endpoint, outcome string, start time.Time) {
	if c.metrics != nil {
		c.metrics.RemoteCall(endpoint, outcome, time.Since(start))
	}
}

func nextLink(header string) string {
	if header == "" {
		return ""
	}
	m := nextLinkPattern.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	return m[1]
}

func closeBody(resp *http.Response) {
	_ = resp.Body.Close()
}
