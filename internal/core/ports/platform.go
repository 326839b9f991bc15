package ports

import (
	"context"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
)

// Platform is the read-only view of the code host used to resolve references.
// Every method returns an error wrapping domain.ErrNotFound when the entity does not exist.
// Listings are paged: each call performs one request, so callers can pace pages individually.
//
//go:generate mockgen -source=platform.go -destination=mocks/mock_platform.go -package=mocks
type Platform interface {
	// PullRequestCommits lists one page of the commit hashes of a pull request in order.
	// An empty cursor requests the first page. The returned cursor is empty after the last page.
	PullRequestCommits(ctx context.Context, number int, cursor string) ([]string, string, error)

	// IssueTimeline lists one page of the timeline events of an issue in order.
	IssueTimeline(ctx context.Context, number int, cursor string) ([]domain.TimelineEvent, string, error)

	// Subject fetches the title and state of a pull request or issue.
	Subject(ctx context.Context, number int) (*domain.Subject, error)
}

// Comparer compares two commits on the code host.
type Comparer interface {
	// Compare returns the status of head relative to base.
	Compare(ctx context.Context, base, head string) (domain.CompareStatus, error)
}
