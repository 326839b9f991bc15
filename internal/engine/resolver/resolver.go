// Package resolver turns classified references into candidate fix commits.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxPages caps how many pages of one listing are fetched.
const maxPages = 10

// Resolver finds the commits behind a reference using the code host.
// Every remote call goes through the dispatcher, one page at a time.
type Resolver struct {
	platform ports.Platform
	queue    ports.Dispatcher
	logger   ports.Logger
	tracer   ports.Tracer
}

// New creates a Resolver.
func New(platform ports.Platform, queue ports.Dispatcher, logger ports.Logger, tracer ports.Tracer) *Resolver {
	return &Resolver{
		platform: platform,
		queue:    queue,
		logger:   logger,
		tracer:   tracer,
	}
}

// Resolve returns the ordered, possibly empty, list of candidate commits for ref.
// Missing pull requests and issues resolve to an empty list; any other failure is returned.
func (r *Resolver) Resolve(ctx context.Context, ref domain.Reference) ([]string, error) {
	ctx, span := r.tracer.Start(ctx, "resolver.Resolve")
	defer span.End()
	span.SetAttribute("kind", ref.Kind.String())

	commits, err := r.resolve(ctx, ref)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("commits", len(commits))
	return commits, nil
}

func (r *Resolver) resolve(ctx context.Context, ref domain.Reference) ([]string, error) {
	switch ref.Kind {
	case domain.KindCommit:
		return []string{ref.SHA}, nil
	case domain.KindPullRequest:
		return r.pullRequestCommits(ctx, ref.Number)
	case domain.KindIssue:
		return r.issueCommits(ctx, ref.Number)
	case domain.KindAmbiguous:
		commits, err := r.pullRequestCommits(ctx, ref.Number)
		if err != nil {
			return nil, err
		}
		if len(commits) > 0 {
			return commits, nil
		}
		r.logger.Debug(fmt.Sprintf("#%d has no pull request commits, trying it as an issue", ref.Number))
		return r.issueCommits(ctx, ref.Number)
	case domain.KindUnknown:
		return []string{}, nil
	default:
		return []string{}, nil
	}
}

// Subject fetches display metadata for a numbered reference. It returns nil when
// the reference carries no number or the entity does not exist.
func (r *Resolver) Subject(ctx context.Context, ref domain.Reference) (*domain.Subject, error) {
	if !ref.Kind.Numbered() {
		return nil, nil
	}

	var subject *domain.Subject
	err := r.queue.Do(ctx, func(ctx context.Context) error {
		var err error
		subject, err = r.platform.Subject(ctx, ref.Number)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return subject, nil
}

func (r *Resolver) pullRequestCommits(ctx context.Context, number int) ([]string, error) {
	commits, err := paginate(ctx, r.queue, func(ctx context.Context, cursor string) ([]string, string, error) {
		return r.platform.PullRequestCommits(ctx, number, cursor)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, zerr.With(err, "pull_request", number)
	}
	if commits == nil {
		commits = []string{}
	}
	return commits, nil
}

func (r *Resolver) issueCommits(ctx context.Context, number int) ([]string, error) {
	events, err := paginate(ctx, r.queue, func(ctx context.Context, cursor string) ([]domain.TimelineEvent, string, error) {
		return r.platform.IssueTimeline(ctx, number, cursor)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, zerr.With(err, "issue", number)
	}

	if sha, ok := domain.ClosingCommit(events); ok {
		r.logger.Debug(fmt.Sprintf("issue #%d was closed by commit %s", number, sha))
		return []string{sha}, nil
	}

	for _, pr := range domain.LinkedPullRequests(events) {
		commits, err := r.pullRequestCommits(ctx, pr)
		if err != nil {
			return nil, err
		}
		if len(commits) > 0 {
			r.logger.Debug(fmt.Sprintf("issue #%d resolved through linked pull request #%d", number, pr))
			return commits, nil
		}
	}

	return []string{}, nil
}

// paginate fetches up to maxPages pages, dispatching each page as its own call
// so the queue paces consecutive pages like any other request.
func paginate[T any](
	ctx context.Context,
	queue ports.Dispatcher,
	fetch func(ctx context.Context, cursor string) ([]T, string, error),
) ([]T, error) {
	var all []T
	cursor := ""
	for page := 0; page < maxPages; page++ {
		var items []T
		var next string
		err := queue.Do(ctx, func(ctx context.Context) error {
			var err error
			items, next, err = fetch(ctx, cursor)
			return err
		})
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if next == "" {
			break
		}
		cursor = next
	}
	return all, nil
}
