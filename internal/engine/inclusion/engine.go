// Package inclusion finds the first release on each channel whose build contains a fix.
package inclusion

import (
	"context"
	"fmt"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Engine evaluates candidate commits against release channels.
type Engine struct {
	oracle   ports.InclusionOracle
	logger   ports.Logger
	tracer   ports.Tracer
	parallel bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallelChannels evaluates channels concurrently. Oracle calls still
// funnel through the dispatcher, so pacing is unchanged.
func WithParallelChannels(enabled bool) Option {
	return func(e *Engine) {
		e.parallel = enabled
	}
}

// New creates an Engine.
func New(oracle ports.InclusionOracle, logger ports.Logger, tracer ports.Tracer, opts ...Option) *Engine {
	e := &Engine{
		oracle: oracle,
		logger: logger,
		tracer: tracer,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FirstInclusion returns the oldest release of channel whose build contains commit,
// or nil when none does.
//
// Releases must be ordered oldest to newest and inclusion must be monotone over
// that order. The newest release is probed first; only when it includes the commit
// is the boundary located by binary search. A channel violating monotonicity
// yields whatever boundary the search lands on.
func (e *Engine) FirstInclusion(ctx context.Context, commit string, channel domain.Channel) (*domain.Inclusion, error) {
	latest, ok := channel.Latest()
	if !ok {
		return nil, nil
	}

	included, err := e.oracle.IsIncluded(ctx, commit, latest.FrameworkSHA)
	if err != nil {
		return nil, err
	}
	if !included {
		return nil, nil
	}

	best := len(channel.Releases) - 1
	low, high := 0, len(channel.Releases)-1
	for low <= high {
		mid := (low + high) / 2
		if mid == len(channel.Releases)-1 {
			// Already known to include.
			best = mid
			high = mid - 1
			continue
		}

		included, err := e.oracle.IsIncluded(ctx, commit, channel.Releases[mid].FrameworkSHA)
		if err != nil {
			return nil, err
		}
		if included {
			best = mid
			high = mid - 1
		} else {
			low = mid + 1
		}
	}

	return &domain.Inclusion{
		Commit:  commit,
		Release: channel.Releases[best],
		Index:   best,
	}, nil
}

// Evaluate reports every channel of snapshot in document order. For each channel
// candidates are tried in order and the first one found included wins.
// Any oracle failure aborts the whole evaluation.
func (e *Engine) Evaluate(ctx context.Context, commits []string, snapshot *domain.Snapshot) ([]domain.ChannelStatus, error) {
	ctx, span := e.tracer.Start(ctx, "inclusion.Evaluate")
	defer span.End()
	span.SetAttribute("candidates", len(commits))

	statuses := make([]domain.ChannelStatus, len(snapshot.Channels))

	g, gctx := errgroup.WithContext(ctx)
	if !e.parallel {
		g.SetLimit(1)
	}
	for i, channel := range snapshot.Channels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			status, err := e.evaluateChannel(gctx, commits, channel)
			if err != nil {
				return err
			}
			statuses[i] = status
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return statuses, nil
}

func (e *Engine) evaluateChannel(ctx context.Context, commits []string, channel domain.Channel) (domain.ChannelStatus, error) {
	status := domain.ChannelStatus{Channel: channel.Name}

	latest, ok := channel.Latest()
	if !ok {
		return status, nil
	}
	status.LatestVersion = latest.Version

	for _, commit := range commits {
		found, err := e.FirstInclusion(ctx, commit, channel)
		if err != nil {
			return domain.ChannelStatus{}, err
		}
		if found == nil {
			continue
		}

		e.logger.Debug(fmt.Sprintf("%s: %s first shipped in %s", channel.Name, short(commit), found.Release.Version))
		version := found.Release.Version
		ago := len(channel.Releases) - 1 - found.Index
		status.Included = true
		status.FirstVersion = &version
		if found.Release.Released != "" {
			date := found.Release.Released
			status.FirstDate = &date
		}
		status.ReleasesAgo = &ago
		status.MatchedCommit = found.Commit
		return status, nil
	}

	return status, nil
}
