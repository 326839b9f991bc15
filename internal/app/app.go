// Package app implements the application layer for fixstatus.
package app

import (
	"context"
	"errors"
	"strings"

	"github.com/gmackall/flutter-fix-status/internal/adapters/httpapi"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
	"github.com/gmackall/flutter-fix-status/internal/engine/inclusion"
	"github.com/gmackall/flutter-fix-status/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App answers fix-status queries.
type App struct {
	resolver  *resolver.Resolver
	engine    *inclusion.Engine
	snapshots ports.SnapshotSource
	cache     ports.InclusionCache
	metrics   ports.Metrics
	logger    ports.Logger
	tracer    ports.Tracer
}

// New creates a new App instance.
func New(
	res *resolver.Resolver,
	engine *inclusion.Engine,
	snapshots ports.SnapshotSource,
	cache ports.InclusionCache,
	metrics ports.Metrics,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		resolver:  res,
		engine:    engine,
		snapshots: snapshots,
		cache:     cache,
		metrics:   metrics,
		logger:    log,
		tracer:    tracer,
	}
}

// Resolve classifies query and finds its candidate commits without evaluating releases.
func (a *App) Resolve(ctx context.Context, query string) (*domain.Resolution, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	ctx, span := a.tracer.Start(ctx, "app.Resolve")
	defer span.End()

	ref := domain.Classify(query)
	span.SetAttribute("kind", ref.Kind.String())
	a.metrics.Resolution(ref.Kind.String())

	commits, err := a.resolver.Resolve(ctx, ref)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(err, "query", query)
	}

	subject, err := a.resolver.Subject(ctx, ref)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(err, "query", query)
	}

	return &domain.Resolution{
		Query:   query,
		Kind:    ref.Kind,
		Commits: commits,
		Subject: subject,
	}, nil
}

// Check resolves query and reports, for every channel, the first release that includes a fix.
// The snapshot is loaded first so that a missing snapshot costs no remote calls.
func (a *App) Check(ctx context.Context, query string) (*domain.Report, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	snapshot, err := a.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}

	resolution, err := a.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	channels, err := a.engine.Evaluate(ctx, resolution.Commits, snapshot)
	if err != nil {
		return nil, zerr.With(err, "query", resolution.Query)
	}

	return &domain.Report{
		Resolution: *resolution,
		Channels:   channels,
	}, nil
}

// CheckCommit reports, for every channel, the first release that includes sha.
func (a *App) CheckCommit(ctx context.Context, sha string) (*domain.CommitReport, error) {
	ref := domain.Classify(sha)
	if ref.Kind != domain.KindCommit {
		return nil, zerr.Wrap(domain.ErrInvalidCommit, strings.TrimSpace(sha))
	}

	snapshot, err := a.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}

	channels, err := a.engine.Evaluate(ctx, []string{ref.SHA}, snapshot)
	if err != nil {
		return nil, zerr.With(err, "commit", ref.SHA)
	}

	return &domain.CommitReport{
		Commit:   ref.SHA,
		Channels: channels,
	}, nil
}

// ClearCache removes every stored inclusion answer.
func (a *App) ClearCache(ctx context.Context) error {
	if err := a.cache.Clear(ctx); err != nil {
		return err
	}
	a.logger.Info("inclusion cache cleared")
	return nil
}

// Serve runs the HTTP API on addr until ctx is done.
func (a *App) Serve(ctx context.Context, addr string) error {
	srv := httpapi.New(a, a.metrics, a.logger)
	err := srv.Run(ctx, addr)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
