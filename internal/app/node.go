package app

import (
	"context"

	"github.com/gmackall/flutter-fix-status/internal/adapters/cache"
	"github.com/gmackall/flutter-fix-status/internal/adapters/config"
	"github.com/gmackall/flutter-fix-status/internal/adapters/github"
	"github.com/gmackall/flutter-fix-status/internal/adapters/logger"
	"github.com/gmackall/flutter-fix-status/internal/adapters/snapshot"
	"github.com/gmackall/flutter-fix-status/internal/adapters/telemetry"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
	"github.com/gmackall/flutter-fix-status/internal/engine/dispatch"
	"github.com/gmackall/flutter-fix-status/internal/engine/inclusion"
	"github.com/gmackall/flutter-fix-status/internal/engine/resolver"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			telemetry.MetricsNodeID,
			github.NodeID,
			cache.NodeID,
			snapshot.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			cache.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	metrics, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}
	client, err := graft.Dep[*github.Client](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.InclusionCache](ctx)
	if err != nil {
		return nil, err
	}
	snapshots, err := graft.Dep[ports.SnapshotSource](ctx)
	if err != nil {
		return nil, err
	}

	return Build(cfg, client, client, store, snapshots, metrics, log, tracer), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.InclusionCache](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(application, log, cfg, store), nil
}

// Build assembles an App around a single dispatch queue shared by the resolver and the oracle.
func Build(
	cfg *domain.Config,
	platform ports.Platform,
	comparer ports.Comparer,
	store ports.InclusionCache,
	snapshots ports.SnapshotSource,
	metrics ports.Metrics,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	queue := dispatch.New(cfg.Throttle.Spacing, cfg.Throttle.Backoff, dispatch.WithMetrics(metrics))
	res := resolver.New(platform, queue, log, tracer)
	oracle := inclusion.NewOracle(comparer, queue, store, cfg.Cache.TTL, metrics, log)
	engine := inclusion.New(oracle, log, tracer, inclusion.WithParallelChannels(cfg.Engine.ParallelChannels))
	return New(res, engine, snapshots, store, metrics, log, tracer)
}
