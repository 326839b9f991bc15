package cache

import (
	"context"

	"github.com/gmackall/flutter-fix-status/internal/adapters/config"
	"github.com/gmackall/flutter-fix-status/internal/adapters/logger"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the inclusion cache Graft node.
const NodeID graft.ID = "adapter.cache"

func init() {
	graft.Register(graft.Node[ports.InclusionCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.InclusionCache, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return Open(ctx, cfg.Cache, log)
		},
	})
}
