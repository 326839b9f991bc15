package credential

import (
	"context"

	"github.com/gmackall/flutter-fix-status/internal/adapters/config"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the credential Graft node.
const NodeID graft.ID = "adapter.credential"

func init() {
	graft.Register(graft.Node[*Token]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Token, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Token), nil
		},
	})
}
