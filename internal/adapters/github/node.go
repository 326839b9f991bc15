package github

import (
	"context"

	"github.com/gmackall/flutter-fix-status/internal/adapters/config"
	"github.com/gmackall/flutter-fix-status/internal/adapters/credential"
	"github.com/gmackall/flutter-fix-status/internal/adapters/telemetry"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the GitHub client Graft node.
const NodeID graft.ID = "adapter.github"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, credential.NodeID, telemetry.MetricsNodeID},
		Run: func(ctx context.Context) (*Client, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			token, err := graft.Dep[*credential.Token](ctx)
			if err != nil {
				return nil, err
			}
			metrics, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(cfg, token, metrics), nil
		},
	})
}
