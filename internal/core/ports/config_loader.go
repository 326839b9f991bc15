package ports

import "github.com/gmackall/flutter-fix-status/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path, or discovers one in cwd when path is empty,
	// and overlays environment and flag values.
	Load(cwd, path string) (*domain.Config, error)
}
