// Package cache selects and opens the configured inclusion cache backend.
package cache

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gmackall/flutter-fix-status/internal/adapters/badger"
	"github.com/gmackall/flutter-fix-status/internal/adapters/cas"
	"github.com/gmackall/flutter-fix-status/internal/adapters/sqlite"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
	"go.trai.ch/zerr"
)

// Open returns the backend named by cfg.Backend.
func Open(ctx context.Context, cfg domain.CacheConfig, logger ports.Logger) (ports.InclusionCache, error) {
	switch cfg.Backend {
	case domain.CacheBackendFile:
		return cas.NewStore(filepath.Join(cfg.Path, "entries"))
	case domain.CacheBackendBadger:
		return badger.Open(badger.Config{Path: filepath.Join(cfg.Path, "badger"), Logger: logger})
	case domain.CacheBackendSQLite:
		store, err := sqlite.Open(filepath.Join(cfg.Path, domain.SQLiteFileName))
		if err != nil {
			return nil, err
		}
		if removed, err := store.Prune(ctx); err != nil {
			logger.Warn(fmt.Sprintf("pruning expired cache entries failed: %v", err))
		} else if removed > 0 {
			logger.Debug(fmt.Sprintf("pruned %d expired cache entries", removed))
		}
		return store, nil
	case domain.CacheBackendMemory:
		return NewMemory(nil), nil
	case domain.CacheBackendNone:
		return NoOp{}, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownCacheBackend, "cache.backend"), "backend", cfg.Backend)
	}
}
