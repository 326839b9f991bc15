package cache_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/adapters/badger"
	"github.com/gmackall/flutter-fix-status/internal/adapters/cache"
	"github.com/gmackall/flutter-fix-status/internal/adapters/cas"
	"github.com/gmackall/flutter-fix-status/internal/adapters/sqlite"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
	"github.com/gmackall/flutter-fix-status/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	_ ports.InclusionCache = (*cache.Memory)(nil)
	_ ports.InclusionCache = cache.NoOp{}
	_ ports.InclusionCache = (*cas.Store)(nil)
	_ ports.InclusionCache = (*badger.Store)(nil)
	_ ports.InclusionCache = (*sqlite.Store)(nil)
)

func TestMemory(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	m := cache.NewMemory(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "ABC", "def", true, time.Hour))
	included, found, err := m.Get(ctx, "abc", "DEF")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, included)

	_, found, err = m.Get(ctx, "def", "abc")
	require.NoError(t, err)
	assert.False(t, found)

	now = now.Add(time.Hour)
	_, found, err = m.Get(ctx, "abc", "def")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Put(ctx, "abc", "def", false, 0))
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Clear(ctx))
	assert.Zero(t, m.Len())
}

func TestNoOp(t *testing.T) {
	ctx := context.Background()
	c := cache.NoOp{}

	require.NoError(t, c.Put(ctx, "abc", "def", true, time.Hour))
	_, found, err := c.Get(ctx, "abc", "def")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOpen(t *testing.T) {
	tests := []struct {
		backend string
		check   func(t *testing.T, c ports.InclusionCache)
	}{
		{backend: domain.CacheBackendFile, check: func(t *testing.T, c ports.InclusionCache) {
			t.Helper()
			assert.IsType(t, &cas.Store{}, c)
		}},
		{backend: domain.CacheBackendBadger, check: func(t *testing.T, c ports.InclusionCache) {
			t.Helper()
			assert.IsType(t, &badger.Store{}, c)
		}},
		{backend: domain.CacheBackendSQLite, check: func(t *testing.T, c ports.InclusionCache) {
			t.Helper()
			assert.IsType(t, &sqlite.Store{}, c)
		}},
		{backend: domain.CacheBackendMemory, check: func(t *testing.T, c ports.InclusionCache) {
			t.Helper()
			assert.IsType(t, &cache.Memory{}, c)
		}},
		{backend: domain.CacheBackendNone, check: func(t *testing.T, c ports.InclusionCache) {
			t.Helper()
			assert.IsType(t, cache.NoOp{}, c)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			logger := mocks.NewMockLogger(ctrl)
			logger.EXPECT().Debug(gomock.Any()).AnyTimes()
			logger.EXPECT().Warn(gomock.Any()).AnyTimes()
			logger.EXPECT().Info(gomock.Any()).AnyTimes()
			logger.EXPECT().Error(gomock.Any()).AnyTimes()

			cfg := domain.CacheConfig{Backend: tt.backend, Path: filepath.Join(t.TempDir(), "cache"), TTL: time.Hour}
			c, err := cache.Open(context.Background(), cfg, logger)
			require.NoError(t, err)
			t.Cleanup(func() {
				_ = c.Close()
			})
			tt.check(t, c)

			ctx := context.Background()
			require.NoError(t, c.Put(ctx, "abc123", "def456", true, time.Hour))
			if tt.backend == domain.CacheBackendNone {
				return
			}
			included, found, err := c.Get(ctx, "abc123", "def456")
			require.NoError(t, err)
			assert.True(t, found)
			assert.True(t, included)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	_, err := cache.Open(context.Background(), domain.CacheConfig{Backend: "redis"}, logger)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownCacheBackend)
}
