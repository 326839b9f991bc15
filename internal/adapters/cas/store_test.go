package cas_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/adapters/cas"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func newStore(t *testing.T, dir string) (*cas.Store, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	store, err := cas.NewStore(dir, cas.WithClock(c.Now))
	require.NoError(t, err)
	return store, c
}

func TestStore_PutAndGet(t *testing.T) {
	store, _ := newStore(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc123", "def456", true, time.Hour))

	included, found, err := store.Get(ctx, "abc123", "def456")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, included)

	_, found, err = store.Get(ctx, "def456", "abc123")
	require.NoError(t, err)
	assert.False(t, found, "keys are ordered")
}

func TestStore_NegativeAnswer(t *testing.T) {
	store, _ := newStore(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc123", "def456", false, time.Hour))

	included, found, err := store.Get(ctx, "ABC123", "DEF456")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, included)
}

func TestStore_Expiry(t *testing.T) {
	store, c := newStore(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc123", "def456", true, time.Hour))

	c.now = c.now.Add(time.Hour)
	_, found, err := store.Get(ctx, "abc123", "def456")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store1, _ := newStore(t, dir)
	require.NoError(t, store1.Put(ctx, "abc123", "def456", true, time.Hour))
	require.NoError(t, store1.Close())

	store2, _ := newStore(t, dir)
	included, found, err := store2.Get(ctx, "abc123", "def456")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, included)
}

func TestStore_FileLayout(t *testing.T) {
	dir := t.TempDir()
	store, _ := newStore(t, dir)
	require.NoError(t, store.Put(context.Background(), "abc123", "def456", true, time.Hour))

	digest := domain.CacheDigest("abc123", "def456")
	path := filepath.Join(dir, digest[:2], digest+".json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(dir, digest[:2], ".entry-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestStore_CorruptEntry(t *testing.T) {
	dir := t.TempDir()
	store, _ := newStore(t, dir)

	digest := domain.CacheDigest("abc123", "def456")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, digest[:2]), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, digest[:2], digest+".json"), []byte("{not json"), 0o600))

	_, _, err := store.Get(context.Background(), "abc123", "def456")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCacheReadFailed.Error())
}

func TestStore_Clear(t *testing.T) {
	dir := t.TempDir()
	store, _ := newStore(t, dir)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a1b2c3d", "e4f5a6b", true, time.Hour))
	require.NoError(t, store.Put(ctx, "1234abc", "5678def", false, time.Hour))
	require.NoError(t, store.Clear(ctx))

	_, found, err := store.Get(ctx, "a1b2c3d", "e4f5a6b")
	require.NoError(t, err)
	assert.False(t, found)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
