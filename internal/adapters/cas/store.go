// Package cas implements the file-per-entry inclusion cache.
package cas

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.InclusionCache with one JSON file per (subject, target) pair.
// Entries are addressed by a digest of the ordered key.
type Store struct {
	root string
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string, opts ...Option) (*Store, error) {
	s := &Store{
		root: filepath.Clean(dir),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(s.root, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", s.root)
	}
	return s, nil
}

// Get retrieves the answer for (subject, target). Expired entries are misses.
func (s *Store) Get(_ context.Context, subject, target string) (included, found bool, err error) {
	filename := s.getFilename(subject, target)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, false, nil
		}
		return false, false, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return false, false, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	// Digest collisions resolve to a miss.
	if domain.CacheKey(entry.Subject, entry.Target) != domain.CacheKey(subject, target) {
		return false, false, nil
	}
	if !entry.Live(s.now()) {
		return false, false, nil
	}
	return entry.Included, true, nil
}

// Put stores the answer for (subject, target).
func (s *Store) Put(_ context.Context, subject, target string, included bool, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	entry := domain.NewCacheEntry(subject, target, included, s.now(), ttl)
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	filename := s.getFilename(subject, target)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	if err := writeFileAtomic(filename, data); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

// Clear removes every entry.
func (s *Store) Clear(_ context.Context) error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
			return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
		}
	}
	return nil
}

// Close is a no-op; the store holds no open handles.
func (s *Store) Close() error {
	return nil
}

func (s *Store) getFilename(subject, target string) string {
	digest := domain.CacheDigest(subject, target)
	shard := digest
	if len(shard) > 2 {
		shard = shard[:2]
	}
	return filepath.Join(s.root, shard, digest+".json")
}

// writeFileAtomic writes data to a temp file in the same directory and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".entry-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
