// Package sqlite implements the inclusion cache on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"go.trai.ch/zerr"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const schema = `
	CREATE TABLE IF NOT EXISTS inclusion_cache (
		subject TEXT NOT NULL,
		target TEXT NOT NULL,
		included INTEGER NOT NULL,
		expires_at INTEGER NOT NULL,
		PRIMARY KEY (subject, target)
	);
	CREATE INDEX IF NOT EXISTS idx_inclusion_cache_expires_at ON inclusion_cache(expires_at);
`

// Store implements ports.InclusionCache on SQLite.
type Store struct {
	conn *sql.DB
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

// Open opens or creates the cache database at path.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", path)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", path)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", path)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", path)
	}

	s := &Store{conn: conn, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get retrieves the answer for (subject, target).
func (s *Store) Get(ctx context.Context, subject, target string) (included, found bool, err error) {
	var (
		value     int
		expiresAt int64
	)
	row := s.conn.QueryRowContext(ctx,
		`SELECT included, expires_at FROM inclusion_cache WHERE subject = ? AND target = ?`,
		strings.ToLower(subject), strings.ToLower(target),
	)
	if err := row.Scan(&value, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, false, nil
		}
		return false, false, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	entry := domain.CacheEntry{Included: value != 0, ExpiresAt: time.UnixMilli(expiresAt)}
	if !entry.Live(s.now()) {
		return false, false, nil
	}
	return entry.Included, true, nil
}

// Put stores the answer for (subject, target), replacing any previous one.
func (s *Store) Put(ctx context.Context, subject, target string, included bool, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	entry := domain.NewCacheEntry(subject, target, included, s.now(), ttl)
	value := 0
	if entry.Included {
		value = 1
	}

	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO inclusion_cache (subject, target, included, expires_at) VALUES (?, ?, ?, ?)`,
		entry.Subject, entry.Target, value, entry.ExpiresAt.UnixMilli(),
	)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

// Prune deletes expired entries and returns how many were removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM inclusion_cache WHERE expires_at <= ?`, s.now().UnixMilli())
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return res.RowsAffected()
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM inclusion_cache`); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
