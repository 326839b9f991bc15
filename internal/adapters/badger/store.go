// Package badger implements the inclusion cache on BadgerDB.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"github.com/gmackall/flutter-fix-status/internal/core/ports"
	"go.trai.ch/zerr"
)

const keyPrefix = "inclusion/"

// Config configures the database.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	Logger   ports.Logger
	Now      func() time.Time
}

// Store implements ports.InclusionCache on BadgerDB. Entries carry a native TTL
// and are also checked against the clock on read.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens or creates the database described by cfg.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", cfg.Path)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", cfg.Path)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Store{db: db, now: now}, nil
}

// Get retrieves the answer for (subject, target).
func (s *Store) Get(_ context.Context, subject, target string) (included, found bool, err error) {
	var entry domain.CacheEntry
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(subject, target))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
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
	data, err := json.Marshal(entry)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key(subject, target), data).WithTTL(ttl))
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

// Clear removes every entry.
func (s *Store) Clear(_ context.Context) error {
	if err := s.db.DropPrefix([]byte(keyPrefix)); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(subject, target string) []byte {
	return []byte(keyPrefix + domain.CacheKey(subject, target))
}

// badgerLogger routes badger's internal logging to the application logger.
type badgerLogger struct {
	logger ports.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Errorf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
