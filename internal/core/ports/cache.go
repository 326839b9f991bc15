package ports

import (
	"context"
	"time"
)

// InclusionCache stores inclusion answers keyed by the ordered pair (subject, target).
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type InclusionCache interface {
	// Get returns the stored answer. found is false on a miss or an expired entry.
	Get(ctx context.Context, subject, target string) (included, found bool, err error)

	// Put stores an answer that expires after ttl.
	Put(ctx context.Context, subject, target string, included bool, ttl time.Duration) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases resources held by the backend.
	Close() error
}
