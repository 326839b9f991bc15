package cache

import (
	"context"
	"sync"
	"time"

	"github.com/gmackall/flutter-fix-status/internal/core/domain"
)

// Memory is a process-local inclusion cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
	now     func() time.Time
}

// NewMemory creates an empty Memory cache. A nil now uses the wall clock.
func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{
		entries: make(map[string]domain.CacheEntry),
		now:     now,
	}
}

// Get retrieves the answer for (subject, target).
func (m *Memory) Get(_ context.Context, subject, target string) (included, found bool, err error) {
	m.mu.RLock()
	entry, ok := m.entries[domain.CacheKey(subject, target)]
	m.mu.RUnlock()

	if !ok || !entry.Live(m.now()) {
		return false, false, nil
	}
	return entry.Included, true, nil
}

// Put stores the answer for (subject, target).
func (m *Memory) Put(_ context.Context, subject, target string, included bool, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	entry := domain.NewCacheEntry(subject, target, included, m.now(), ttl)

	m.mu.Lock()
	m.entries[domain.CacheKey(subject, target)] = entry
	m.mu.Unlock()
	return nil
}

// Clear removes every entry.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]domain.CacheEntry)
	m.mu.Unlock()
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
