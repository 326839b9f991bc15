package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// CacheEntry is a stored inclusion answer.
type CacheEntry struct {
	Subject   string    `json:"subject"`
	Target    string    `json:"target"`
	Included  bool      `json:"included"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewCacheEntry builds an entry for the ordered pair expiring ttl after now.
func NewCacheEntry(subject, target string, included bool, now time.Time, ttl time.Duration) CacheEntry {
	return CacheEntry{
		Subject:   strings.ToLower(subject),
		Target:    strings.ToLower(target),
		Included:  included,
		ExpiresAt: now.Add(ttl),
	}
}

// Live reports whether the entry is still valid at now.
func (e CacheEntry) Live(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// CacheKey returns the order-sensitive key for (subject, target).
func CacheKey(subject, target string) string {
	return strings.ToLower(subject) + "..." + strings.ToLower(target)
}

// CacheDigest returns a fixed-width hex digest of CacheKey, suitable for file names.
func CacheDigest(subject, target string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(CacheKey(subject, target)))
}
