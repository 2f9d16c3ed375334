// Package cache provides a small byte-oriented TTL cache used by the public
// read endpoints (caregiver directory, landing stats). Two implementations
// exist: Redis-backed when REDIS_ADDR is configured, an in-process map
// otherwise. Both treat a miss as (nil, nil) so callers fall through to the
// database without error plumbing.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with per-entry TTLs.
type Cache interface {
	// Get returns the cached value, or nil when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key for ttl. A non-positive ttl stores nothing.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}
