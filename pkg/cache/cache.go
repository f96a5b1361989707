// Package cache provides response caching for the WakaTime API client.
//
// Three implementations are available:
//   - FileCache: file-based storage under the XDG cache directory (default)
//   - RedisCache: Redis-backed storage for shared or ephemeral environments
//   - NullCache: no-op cache used when caching is disabled
//
// Cached payloads are raw bytes; callers are responsible for serialization.
// Keys should be namespaced (e.g., "wakatime:stats") to avoid collisions.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached payload kind. Stats change constantly while the
// language color catalog is effectively static.
const (
	// TTLStats is the default time-to-live for the aggregate stats payload.
	TTLStats = 15 * time.Minute

	// TTLColors is the default time-to-live for the language color catalog.
	TTLColors = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// A TTL of 0 means the entry never expires.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found
	// and still fresh; expired entries count as a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}
