// Package cache provides pluggable byte caches for converted artifacts.
//
// The preview server caches rendered HTML keyed by the source document's
// path and content hash, so repeated requests skip re-conversion until
// the canvas changes. Three backends are provided:
//   - FileCache: directory-based, for single-machine CLI/serve usage
//   - RedisCache: shared cache for multi-instance deployments
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
