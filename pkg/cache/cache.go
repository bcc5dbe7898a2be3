// Package cache stores rendered artifacts for the explorer server.
//
// Rendering a Graphviz snapshot is expensive while the number of distinct
// snapshots is tiny: one per selectable color. The server keys rendered bytes
// with [Key] and keeps them in a [MemoryCache] for the life of the process.
// Nothing is persisted.
//
//	key := cache.Key("snapshot", color.Code(), engine)
//	if svg, ok, _ := c.Get(ctx, key); ok {
//	    return svg
//	}
//	svg := render()
//	_ = c.Set(ctx, key, svg, 0)
//
// [NullCache] disables caching (serve --no-cache).
package cache

import (
	"context"
	"time"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
