// Package cache provides pluggable byte caches for chart payloads, resolved
// charts and rendered artifacts.
//
// # Backends
//
//   - [NewNullCache]: caching disabled
//   - [FileCache]: one file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//
// All backends store opaque bytes with an optional TTL. A zero TTL means the
// entry never expires.
//
// # Keys
//
// Keys are produced by a [Keyer] so that callers never build cache keys by
// hand. [DefaultKeyer] hashes the options that influence an entry; a
// [ScopedKeyer] adds a namespace prefix, e.g. per deployment.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. ttl <= 0 stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Default TTLs per entry kind.
const (
	HTTPTTL     = 24 * time.Hour
	ChartTTL    = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// NewNullCache returns a cache that stores nothing. Every Get is a miss.
func NewNullCache() Cache {
	return nullCache{}
}

type nullCache struct{}

func (nullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (nullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nullCache) Delete(context.Context, string) error { return nil }
func (nullCache) Close() error { return nil }
