// Package cache provides content-addressed storage for rendered analysis
// results.
//
// The engine itself never memoizes anything: a cache entry is always a whole
// serialized report keyed by the hash of the canonical facts document that
// produced it. Because analysis is deterministic, a hit is guaranteed to be
// equivalent to a fresh run.
//
// Backends:
//   - FileCache: per-user cache directory for the CLI
//   - RedisCache: shared cache for the HTTP server
//   - NullCache: disabled caching for tests and --no-cache
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is the interface all cache backends implement.
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultTTL is the cache lifetime for analysis reports. Facts documents
// are content-addressed, so entries only go stale when the schema changes;
// the TTL mainly bounds disk usage.
const DefaultTTL = 7 * 24 * time.Hour

// ReportKey builds the cache key for an analysis report from the canonical
// facts document bytes.
func ReportKey(factsDoc []byte) string {
	return fmt.Sprintf("report:%s", Hash(factsDoc))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// NullCache discards writes and misses every read. It backs --no-cache
// and is the fallback when no cache backend is configured.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a cache that never stores anything.
func NewNullCache() Cache { return &NullCache{} }

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

func (c *NullCache) Close() error { return nil }
