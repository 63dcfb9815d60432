// Package cache stores computed layout snapshots keyed by the content hash
// of their inputs.
//
// Backends:
//   - [FileCache]: one file per entry under the XDG cache directory (CLI)
//   - [MemoryCache]: bounded LRU in process memory (server)
//   - [RedisCache]: shared Redis instance (multi-instance server)
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys come from a [Keyer]. Every backend treats values as opaque bytes.
package cache

import (
	"context"
	"time"
)

// LayoutTTL is how long a computed layout stays cached. Layouts are pure
// functions of their inputs, so the TTL only bounds disk and memory use.
const LayoutTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// LayoutKeyOpts holds the pass parameters that change a layout result
// beyond the collection itself.
type LayoutKeyOpts struct {
	Width     float64 `json:"width"`
	Columns   int     `json:"columns"`
	Bucket    string  `json:"bucket"`
	Clamp     string  `json:"clamp"`
	RunLength int     `json:"run_length"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for the layout of a collection with the
	// given content hash.
	LayoutKey(collectionHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(collectionHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", collectionHash, opts)
}
