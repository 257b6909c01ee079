// Package store defines the byte-oriented key-value protocol the caching
// middleware persists cache values through, with memory, Redis, MongoDB and
// null backends.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Store is the cache-store protocol: get, set and expire by string key.
// Payloads are opaque bytes; serialization is the codec's concern.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the payload stored under key. A miss is (nil, false, nil),
	// never an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Expire removes key. Expiring an absent key is not an error.
	Expire(ctx context.Context, key string) error

	// Close releases backend resources. The store is unusable afterwards.
	Close() error
}

// Pinger is implemented by backends that can verify connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
