// Package events defines the typed events the caching middleware publishes
// through the event bus. The deconstruction engine itself never emits;
// instrumentation lives at the middleware boundary.
package events

import "time"

// CacheHit is emitted when a field lookup finds a stored value.
type CacheHit struct {
	Key   string
	Bytes int
}

// CacheMiss is emitted when a field lookup finds nothing usable.
type CacheMiss struct {
	Key string
}

// Deconstruct is emitted after a resolver result has been reduced.
type Deconstruct struct {
	Key      string
	Shape    string
	Deferred bool
	Duration time.Duration
}

// CacheStore is emitted after a value has been written to the store.
type CacheStore struct {
	Key   string
	Bytes int
	TTL   time.Duration
	// Async marks writes that happened from a future continuation rather
	// than inline with the resolver call.
	Async bool
}

// CacheStoreError is emitted when a value could not be cached this cycle.
// The resolved data still reached the query layer; only the write was lost.
type CacheStoreError struct {
	Key string
	Err error
}

// CacheExpire is emitted when an entry is removed explicitly.
type CacheExpire struct {
	Key string
}
