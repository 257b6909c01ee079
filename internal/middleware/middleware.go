// Package middleware is the resolver-level caching layer: it consults the
// store before a resolver runs, and after a cache miss reduces the resolver
// result through the deconstruction engine and writes it back, best-effort.
//
// Caching never affects query correctness. Whatever the resolver returned is
// handed to the query layer unchanged; a rejected future, an encode failure
// or a store failure only means the field is not cached this cycle.
package middleware

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	codec "github.com/hanpama/graphcache/internal/codec"
	deconstruct "github.com/hanpama/graphcache/internal/deconstruct"
	eventbus "github.com/hanpama/graphcache/internal/eventbus"
	events "github.com/hanpama/graphcache/internal/events"
	future "github.com/hanpama/graphcache/internal/future"
	hints "github.com/hanpama/graphcache/internal/hints"
	reqid "github.com/hanpama/graphcache/internal/reqid"
	store "github.com/hanpama/graphcache/internal/store"
)

// ResolveFunc produces the raw value for a field. It may return a plain
// value or a future of one.
type ResolveFunc func(ctx context.Context) (any, error)

// Options configures a Middleware. Store is required; the rest defaults.
type Options struct {
	Store store.Store
	// Codec encodes cache values for storage. Defaults to codec.JSON.
	Codec codec.Codec
	// DefaultTTL applies when neither the caller nor a schema hint sets
	// one. Zero stores without expiry.
	DefaultTTL time.Duration
	// Hints supplies per-field TTLs read from the schema. Optional.
	Hints *hints.Hints
	// Logger receives best-effort failure reports. Defaults to a silent
	// logger.
	Logger *log.Logger
}

// Middleware caches resolver results by key.
type Middleware struct {
	store store.Store
	codec codec.Codec
	ttl   time.Duration
	hints *hints.Hints
	log   *log.Logger
}

// New creates a Middleware from opts. It panics if opts.Store is nil, since
// a middleware without a store has no reason to exist; use store.NewNull to
// disable caching.
func New(opts Options) *Middleware {
	if opts.Store == nil {
		panic("middleware: Options.Store is required")
	}
	m := &Middleware{
		store: opts.Store,
		codec: opts.Codec,
		ttl:   opts.DefaultTTL,
		hints: opts.Hints,
		log:   opts.Logger,
	}
	if m.codec == nil {
		m.codec = codec.JSON{}
	}
	if m.log == nil {
		m.log = log.New(io.Discard)
	}
	return m
}

// Resolve returns the cached value for key if present, otherwise runs fn and
// caches its reduced result with the given ttl (zero means the default TTL).
//
// On a miss the raw resolver value is returned as-is, futures included; the
// cache write happens inline for synchronous values and from a continuation
// for deferred ones.
func (m *Middleware) Resolve(ctx context.Context, key string, ttl time.Duration, fn ResolveFunc) (any, error) {
	if data, ok := m.lookup(ctx, key); ok {
		v, err := m.codec.Decode(data)
		if err == nil {
			eventbus.Publish(ctx, events.CacheHit{Key: key, Bytes: len(data)})
			return v, nil
		}
		// An undecodable entry behaves like a miss and is dropped so it
		// cannot poison the next lookup.
		m.logFor(ctx).Warn("dropping undecodable cache entry", "key", key, "codec", m.codec.Name(), "err", err)
		_ = m.store.Expire(ctx, key)
	}
	eventbus.Publish(ctx, events.CacheMiss{Key: key})

	raw, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = m.ttl
	}

	start := time.Now()
	value := deconstruct.Deconstruct(raw)
	f, deferred := value.(*future.Future)
	eventbus.Publish(ctx, events.Deconstruct{
		Key:      key,
		Shape:    deconstruct.Shape(raw).String(),
		Deferred: deferred,
		Duration: time.Since(start),
	})

	if deferred {
		// The request may finish before the value resolves; keep the write
		// alive past cancellation.
		bg := context.WithoutCancel(ctx)
		f.Then(func(v any) (any, error) {
			m.write(bg, key, ttl, v, true)
			return nil, nil
		}).Catch(func(err error) {
			eventbus.Publish(bg, events.CacheStoreError{Key: key, Err: err})
			m.logFor(bg).Debug("field not cached this cycle", "key", key, "err", err)
		})
		return raw, nil
	}

	m.write(ctx, key, ttl, value, false)
	return raw, nil
}

// ResolveField is Resolve with the TTL taken from the schema hint declared
// on typeName.fieldName. Fields without a hint use the default TTL.
func (m *Middleware) ResolveField(ctx context.Context, typeName, fieldName, key string, fn ResolveFunc) (any, error) {
	var ttl time.Duration
	if hint, ok := m.hints.Field(typeName, fieldName); ok {
		ttl = hint.StoreTTL()
	}
	return m.Resolve(ctx, key, ttl, fn)
}

// Expire removes key from the store.
func (m *Middleware) Expire(ctx context.Context, key string) error {
	if err := m.store.Expire(ctx, key); err != nil {
		return err
	}
	eventbus.Publish(ctx, events.CacheExpire{Key: key})
	return nil
}

func (m *Middleware) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.logFor(ctx).Warn("cache lookup failed", "key", key, "err", err)
		return nil, false
	}
	return data, ok
}

// logFor attaches the request correlation ID when the context carries one.
func (m *Middleware) logFor(ctx context.Context) *log.Logger {
	if rid, ok := reqid.FromContext(ctx); ok {
		return m.log.With("request_id", rid)
	}
	return m.log
}

func (m *Middleware) write(ctx context.Context, key string, ttl time.Duration, value any, async bool) {
	data, err := m.codec.Encode(value)
	if err != nil {
		eventbus.Publish(ctx, events.CacheStoreError{Key: key, Err: err})
		m.logFor(ctx).Debug("field not cached this cycle", "key", key, "codec", m.codec.Name(), "err", err)
		return
	}
	if err := m.store.Set(ctx, key, data, ttl); err != nil {
		eventbus.Publish(ctx, events.CacheStoreError{Key: key, Err: err})
		m.logFor(ctx).Warn("cache write failed", "key", key, "err", err)
		return
	}
	eventbus.Publish(ctx, events.CacheStore{Key: key, Bytes: len(data), TTL: ttl, Async: async})
}
