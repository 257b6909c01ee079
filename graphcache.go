// Package graphcache caches resolver results for graph-query APIs.
//
// The heart of the package is the value deconstruction engine: resolver
// results arrive as scalars, domain wrappers, sequences, paginated
// connections or futures of any of those, and a cache store can only hold
// plain data. Deconstruct reduces any resolver result to a cache-safe value,
// threading through asynchronous resolution wherever part of the value is
// still pending. Around the engine sit a caching middleware, pluggable store
// backends (memory, Redis, MongoDB), value codecs, and schema-driven TTL
// hints.
//
// Typical embedding:
//
//	cache := graphcache.New(graphcache.Options{
//	    Store:      graphcache.NewRedisStore(graphcache.RedisConfig{Addr: "localhost:6379"}),
//	    DefaultTTL: 5 * time.Minute,
//	})
//
//	v, err := cache.Resolve(ctx, key, 0, func(ctx context.Context) (any, error) {
//	    return loadPosts(ctx, userID)
//	})
//
// The resolver's raw value is always returned to the query layer unchanged;
// caching is best-effort and never affects query correctness.
package graphcache

import (
	"context"

	codec "github.com/hanpama/graphcache/internal/codec"
	deconstruct "github.com/hanpama/graphcache/internal/deconstruct"
	eventbus "github.com/hanpama/graphcache/internal/eventbus"
	events "github.com/hanpama/graphcache/internal/events"
	future "github.com/hanpama/graphcache/internal/future"
	hints "github.com/hanpama/graphcache/internal/hints"
	middleware "github.com/hanpama/graphcache/internal/middleware"
	otelwire "github.com/hanpama/graphcache/internal/otel"
	reqid "github.com/hanpama/graphcache/internal/reqid"
	store "github.com/hanpama/graphcache/internal/store"
)

// Capability types the engine probes resolver results for.
type (
	// Wrapper exposes one inner value behind an accessor.
	Wrapper = deconstruct.Wrapper
	// Connection is a paginated result in the base connection family.
	Connection = deconstruct.Connection
	// BaseConnection is embedded to join the connection family.
	BaseConnection = deconstruct.BaseConnection
	// ShapeTag classifies a raw resolver value.
	ShapeTag = deconstruct.ShapeTag
)

// Future is a deferred resolver result.
type Future = future.Future

// Thenable is the continuation-attachment capability of deferred values.
type Thenable = future.Thenable

// Middleware wiring.
type (
	Middleware  = middleware.Middleware
	Options     = middleware.Options
	ResolveFunc = middleware.ResolveFunc
)

// Store and codec surfaces.
type (
	Store       = store.Store
	Codec       = codec.Codec
	RedisConfig = store.RedisConfig
	MongoConfig = store.MongoConfig
)

// Hints carry per-field cache policy read from a schema.
type (
	Hints = hints.Hints
	Hint  = hints.Hint
)

// New creates a caching middleware from opts.
func New(opts Options) *Middleware { return middleware.New(opts) }

// Deconstruct reduces raw to a cache-safe value, or to a *Future of one when
// any part of raw is still pending.
func Deconstruct(raw any) any { return deconstruct.Deconstruct(raw) }

// Shape reports the classification Deconstruct will dispatch raw on.
func Shape(raw any) ShapeTag { return deconstruct.Shape(raw) }

// NewFuture returns an unsettled future.
func NewFuture() *Future { return future.NewFuture() }

// Resolved returns a future already settled with v.
func Resolved(v any) *Future { return future.Resolved(v) }

// Rejected returns a future already settled with err.
func Rejected(err error) *Future { return future.Rejected(err) }

// Store constructors.
func NewMemoryStore() Store { return store.NewMemory() }
func NewNullStore() Store   { return store.NewNull() }
func NewRedisStore(cfg RedisConfig) Store {
	return store.NewRedis(cfg)
}
func NewMongoStore(ctx context.Context, cfg MongoConfig) (Store, error) {
	return store.NewMongo(ctx, cfg)
}

// Codecs.
func JSONCodec() Codec  { return codec.JSON{} }
func ProtoCodec() Codec { return codec.Proto{} }

// LoadHints parses sdl and collects @cache directives.
func LoadHints(name, sdl string) (*Hints, error) { return hints.Load(name, sdl) }

// Events published by the middleware. Subscribe to these to feed metrics or
// tracing; with no bus installed every publish is a no-op.
type (
	CacheHit        = events.CacheHit
	CacheMiss       = events.CacheMiss
	CacheStore      = events.CacheStore
	CacheStoreError = events.CacheStoreError
	CacheExpire     = events.CacheExpire
	Deconstructed   = events.Deconstruct
)

// Bus dispatches events to handlers registered for their dynamic type.
type Bus = eventbus.Bus

// NewBus creates an empty event bus.
func NewBus() *Bus { return eventbus.New() }

// UseBus installs b as the process-wide event bus. Passing nil disables
// publishing.
func UseBus(b *Bus) { eventbus.Use(b) }

// Subscribe registers h with the process-wide bus and returns a function
// that removes the registration.
func Subscribe[T any](h func(context.Context, T)) (unsubscribe func()) {
	return eventbus.Subscribe(eventbus.Handler[T](h))
}

// NewRequestContext returns a copy of parent carrying a fresh request
// correlation ID, and the ID itself. Middleware log lines and spans produced
// under the returned context are tagged with it.
func NewRequestContext(parent context.Context) (context.Context, string) {
	return reqid.NewContext(parent)
}

// RequestID extracts the request correlation ID from ctx, reporting whether
// one was present.
func RequestID(ctx context.Context) (string, bool) {
	return reqid.FromContext(ctx)
}

// SetupTelemetry configures an OTLP trace exporter for the given endpoint
// and subscribes span-producing handlers to the installed event bus. The
// returned function flushes and shuts the exporter down. An empty endpoint
// disables telemetry.
func SetupTelemetry(endpoint, service string) (func(context.Context) error, error) {
	return otelwire.Setup(endpoint, service)
}
