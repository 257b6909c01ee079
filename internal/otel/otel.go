// Package otel wires OpenTelemetry tracing to the cache event bus.
package otel

import (
	"context"
	"time"

	eventbus "github.com/hanpama/graphcache/internal/eventbus"
	events "github.com/hanpama/graphcache/internal/events"
	reqid "github.com/hanpama/graphcache/internal/reqid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("graphcache")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer trace.Tracer
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.CacheHit) {
		s.point(ctx, "cache.hit",
			attribute.String("cache.key", e.Key),
			attribute.Int("cache.bytes", e.Bytes))
	})
	eventbus.Subscribe(func(ctx context.Context, e events.CacheMiss) {
		s.point(ctx, "cache.miss",
			attribute.String("cache.key", e.Key))
	})
	eventbus.Subscribe(func(ctx context.Context, e events.Deconstruct) {
		// The reduction already happened; back-date the span start so the
		// duration is preserved.
		_, span := s.tracer.Start(ctx, "cache.deconstruct",
			trace.WithTimestamp(time.Now().Add(-e.Duration)))
		span.SetAttributes(
			attribute.String("cache.key", e.Key),
			attribute.String("value.shape", e.Shape),
			attribute.Bool("value.deferred", e.Deferred))
		s.annotate(ctx, span)
		span.End()
	})
	eventbus.Subscribe(func(ctx context.Context, e events.CacheStore) {
		s.point(ctx, "cache.store",
			attribute.String("cache.key", e.Key),
			attribute.Int("cache.bytes", e.Bytes),
			attribute.String("cache.ttl", e.TTL.String()),
			attribute.Bool("cache.async", e.Async))
	})
	eventbus.Subscribe(func(ctx context.Context, e events.CacheStoreError) {
		_, span := s.tracer.Start(ctx, "cache.store")
		span.SetAttributes(attribute.String("cache.key", e.Key))
		span.RecordError(e.Err)
		s.annotate(ctx, span)
		span.End()
	})
	eventbus.Subscribe(func(ctx context.Context, e events.CacheExpire) {
		s.point(ctx, "cache.expire",
			attribute.String("cache.key", e.Key))
	})
}

func (s *subscriber) point(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	_, span := s.tracer.Start(ctx, name)
	span.SetAttributes(attrs...)
	s.annotate(ctx, span)
	span.End()
}

func (s *subscriber) annotate(ctx context.Context, span trace.Span) {
	if rid, ok := reqid.FromContext(ctx); ok {
		span.SetAttributes(attribute.String("request.id", rid))
	}
}
