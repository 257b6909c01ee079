package otel

import (
	"context"
	"errors"
	"testing"
	"time"

	eventbus "github.com/hanpama/graphcache/internal/eventbus"
	events "github.com/hanpama/graphcache/internal/events"
	reqid "github.com/hanpama/graphcache/internal/reqid"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestSubscriber(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })
	sub := &subscriber{tracer: tp.Tracer("test")}
	sub.register()
	return rec
}

func attrMap(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	m := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestSubscriberTranslatesCacheEvents(t *testing.T) {
	rec := newTestSubscriber(t)
	ctx := context.Background()

	eventbus.Publish(ctx, events.CacheHit{Key: "user:1:posts", Bytes: 12})
	eventbus.Publish(ctx, events.CacheMiss{Key: "user:2:posts"})
	eventbus.Publish(ctx, events.CacheExpire{Key: "user:1:posts"})

	spans := rec.Ended()
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3", len(spans))
	}
	wantNames := []string{"cache.hit", "cache.miss", "cache.expire"}
	for i, span := range spans {
		if span.Name() != wantNames[i] {
			t.Errorf("span %d named %q, want %q", i, span.Name(), wantNames[i])
		}
	}
	hit := attrMap(spans[0])
	if got := hit["cache.key"].AsString(); got != "user:1:posts" {
		t.Errorf("cache.key = %q", got)
	}
	if got := hit["cache.bytes"].AsInt64(); got != 12 {
		t.Errorf("cache.bytes = %d", got)
	}
}

func TestDeconstructSpanPreservesDuration(t *testing.T) {
	rec := newTestSubscriber(t)

	eventbus.Publish(context.Background(), events.Deconstruct{
		Key:      "user:1:posts",
		Shape:    "sequence",
		Deferred: true,
		Duration: 50 * time.Millisecond,
	})

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	span := spans[0]
	if got := span.EndTime().Sub(span.StartTime()); got < 50*time.Millisecond {
		t.Errorf("span duration %v, want at least 50ms", got)
	}
	attrs := attrMap(span)
	if got := attrs["value.shape"].AsString(); got != "sequence" {
		t.Errorf("value.shape = %q", got)
	}
	if !attrs["value.deferred"].AsBool() {
		t.Error("value.deferred not set")
	}
}

func TestStoreErrorRecordedOnSpan(t *testing.T) {
	rec := newTestSubscriber(t)

	eventbus.Publish(context.Background(), events.CacheStoreError{
		Key: "user:1:posts",
		Err: errors.New("backend down"),
	})

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	evs := spans[0].Events()
	if len(evs) != 1 || evs[0].Name != "exception" {
		t.Fatalf("recorded events = %+v, want one exception", evs)
	}
}

func TestSpansCarryRequestID(t *testing.T) {
	rec := newTestSubscriber(t)

	ctx, id := reqid.NewContext(context.Background())
	eventbus.Publish(ctx, events.CacheMiss{Key: "user:1:posts"})

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if got := attrMap(spans[0])["request.id"].AsString(); got != id {
		t.Errorf("request.id = %q, want %q", got, id)
	}
}

func TestSetupDisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup("", "graphcache")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
