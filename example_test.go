package graphcache_test

import (
	"context"
	"fmt"
	"time"

	graphcache "github.com/hanpama/graphcache"
)

// postRef is a schema-layer wrapper carrying a post ID.
type postRef struct{ id string }

func (r postRef) Object() any { return r.id }

func Example() {
	ctx := context.Background()
	cache := graphcache.New(graphcache.Options{
		Store:      graphcache.NewMemoryStore(),
		DefaultTTL: time.Minute,
	})

	resolver := func(ctx context.Context) (any, error) {
		return []any{postRef{id: "p1"}, postRef{id: "p2"}}, nil
	}

	// First call misses, runs the resolver and stores the reduced value.
	raw, _ := cache.Resolve(ctx, "Query.posts", 0, resolver)
	fmt.Println(graphcache.Shape(raw))

	// Second call hits and returns the plain cache value.
	cached, _ := cache.Resolve(ctx, "Query.posts", 0, resolver)
	fmt.Println(cached)

	// Output:
	// sequence
	// [p1 p2]
}

func ExampleDeconstruct() {
	// A future of a wrapper sequence reduces to the inner values once the
	// future resolves.
	f := graphcache.NewFuture()
	out := graphcache.Deconstruct(f)

	f.Complete([]any{postRef{id: "a"}, postRef{id: "b"}}, nil)

	v, _ := out.(*graphcache.Future).Await(context.Background())
	fmt.Println(v)

	// Output:
	// [a b]
}
