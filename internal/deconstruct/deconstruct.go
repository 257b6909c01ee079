package deconstruct

import (
	future "github.com/hanpama/graphcache/internal/future"
)

// Deconstruct reduces raw to a value the cache store can persist directly.
//
// If no part of raw is a pending future, the reduction is returned
// synchronously. If any part is, the result is a *future.Future resolving to
// the fully-reduced value; callers must treat the return as potentially
// deferred. A rejected upstream future rejects the returned future with the
// same error.
func Deconstruct(raw any) any {
	switch Shape(raw) {
	case ShapeFuture:
		// Await, then deconstruct the resolution. Then adopts any future the
		// recursion yields, so a future of a future collapses to one level.
		return raw.(future.Thenable).Then(func(v any) (any, error) {
			return Deconstruct(v), nil
		})
	case ShapeSequence:
		return deconstructSequence(raw)
	case ShapeConnection:
		// Edge and cursor metadata is intentionally dropped here; only the
		// node sequence is cacheable.
		return Deconstruct(raw.(Connection).Nodes())
	case ShapeWrapper:
		// Inner values are primitive by schema-layer contract; no recursion.
		return raw.(Wrapper).Object()
	default:
		return raw
	}
}

func deconstructSequence(raw any) any {
	items := sequenceItems(raw)
	if len(items) == 0 {
		return items
	}
	if allWrappers(items) {
		inner := make([]any, len(items))
		for i, item := range items {
			inner[i] = item.(Wrapper).Object()
		}
		return inner
	}
	if anyFuture(items) {
		// Join all elements at their original positions, then run the
		// resolved sequence through Deconstruct again so nested shapes
		// reduce uniformly.
		return future.All(items).Then(func(v any) (any, error) {
			return Deconstruct(v), nil
		})
	}
	// Already plain; pass through unchanged.
	return raw
}

func allWrappers(items []any) bool {
	for _, item := range items {
		if _, ok := item.(Wrapper); !ok {
			return false
		}
	}
	return true
}

func anyFuture(items []any) bool {
	for _, item := range items {
		if _, ok := item.(future.Thenable); ok {
			return true
		}
	}
	return false
}
