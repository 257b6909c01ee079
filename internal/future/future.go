// Package future provides a write-once deferred value with continuation
// chaining and an order-preserving join.
//
// A Future settles exactly once, either with a value or with an error.
// Waiting is expressed as continuation attachment: Then never blocks, and a
// continuation that returns another future is adopted, so a chain always
// yields a single flat future of the final result. Await bridges back into
// ordinary blocking code for callers that sit at the edge of a request.
package future

import (
	"context"
	"sync"
	"sync/atomic"
)

// Thenable is the capability a value must offer to participate in chaining:
// attach a success continuation, get back a future of its result. *Future
// implements it; application promise types may too.
type Thenable interface {
	Then(fn func(v any) (any, error)) *Future
}

// Future is a deferred result. The zero value is not usable; construct with
// NewFuture, Resolved or Rejected.
type Future struct {
	mu   sync.Mutex
	done chan struct{}
	val  any
	err  error
	subs []func(any, error)
}

// NewFuture returns an unsettled future. Settle it with Complete.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a future already settled with v.
func Resolved(v any) *Future {
	f := NewFuture()
	f.Complete(v, nil)
	return f
}

// Rejected returns a future already settled with err.
func Rejected(err error) *Future {
	f := NewFuture()
	f.Complete(nil, err)
	return f
}

// Complete settles f with (v, err). If v is itself a Thenable and err is nil,
// f adopts that future's eventual resolution instead of resolving to the
// future value, so a future never settles with another future inside it.
// Completing an already-settled future is a no-op; the first settle wins.
func (f *Future) Complete(v any, err error) {
	if err == nil {
		if t, ok := v.(Thenable); ok {
			f.adopt(t)
			return
		}
	}
	f.settle(v, err)
}

func (f *Future) adopt(t Thenable) {
	if inner, ok := t.(*Future); ok {
		inner.subscribe(f.settle)
		return
	}
	// Foreign thenables expose only success chaining; route them through a
	// derived *Future, which carries rejections as well.
	t.Then(func(v any) (any, error) { return v, nil }).subscribe(f.settle)
}

// settle records the outcome and runs subscribers in attachment order.
// Values arriving here are plain: Complete strips futures before settling.
func (f *Future) settle(v any, err error) {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		return
	default:
	}
	f.val, f.err = v, err
	subs := f.subs
	f.subs = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range subs {
		fn(v, err)
	}
}

// subscribe registers fn to run when f settles. If f is already settled, fn
// runs synchronously before subscribe returns.
func (f *Future) subscribe(fn func(any, error)) {
	f.mu.Lock()
	select {
	case <-f.done:
		v, err := f.val, f.err
		f.mu.Unlock()
		fn(v, err)
		return
	default:
	}
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
}

// Then attaches fn as a success continuation and returns a future of fn's
// result. If f rejects, fn is skipped and the rejection propagates to the
// returned future unmodified. If fn returns a Thenable, the returned future
// adopts it: chains flatten, they never nest.
func (f *Future) Then(fn func(v any) (any, error)) *Future {
	out := NewFuture()
	f.subscribe(func(v any, err error) {
		if err != nil {
			out.settle(nil, err)
			return
		}
		out.Complete(fn(v))
	})
	return out
}

// Catch attaches fn as a rejection observer and returns f unchanged. It does
// not recover the chain; it exists for logging and accounting at the edges.
func (f *Future) Catch(fn func(error)) *Future {
	f.subscribe(func(_ any, err error) {
		if err != nil {
			fn(err)
		}
	})
	return f
}

// Settled reports whether f has completed.
func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Await blocks until f settles or ctx is done, whichever comes first.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// All joins items into a future of []any. Thenable items are awaited; plain
// items are carried through untouched. Every result lands at the position of
// the item that produced it, regardless of completion order. The join
// resolves once all futures have resolved; the first rejection rejects the
// whole join.
func All(items []any) *Future {
	join := NewFuture()
	results := make([]any, len(items))

	var pending int64
	for i, item := range items {
		if _, ok := item.(Thenable); ok {
			pending++
		} else {
			results[i] = item
		}
	}
	if pending == 0 {
		join.settle(results, nil)
		return join
	}

	remaining := new(atomic.Int64)
	remaining.Store(pending)
	for i, item := range items {
		t, ok := item.(Thenable)
		if !ok {
			continue
		}
		idx := i
		asFuture(t).subscribe(func(v any, err error) {
			if err != nil {
				join.settle(nil, err)
				return
			}
			results[idx] = v
			if remaining.Add(-1) == 0 {
				join.settle(results, nil)
			}
		})
	}
	return join
}

func asFuture(t Thenable) *Future {
	if f, ok := t.(*Future); ok {
		return f
	}
	return t.Then(func(v any) (any, error) { return v, nil })
}
