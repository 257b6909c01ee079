// Package deconstruct reduces raw resolver results to cache-safe values.
//
// Resolvers hand back values of many shapes: plain scalars, domain wrappers
// that carry an inner value behind an accessor, ordered sequences, paginated
// connection objects, and futures of any of the above. A cache store can only
// persist plain data, so before a field result is written it must be reduced
// to a scalar or a plain ordered sequence with no wrappers, no connection
// metadata and no pending futures. Deconstruct is that reduction.
//
// # Shape classification
//
// A value's shape is determined structurally, by probing capabilities in a
// fixed order:
//
//  1. Future — the value offers continuation attachment (future.Thenable).
//  2. Sequence — the value is an ordered, finite, iterable container
//     (strings and byte slices are scalars, not sequences).
//  3. Connection — the value descends from the base connection family and
//     offers an ordered Nodes accessor.
//  4. Wrapper — the value offers an inner-value accessor.
//  5. Scalar — everything else; the identity reduction.
//
// The order matters: a future defers entirely to the shape of its resolution,
// and the many-valued shapes are probed before the single-valued wrapper.
// The tag set is closed; a new shape is an explicit, reviewed addition.
//
// # Reduction
//
// Futures are chained, not awaited: deconstructing a future returns a new
// future that resolves to the deconstruction of the resolution, and chains
// always flatten. Sequences whose elements are all wrappers map directly to
// the inner values. Sequences containing futures are joined positionally —
// every element lands at its original index regardless of completion order —
// and the fully-resolved sequence is deconstructed again. Connections reduce
// to their node sequence; edge and cursor metadata is dropped and must be
// recomputed on a cache hit by the layer that owns reconstruction. Anything
// unclassified passes through unchanged. That fallback is a contract, not a
// gap: resolvers may return arbitrary application values that are already
// cache-safe, and the engine must never reject them.
//
// The engine performs no I/O, never logs, and never mutates its input. Errors
// from upstream — a rejected future, a failing accessor — propagate to the
// caller unaltered.
package deconstruct
