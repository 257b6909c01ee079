package deconstruct

import (
	"reflect"

	future "github.com/hanpama/graphcache/internal/future"
)

// ShapeTag classifies a raw resolver value. The set is closed; adding a tag
// means extending the dispatch in Deconstruct as well.
type ShapeTag int

const (
	ShapeScalar ShapeTag = iota
	ShapeWrapper
	ShapeSequence
	ShapeConnection
	ShapeFuture
)

func (t ShapeTag) String() string {
	switch t {
	case ShapeScalar:
		return "scalar"
	case ShapeWrapper:
		return "wrapper"
	case ShapeSequence:
		return "sequence"
	case ShapeConnection:
		return "connection"
	case ShapeFuture:
		return "future"
	default:
		return "unknown"
	}
}

// Wrapper is the inner-value capability of schema-layer domain wrappers: a
// thin object carrying authorization or context alongside one domain value.
// By schema-layer contract the inner value is a primitive or an ID.
type Wrapper interface {
	Object() any
}

// Connection is a paginated result: an ordered node sequence plus edge and
// cursor metadata that never becomes part of the cache value. Membership in
// the connection family is declared by embedding BaseConnection.
type Connection interface {
	Nodes() []any
	baseConnection()
}

// BaseConnection marks a type as a member of the connection family.
// Connection implementations embed it alongside their Nodes accessor.
type BaseConnection struct{}

func (BaseConnection) baseConnection() {}

// Shape probes raw's capabilities in a fixed order: Future, then the
// many-valued shapes (Sequence, Connection), then Wrapper, with Scalar as
// the fallback for anything unmatched.
func Shape(raw any) ShapeTag {
	if raw == nil {
		return ShapeScalar
	}
	if _, ok := raw.(future.Thenable); ok {
		return ShapeFuture
	}
	if isSequence(raw) {
		return ShapeSequence
	}
	if _, ok := raw.(Connection); ok {
		return ShapeConnection
	}
	if _, ok := raw.(Wrapper); ok {
		return ShapeWrapper
	}
	return ShapeScalar
}

// isSequence reports whether raw is an ordered, finite, iterable container.
// Strings and byte slices iterate but are cache-safe as-is, so they classify
// as scalars.
func isSequence(raw any) bool {
	if _, ok := raw.([]any); ok {
		return true
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	default:
		return false
	}
}

// sequenceItems normalizes a sequence to []any without touching element
// values. The []any fast path returns the input itself.
func sequenceItems(raw any) []any {
	if direct, ok := raw.([]any); ok {
		return direct
	}
	rv := reflect.ValueOf(raw)
	items := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = rv.Index(i).Interface()
	}
	return items
}
