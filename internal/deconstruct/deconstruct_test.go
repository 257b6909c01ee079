package deconstruct_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	deconstruct "github.com/hanpama/graphcache/internal/deconstruct"
)

func TestDeconstruct_Scalars(t *testing.T) {
	cases := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"int", 7},
		{"float", 1.5},
		{"string", "hello"},
		{"bool", false},
		{"bytes", []byte("payload")},
		{"map", map[string]any{"id": "1", "name": "a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := deconstruct.Deconstruct(tc.raw)
			if diff := cmp.Diff(tc.raw, got); diff != "" {
				t.Fatalf("identity violated (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeconstruct_Sequences(t *testing.T) {
	t.Run("plain sequence passes through", func(t *testing.T) {
		raw := []any{1, "two", 3.0}
		got := deconstruct.Deconstruct(raw)
		if diff := cmp.Diff(raw, got); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("typed slice passes through", func(t *testing.T) {
		raw := []int{1, 2, 3}
		got := deconstruct.Deconstruct(raw)
		if diff := cmp.Diff(raw, got); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty sequence", func(t *testing.T) {
		got := deconstruct.Deconstruct([]any{})
		if diff := cmp.Diff([]any{}, got); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty typed slice reduces to empty", func(t *testing.T) {
		got := deconstruct.Deconstruct([]idWrapper{})
		if diff := cmp.Diff([]any{}, got); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestDeconstruct_Wrappers(t *testing.T) {
	t.Run("single wrapper unwraps", func(t *testing.T) {
		got := deconstruct.Deconstruct(idWrapper{v: "inner"})
		if got != "inner" {
			t.Fatalf("got %v, want inner", got)
		}
	})

	t.Run("wrapper sequence maps to inner values in order", func(t *testing.T) {
		raw := []any{idWrapper{v: 1}, idWrapper{v: 2}, idWrapper{v: 3}}
		got := deconstruct.Deconstruct(raw)
		if diff := cmp.Diff([]any{1, 2, 3}, got); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("typed wrapper slice maps to inner values", func(t *testing.T) {
		raw := []idWrapper{{v: "a"}, {v: "b"}}
		got := deconstruct.Deconstruct(raw)
		if diff := cmp.Diff([]any{"a", "b"}, got); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("mixed wrapper and scalar sequence passes through", func(t *testing.T) {
		// Not all elements are wrappers and none are futures, so the
		// sequence is treated as already plain.
		raw := []any{idWrapper{v: 1}, 2}
		got := deconstruct.Deconstruct(raw)
		if diff := cmp.Diff(raw, got, cmp.AllowUnexported(idWrapper{})); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestDeconstruct_Connections(t *testing.T) {
	t.Run("connection reduces to nodes, metadata dropped", func(t *testing.T) {
		raw := pageConnection{nodes: []any{1, 2, 3}, endCursor: "c3", hasNext: true}
		got := deconstruct.Deconstruct(raw)
		if diff := cmp.Diff([]any{1, 2, 3}, got); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("connection of wrappers reduces to inner values", func(t *testing.T) {
		raw := pageConnection{nodes: []any{idWrapper{v: "a"}, idWrapper{v: "b"}}}
		got := deconstruct.Deconstruct(raw)
		if diff := cmp.Diff([]any{"a", "b"}, got); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty connection reduces to empty sequence", func(t *testing.T) {
		got := deconstruct.Deconstruct(pageConnection{nodes: []any{}})
		if diff := cmp.Diff([]any{}, got); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nodes accessor outside the family is untouched", func(t *testing.T) {
		raw := nodesOnly{nodes: []any{1}}
		got := deconstruct.Deconstruct(raw)
		if diff := cmp.Diff(raw, got, cmp.AllowUnexported(nodesOnly{})); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestDeconstruct_Idempotence(t *testing.T) {
	cases := []any{
		nil,
		42,
		"s",
		[]any{1, 2, 3},
		[]any{},
		map[string]any{"k": []any{1.0, 2.0}},
	}
	for _, c := range cases {
		once := deconstruct.Deconstruct(c)
		twice := deconstruct.Deconstruct(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("not idempotent for %#v (-once +twice):\n%s", c, diff)
		}
	}
}
