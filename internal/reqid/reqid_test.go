package reqid_test

import (
	"context"
	"testing"

	reqid "github.com/hanpama/graphcache/internal/reqid"
)

func TestNewContext(t *testing.T) {
	ctx, id := reqid.NewContext(context.Background())
	if id == "" {
		t.Fatal("empty request ID")
	}
	got, ok := reqid.FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("FromContext = (%q, %v), want (%q, true)", got, ok, id)
	}

	_, id2 := reqid.NewContext(context.Background())
	if id2 == id {
		t.Fatal("request IDs must be unique")
	}
}

func TestFromContext_Absent(t *testing.T) {
	if id, ok := reqid.FromContext(context.Background()); ok || id != "" {
		t.Fatalf("FromContext = (%q, %v), want empty", id, ok)
	}
}
