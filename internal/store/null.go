package store

import (
	"context"
	"time"
)

// Null is a store that never retains anything: every lookup misses and every
// write succeeds. Use it to disable caching without changing call sites.
type Null struct{}

// NewNull creates a null store.
func NewNull() *Null { return &Null{} }

func (*Null) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (*Null) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (*Null) Expire(ctx context.Context, key string) error { return nil }

func (*Null) Close() error { return nil }

var _ Store = (*Null)(nil)
