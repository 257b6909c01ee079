package middleware

import (
	"context"
	"sync"
	"time"

	store "github.com/hanpama/graphcache/internal/store"
)

// StoreCall records a single store invocation for test assertions.
type StoreCall struct {
	Op   string // "get", "set", "expire"
	Key  string
	Data []byte
	TTL  time.Duration
}

// MockStore implements store.Store over an in-memory map and records every
// call. Individual operations can be made to fail.
type MockStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	calls   []StoreCall

	GetErr error
	SetErr error
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{entries: make(map[string][]byte)}
}

func (s *MockStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, StoreCall{Op: "get", Key: key})
	if s.GetErr != nil {
		return nil, false, s.GetErr
	}
	data, ok := s.entries[key]
	return data, ok, nil
}

func (s *MockStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, StoreCall{Op: "set", Key: key, Data: data, TTL: ttl})
	if s.SetErr != nil {
		return s.SetErr
	}
	s.entries[key] = data
	return nil
}

func (s *MockStore) Expire(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, StoreCall{Op: "expire", Key: key})
	delete(s.entries, key)
	return nil
}

func (s *MockStore) Close() error { return nil }

// Calls returns a copy of the recorded invocations.
func (s *MockStore) Calls() []StoreCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StoreCall(nil), s.calls...)
}

// Payload returns the stored bytes for key, if present.
func (s *MockStore) Payload(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[key]
	return data, ok
}

var _ store.Store = (*MockStore)(nil)
