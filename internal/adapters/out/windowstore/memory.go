// Package windowstore holds the ordering-window flag. The memory store serves
// a single instance; the Redis store lets several instances share the flag.
package windowstore

import (
	"context"
	"sync"
)

// MemoryStore implements ports.WindowStore in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	open bool
}

// NewMemoryStore starts with the given flag.
func NewMemoryStore(open bool) *MemoryStore {
	return &MemoryStore{open: open}
}

func (s *MemoryStore) IsOpen(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open, nil
}

func (s *MemoryStore) SetOpen(_ context.Context, open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
	return nil
}

func (s *MemoryStore) Toggle(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open, nil
}
