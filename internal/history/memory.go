package history

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps history for the life of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	keys map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string][]string)}
}

func (s *MemoryStore) ServedKeys(ctx context.Context, packID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.keys[packID]), nil
}

func (s *MemoryStore) MarkServed(ctx context.Context, packID, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.keys[packID], key) {
		s.keys[packID] = append(s.keys[packID], key)
	}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, packID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, packID)
	return nil
}
