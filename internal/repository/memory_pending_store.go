package repository

import (
	"context"
	"sync"
)

// MemoryPendingStore is the in-process fallback for the pending-action
// slot, used when no Redis address is configured and by tests.
type MemoryPendingStore struct {
	mu      sync.Mutex
	actions map[string]string
}

func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{actions: make(map[string]string)}
}

func (s *MemoryPendingStore) Set(_ context.Context, userID, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[userID] = action
	return nil
}

func (s *MemoryPendingStore) Consume(_ context.Context, userID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	action, ok := s.actions[userID]
	if ok {
		delete(s.actions, userID)
	}
	return action, ok, nil
}

func (s *MemoryPendingStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.actions, userID)
	return nil
}
