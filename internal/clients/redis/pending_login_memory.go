package redis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

type memoryPendingLoginStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryPendingLoginStore is the in-process fallback used when no
// REDIS_ADDR is configured. Single-instance deployments lose nothing; the
// records are ephemeral by definition.
func NewMemoryPendingLoginStore(ttl time.Duration) PendingLoginStore {
	return &memoryPendingLoginStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (s *memoryPendingLoginStore) Create(_ context.Context, userID uuid.UUID) (string, error) {
	handle := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[handle] = memoryEntry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	return handle, nil
}

func (s *memoryPendingLoginStore) Get(_ context.Context, handle string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[handle]
	if !ok {
		return uuid.Nil, ErrNoPendingLogin
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, handle)
		return uuid.Nil, ErrNoPendingLogin
	}
	return entry.userID, nil
}

func (s *memoryPendingLoginStore) Delete(_ context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, handle)
	return nil
}
