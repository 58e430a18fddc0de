package session

import (
	"context"
	"time"

	"ai-webchat-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is the default single-process backend, an expiring in-memory
// cache. State does not survive a restart.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	// Sessions expire after TTL of inactivity; expired entries are purged
	// every 10 minutes.
	return &MemoryStore{
		cache: cache.New(TTL, 10*time.Minute),
	}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*entity.SessionState, error) {
	if x, found := s.cache.Get(sessionID); found {
		return x.(*entity.SessionState), nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, state *entity.SessionState) error {
	s.cache.Set(sessionID, state, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}
