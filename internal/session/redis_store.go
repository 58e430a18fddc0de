package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ai-webchat-be/internal/entity"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "webchat:session:"

// RedisStore keeps sessions in Redis so they survive restarts and can be
// shared by multiple instances behind a proxy.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*entity.SessionState, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var state entity.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if state.Chats == nil {
		state.Chats = make(map[string]*entity.ChatThread)
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, state *entity.SessionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+sessionID, raw, TTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
