package ai

import (
	"context"
	"encoding/json"
	"time"

	"wrenchworks/models"

	"github.com/go-redis/redis/v8"
)

const chatContextPrefix = "chat:ctx:"

// RedisContextStore keeps the rolling conversation per client with a TTL, so
// stale conversations expire on their own.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, clientID string) (*models.ChatContext, error) {
	data, err := s.client.Get(ctx, chatContextPrefix+clientID).Result()
	if err == redis.Nil {
		return &models.ChatContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var chatCtx models.ChatContext
	if err := json.Unmarshal([]byte(data), &chatCtx); err != nil {
		return nil, err
	}
	return &chatCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, clientID string, chatCtx *models.ChatContext) error {
	b, err := json.Marshal(chatCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, chatContextPrefix+clientID, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, chatContextPrefix+clientID).Err()
}
