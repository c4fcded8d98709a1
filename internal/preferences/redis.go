package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps preferences in one hash per profile, so several machines can share a profile.
type RedisStore struct {
	client  *redis.Client
	profile string
}

func NewRedisStore(client *redis.Client, profile string) *RedisStore {
	return &RedisStore{client: client, profile: profile}
}

func (s *RedisStore) hashKey() string {
	return profileHashKey(s.profile)
}

func profileHashKey(profile string) string {
	return fmt.Sprintf("nova:preferences:%s", profile)
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.hashKey(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.HSet(ctx, s.hashKey(), key, value).Err(); err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}
