package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

const keyPrefix = "weather-terminal:lookup:"

// RedisStore keeps the last lookup in Redis, optionally expiring it
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect parses redisURL, creates a client, and verifies connectivity with a ping.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

// OpenRedis connects to redisURL. A ttl of zero keeps the lookup forever.
func OpenRedis(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	client, err := Connect(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	return NewRedisStore(client, ttl), nil
}

// NewRedisStore wraps an existing client
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) SaveLast(ctx context.Context, last models.LastLookup) error {
	if last.SavedAt.IsZero() {
		last.SavedAt = time.Now()
	}

	b, err := json.Marshal(last)
	if err != nil {
		return fmt.Errorf("marshaling last lookup: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+lastKey, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set last lookup: %w", err)
	}
	return nil
}

// LoadLast returns nil, nil on a miss, including after the TTL expired
func (s *RedisStore) LoadLast(ctx context.Context) (*models.LastLookup, error) {
	val, err := s.client.Get(ctx, keyPrefix+lastKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get last lookup: %w", err)
	}

	var last models.LastLookup
	if err := json.Unmarshal([]byte(val), &last); err != nil {
		return nil, fmt.Errorf("unmarshaling last lookup: %w", err)
	}
	return &last, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
