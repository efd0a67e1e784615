package wishlist

import (
	"context"
	"time"

	"sjsage522/slickdealer/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the wishlist in a redis set
type RedisStore struct {
	client  *redis.Client
	ctx     context.Context
	key     string
	timeout time.Duration
}

// NewRedisStore creates a redis-backed store
func NewRedisStore(ctx context.Context, addr string, db int, key string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisStore{
		client:  client,
		ctx:     ctx,
		key:     key,
		timeout: 5 * time.Second,
	}
}

// Name returns the store name for logging
func (s *RedisStore) Name() string {
	return "redis"
}

// Load reads the set members
func (s *RedisStore) Load() ([]string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	exists, err := s.client.Exists(ctx, s.key).Result()
	if err != nil {
		return nil, errors.NewStoreLoad("redis", "failed to check wishlist key", err)
	}
	if exists == 0 {
		return nil, errors.NewStoreAbsent("redis", s.key)
	}

	// A key holding another type fails with WRONGTYPE
	items, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, errors.NewStoreLoad("redis", "failed to read wishlist set", err)
	}
	return items, nil
}

// Save replaces the set atomically
func (s *RedisStore) Save(items []string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(items) > 0 {
			members := make([]interface{}, len(items))
			for i, item := range items {
				members[i] = item
			}
			pipe.SAdd(ctx, s.key, members...)
		}
		return nil
	})
	if err != nil {
		return errors.NewStoreSave("redis", "failed to write wishlist set", err)
	}
	return nil
}

// Close closes the redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
