// Package cache は redis を使う実装。
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	repo "storefront/internal/repository"
)

// NewRedisClient は URL があれば優先し、無ければ addr/password で接続して Ping する。
func NewRedisClient(ctx context.Context, url, addr, password string) (*redis.Client, error) {
	var opt *redis.Options
	if url != "" {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{
			Addr:     addr,
			Password: password,
			DB:       0,
		}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisSlotStore はカートのスロットを redis の文字列キーに置く。
// ttl が 0 なら期限なし。書き込みのたびに期限を延ばす。
type RedisSlotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotStore(client *redis.Client, ttl time.Duration) *RedisSlotStore {
	return &RedisSlotStore{client: client, ttl: ttl}
}

func (s *RedisSlotStore) Read(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *RedisSlotStore) Write(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *RedisSlotStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

var _ repo.SlotStore = (*RedisSlotStore)(nil)
