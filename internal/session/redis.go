package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps one key per live token; the key expires with the token.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return &RedisStore{Client: client}, nil
}

func (s *RedisStore) Create(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis: session %s already expired", jti)
	}
	return s.Client.Set(ctx, keyPrefix+jti, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *RedisStore) Active(ctx context.Context, jti string) (bool, error) {
	n, err := s.Client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Revoke(ctx context.Context, jti string) error {
	return s.Client.Del(ctx, keyPrefix+jti).Err()
}

func (s *RedisStore) Close() error {
	return s.Client.Close()
}
