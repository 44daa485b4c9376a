package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"librarium/config"
)

var ErrTokenNotFound = errors.New("token not found")

// TokenStore keeps the metadata of issued bearer tokens. A token whose id is
// no longer in the store is treated as expired.
type TokenStore interface {
	Save(ctx context.Context, tokenID, login string, ttl time.Duration) error
	Fetch(ctx context.Context, tokenID string) (string, error)
}

type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, tokenID, login string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(tokenID), login, ttl).Err()
}

func (s *RedisTokenStore) Fetch(ctx context.Context, tokenID string) (string, error) {
	login, err := s.client.Get(ctx, tokenKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return login, nil
}

func tokenKey(tokenID string) string {
	return fmt.Sprintf("token:%s", tokenID)
}

// NewRedisClient connects to redis and verifies the connection with a ping.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}
