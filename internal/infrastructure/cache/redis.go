package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"qrkeeper/internal/app/server/config"
)

const keyPrefix = "qrkeeper:dest:"

const DefaultTTL = 10 * time.Minute

// DestinationCache хранит адреса dynamic-кодов для редиректа.
type DestinationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient возвращает nil, если адрес Redis не задан.
func NewClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewDestinationCache(client *redis.Client, ttl time.Duration) *DestinationCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DestinationCache{client: client, ttl: ttl}
}

func (c *DestinationCache) Get(ctx context.Context, id string) (string, bool, error) {
	dest, err := c.client.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get %s: %w", id, err)
	}
	return dest, true, nil
}

func (c *DestinationCache) Set(ctx context.Context, id, destination string) error {
	if err := c.client.Set(ctx, key(id), destination, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", id, err)
	}
	return nil
}

func (c *DestinationCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", id, err)
	}
	return nil
}

// Ping нужен health-проверке.
func (c *DestinationCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

func key(id string) string {
	return keyPrefix + id
}
