package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const catalogueKey = "eventconnect:catalogue"

// ErrCacheMiss is returned when no catalogue snapshot is cached.
var ErrCacheMiss = errors.New("catalogue cache miss")

// RedisCache keeps a JSON snapshot of the full event collection with a
// TTL. It is an optimisation only: any error short of a hit is treated as
// a miss by the service and the store is read directly.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) ([]Event, error) {
	data, err := c.client.Get(ctx, catalogueKey).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get catalogue cache: %w", err)
	}

	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode catalogue cache: %w", err)
	}
	return events, nil
}

func (c *RedisCache) Set(ctx context.Context, events []Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode catalogue cache: %w", err)
	}

	if err := c.client.Set(ctx, catalogueKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set catalogue cache: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogueKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalogue cache: %w", err)
	}
	return nil
}
