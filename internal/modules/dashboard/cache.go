package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisMarketCache caches market sections in Redis so repeated dashboard
// loads within the TTL skip the upstream API entirely.
type RedisMarketCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMarketCache(client *redis.Client, ttl time.Duration) *RedisMarketCache {
	return &RedisMarketCache{client: client, ttl: ttl}
}

func (c *RedisMarketCache) Get(ctx context.Context, key string) ([]Crypto, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var coins []Crypto
	if err := json.Unmarshal([]byte(val), &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

func (c *RedisMarketCache) Set(ctx context.Context, key string, coins []Crypto) error {
	data, err := json.Marshal(coins)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}

func (c *RedisMarketCache) key(suffix string) string {
	return fmt.Sprintf("market:%s", suffix)
}
