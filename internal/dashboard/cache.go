package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "dashboard:version"

// Cache wraps Redis based caching for the stats payload. A nil cache or
// client degrades to straight-through loads; the dashboard must keep working
// when Redis is down.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// BuildKey composes a month-scoped stats key with the current version.
func (c *Cache) BuildKey(ctx context.Context, month string) (string, error) {
	if c == nil || c.client == nil {
		return "dashboard:stats:" + month, nil
	}
	ver, err := c.version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("dashboard:stats:%s:%d", month, ver), nil
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// FetchStats loads cached stats or populates them using the loader.
func (c *Cache) FetchStats(ctx context.Context, key string, loader func(context.Context) (Stats, error)) (Stats, error) {
	if c == nil || c.client == nil {
		return loader(ctx)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var stats Stats
		if err := json.Unmarshal(payload, &stats); err == nil {
			return stats, nil
		}
	} else if err != redis.Nil {
		return loader(ctx)
	}

	stats, err := loader(ctx)
	if err != nil {
		return Stats{}, err
	}
	if raw, err := json.Marshal(stats); err == nil {
		_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	return stats, nil
}

// Bump invalidates cached stats by incrementing the version.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}
