// Package cache provides the report summary cache. Summaries are expensive
// aggregate queries, so they are kept in Redis with a short TTL; when Redis is
// not configured the service falls back to a no-op cache and every request
// recomputes.
package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// ReportCache stores serialized report payloads keyed by shop and timeframe
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type redisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache connects to Redis and returns a report cache backed by it
func NewRedisReportCache(addr, password string, db int) (ReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &redisReportCache{client: client}, nil
}

func (c *redisReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if len(payload) == 0 {
		return nil
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func (c *redisReportCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

type noopReportCache struct{}

// NewNoopReportCache returns a cache that never stores anything
func NewNoopReportCache() ReportCache {
	return noopReportCache{}
}

func (noopReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (noopReportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return nil
}

func (noopReportCache) Invalidate(ctx context.Context, key string) error {
	return nil
}
