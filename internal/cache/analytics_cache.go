package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jaego-dev/jaegoboard/internal/config"
	"github.com/jaego-dev/jaegoboard/internal/engine"
)

const (
	analyticsResultKeyPrefix = "analytics:result"
	analyticsScanBatchSize   = 100
)

// AnalyticsCache stores one computed engine.Result per dataset revision.
// Every write to the fact store must bump the revision and Invalidate, never
// patch a cached result.
type AnalyticsCache interface {
	Get(ctx context.Context, revision string) (*engine.Result, bool, error)
	Set(ctx context.Context, revision string, result *engine.Result) error
	Invalidate(ctx context.Context) error
}

type redisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalyticsCache struct{}

// NewAnalyticsCache builds the redis-backed cache, or a noop cache when
// caching is disabled.
func NewAnalyticsCache(cfg config.CacheConfig) (AnalyticsCache, error) {
	if !cfg.Enabled {
		return &noopAnalyticsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalyticsCache{client: client, ttl: ttl}, nil
}

// NewNoopAnalyticsCache returns a cache that never hits.
func NewNoopAnalyticsCache() AnalyticsCache {
	return &noopAnalyticsCache{}
}

func newRedisAnalyticsCache(client *redis.Client, ttl time.Duration) *redisAnalyticsCache {
	return &redisAnalyticsCache{client: client, ttl: ttl}
}

func (c *redisAnalyticsCache) Get(ctx context.Context, revision string) (*engine.Result, bool, error) {
	payload, err := c.client.Get(ctx, analyticsResultKey(revision)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result engine.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode analytics result cache: %w", err)
	}
	return &result, true, nil
}

func (c *redisAnalyticsCache) Set(ctx context.Context, revision string, result *engine.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode analytics result cache: %w", err)
	}
	if err := c.client.Set(ctx, analyticsResultKey(revision), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalyticsCache) Invalidate(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, analyticsResultKeyPrefix, analyticsScanBatchSize)
}

func (n *noopAnalyticsCache) Get(ctx context.Context, revision string) (*engine.Result, bool, error) {
	return nil, false, nil
}

func (n *noopAnalyticsCache) Set(ctx context.Context, revision string, result *engine.Result) error {
	return nil
}

func (n *noopAnalyticsCache) Invalidate(ctx context.Context) error {
	return nil
}

func analyticsResultKey(revision string) string {
	return fmt.Sprintf("%s:%s", analyticsResultKeyPrefix, revision)
}
