package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaego-dev/jaegoboard/internal/domain"
	"github.com/jaego-dev/jaegoboard/internal/engine"
)

func testCache(t *testing.T) (*redisAnalyticsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return newRedisAnalyticsCache(client, time.Minute), mr
}

func sampleResult() *engine.Result {
	return &engine.Result{
		Anchor: domain.NewDate(2024, time.January, 2),
		Skus: []domain.SkuMetrics{
			{SKUID: "X", ProductName: "Shirt", Sales7d: 14, AvgDailySales: 2, DailySales: map[string]int{"2024-01-02": 9}},
		},
	}
}

func TestAnalyticsCacheRoundTrip(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "rev-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "rev-1", sampleResult()))

	got, ok, err := c.Get(ctx, "rev-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-01-02", got.Anchor.String())
	require.Len(t, got.Skus, 1)
	assert.Equal(t, 14, got.Skus[0].Sales7d)
}

func TestAnalyticsCacheRevisionsAreIsolated(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "rev-1", sampleResult()))

	_, ok, err := c.Get(ctx, "rev-2")
	require.NoError(t, err)
	assert.False(t, ok, "a new dataset revision never sees stale results")
}

func TestAnalyticsCacheInvalidateClearsAllRevisions(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "rev-1", sampleResult()))
	require.NoError(t, c.Set(ctx, "rev-2", sampleResult()))
	require.NoError(t, c.Invalidate(ctx))

	for _, rev := range []string{"rev-1", "rev-2"} {
		_, ok, err := c.Get(ctx, rev)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestNoopCacheNeverHits(t *testing.T) {
	c := NewNoopAnalyticsCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "rev-1", sampleResult()))
	_, ok, err := c.Get(ctx, "rev-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx))
}
