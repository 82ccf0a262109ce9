package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) *RedisCacheService {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	prefix := "ags:test:" + uuid.Must(uuid.NewV4()).String() + ":"
	rcs, err := NewRedisCacheService(url, prefix, 30*time.Minute, 5*time.Minute, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = rcs.Clear(context.Background())
		_ = rcs.Close()
	})
	return rcs
}

func TestRedisCacheService_SetGet(t *testing.T) {
	rcs := newTestRedis(t)
	ctx := context.Background()

	_, found, err := rcs.Get(ctx, "berlin")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, rcs.Set(ctx, "berlin", result("berlin")))

	got, found, err := rcs.Get(ctx, "berlin")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "Berlin", got.Entries[0].PlaceName)
	assert.Equal(t, uint8(100), got.Entries[0].Similarity)

	ttl, err := rcs.GetTTL(ctx, "berlin")
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, 5*time.Minute)
	assert.Greater(t, ttl, 4*time.Minute)
}

func TestRedisCacheService_AbsoluteTTL(t *testing.T) {
	rcs := newTestRedis(t)
	ctx := context.Background()
	require.NoError(t, rcs.Set(ctx, "q", result("q")))

	clock := newFakeClock()
	clock.t = time.Now().Add(29 * time.Minute)
	rcs.now = clock.Now

	_, found, err := rcs.Get(ctx, "q")
	require.NoError(t, err)
	require.True(t, found)

	ttl, err := rcs.GetTTL(ctx, "q")
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Minute, "key TTL is capped by the remaining lifetime")

	clock.Advance(2 * time.Minute)
	_, found, err = rcs.Get(ctx, "q")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheService_DeleteClearStats(t *testing.T) {
	rcs := newTestRedis(t)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, rcs.Set(ctx, k, result(k)))
	}
	require.NoError(t, rcs.Delete(ctx, "a"))

	stats, err := rcs.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalItems)
	assert.Equal(t, "redis", stats.Backend)

	require.NoError(t, rcs.Clear(ctx))
	stats, err = rcs.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalItems)
}

func TestHybridCacheService_RestoresFromRedis(t *testing.T) {
	rcs := newTestRedis(t)
	ctx := context.Background()

	memory, clock := newTestCache(t, 10)
	hcs := NewHybridCacheService(memory, rcs, zap.NewNop())

	require.NoError(t, rcs.Set(ctx, "q", result("q")))
	require.Equal(t, 0, memory.Size())

	got, found, err := hcs.Get(ctx, "q")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "q", got.Query)
	assert.Equal(t, 1, memory.Size())

	// memory keeps the Redis insertion time, which is near wall-clock now
	clock.t = time.Now().Add(31 * time.Minute)
	_, found, _ = memory.Get(ctx, "q")
	assert.False(t, found)
}

func TestHybridCacheService_SetWritesBothTiers(t *testing.T) {
	rcs := newTestRedis(t)
	ctx := context.Background()

	memory, err := NewCacheService(10, 30*time.Minute, 5*time.Minute, zap.NewNop())
	require.NoError(t, err)
	hcs := NewHybridCacheService(memory, rcs, zap.NewNop())

	require.NoError(t, hcs.Set(ctx, "q", result("q")))
	assert.Equal(t, 1, memory.Size())

	_, found, err := rcs.Get(ctx, "q")
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, hcs.Clear(ctx))
	assert.Equal(t, 0, memory.Size())

	stats, err := hcs.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hybrid", stats.Backend)
}
