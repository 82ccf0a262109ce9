package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pcvolkmer/ags-example/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestCache(t *testing.T, capacity int) (*CacheService, *fakeClock) {
	t.Helper()
	cs, err := NewCacheService(capacity, 30*time.Minute, 5*time.Minute, zap.NewNop())
	require.NoError(t, err)
	clock := newFakeClock()
	cs.now = clock.Now
	return cs, clock
}

func result(query string) *models.CachedResult {
	return models.NewCachedResult(query, []models.Entry{{MunicipalityCode: "11000000", PostalCode: "10115", PlaceName: "Berlin", Similarity: 100}}, time.Time{})
}

func TestCacheService_HitReturnsStoredEntries(t *testing.T) {
	ctx := context.Background()
	cs, _ := newTestCache(t, 10)

	_, found, err := cs.Get(ctx, "berlin")
	require.NoError(t, err)
	assert.False(t, found)

	stored := result("berlin")
	require.NoError(t, cs.Set(ctx, "berlin", stored))

	got, found, err := cs.Get(ctx, "berlin")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, stored.Entries, got.Entries)
	assert.Equal(t, "berlin", got.Query)

	stats, err := cs.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalHits)
	assert.Equal(t, int64(1), stats.TotalMiss)
	assert.Equal(t, int64(1), stats.TotalItems)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
}

func TestCacheService_AbsoluteTTL(t *testing.T) {
	ctx := context.Background()
	cs, clock := newTestCache(t, 10)
	require.NoError(t, cs.Set(ctx, "q", result("q")))

	clock.Advance(30 * time.Minute)
	assert.Equal(t, 1, cs.CleanupExpired())
	assert.Equal(t, 0, cs.Size())

	_, found, _ := cs.Get(ctx, "q")
	assert.False(t, found)
}

func TestCacheService_IdleTTL(t *testing.T) {
	ctx := context.Background()
	cs, clock := newTestCache(t, 10)
	require.NoError(t, cs.Set(ctx, "q", result("q")))

	clock.Advance(5*time.Minute - time.Second)
	_, found, _ := cs.Get(ctx, "q")
	require.True(t, found)

	clock.Advance(5 * time.Minute)
	_, found, _ = cs.Get(ctx, "q")
	assert.False(t, found)
	assert.Equal(t, 0, cs.Size(), "expired entries are removed on access")
}

func TestCacheService_AccessedEntrySurvivesIdleButNotAbsoluteTTL(t *testing.T) {
	ctx := context.Background()
	cs, clock := newTestCache(t, 10)
	require.NoError(t, cs.Set(ctx, "q", result("q")))

	// 7 reads, 4 minutes apart: 28 minutes after insertion
	for i := 0; i < 7; i++ {
		clock.Advance(4 * time.Minute)
		_, found, _ := cs.Get(ctx, "q")
		require.True(t, found, "read %d", i)
	}

	clock.Advance(2 * time.Minute)
	_, found, _ := cs.Get(ctx, "q")
	assert.False(t, found)
}

func TestCacheService_LeastRecentlyUsedEviction(t *testing.T) {
	ctx := context.Background()
	cs, _ := newTestCache(t, 2)

	require.NoError(t, cs.Set(ctx, "a", result("a")))
	require.NoError(t, cs.Set(ctx, "b", result("b")))
	_, found, _ := cs.Get(ctx, "a")
	require.True(t, found)
	require.NoError(t, cs.Set(ctx, "c", result("c")))

	_, found, _ = cs.Get(ctx, "b")
	assert.False(t, found)
	_, found, _ = cs.Get(ctx, "a")
	assert.True(t, found)
	_, found, _ = cs.Get(ctx, "c")
	assert.True(t, found)

	stats, _ := cs.GetStats(ctx)
	assert.Equal(t, int64(1), stats.Evictions)
	assert.Equal(t, int64(2), stats.TotalItems)
}

func TestCacheService_RestoreKeepsInsertionTime(t *testing.T) {
	ctx := context.Background()
	cs, clock := newTestCache(t, 10)

	old := result("q")
	old.InsertedAt = clock.Now().Add(-29 * time.Minute)
	cs.Restore("q", old)

	_, found, _ := cs.Get(ctx, "q")
	require.True(t, found)

	clock.Advance(time.Minute)
	_, found, _ = cs.Get(ctx, "q")
	assert.False(t, found)

	expired := result("x")
	expired.InsertedAt = clock.Now().Add(-31 * time.Minute)
	cs.Restore("x", expired)
	assert.Equal(t, 0, cs.Size())
}

func TestCacheService_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	cs, _ := newTestCache(t, 10)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, cs.Set(ctx, k, result(k)))
	}

	require.NoError(t, cs.Delete(ctx, "a"))
	_, found, _ := cs.Get(ctx, "a")
	assert.False(t, found)
	assert.Equal(t, 2, cs.Size())

	require.NoError(t, cs.Clear(ctx))
	assert.Equal(t, 0, cs.Size())
}

func TestCacheService_CleanupWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cs, clock := newTestCache(t, 10)
	require.NoError(t, cs.Set(ctx, "q", result("q")))
	clock.Advance(10 * time.Minute)

	cs.StartCleanupWorker(ctx, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return cs.Size() == 0 }, time.Second, 10*time.Millisecond)
}

func TestNewCacheService_InvalidCapacity(t *testing.T) {
	_, err := NewCacheService(0, time.Minute, time.Minute, zap.NewNop())
	assert.Error(t, err)
}
