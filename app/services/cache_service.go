package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/pcvolkmer/ags-example/app/models"
	"go.uber.org/zap"
)

type cacheItem struct {
	result     *models.CachedResult
	lastAccess time.Time
}

// CacheService is the in-memory query cache. Entries expire ttl after
// insertion or idleTTL after their last access, whichever comes first.
// When full, the least recently used entry is evicted.
type CacheService struct {
	mu      sync.Mutex
	lru     *simplelru.LRU[string, *cacheItem]
	ttl     time.Duration
	idleTTL time.Duration
	now     func() time.Time
	logger  *zap.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewCacheService creates a CacheService holding at most capacity entries.
func NewCacheService(capacity int, ttl, idleTTL time.Duration, logger *zap.Logger) (*CacheService, error) {
	l, err := simplelru.NewLRU[string, *cacheItem](capacity, nil)
	if err != nil {
		return nil, fmt.Errorf("creating query cache: %w", err)
	}
	return &CacheService{
		lru:     l,
		ttl:     ttl,
		idleTTL: idleTTL,
		now:     time.Now,
		logger:  logger,
	}, nil
}

// Get returns a live entry and refreshes its idle deadline.
func (cs *CacheService) Get(ctx context.Context, key string) (*models.CachedResult, bool, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	item, ok := cs.lru.Get(key)
	if !ok {
		cs.misses.Add(1)
		return nil, false, nil
	}

	now := cs.now()
	if cs.expired(item, now) {
		cs.lru.Remove(key)
		cs.misses.Add(1)
		return nil, false, nil
	}

	item.lastAccess = now
	cs.hits.Add(1)
	return item.result, true, nil
}

// Set stores result. The insertion time is the current time.
func (cs *CacheService) Set(ctx context.Context, key string, result *models.CachedResult) error {
	now := cs.now()
	stored := *result
	stored.InsertedAt = now
	cs.put(key, &stored, now)
	return nil
}

// Restore stores a result fetched from a shared tier, keeping its original
// insertion time so the absolute deadline is not extended.
func (cs *CacheService) Restore(key string, result *models.CachedResult) {
	now := cs.now()
	if result.IsExpired(now, cs.ttl) {
		return
	}
	cs.put(key, result, now)
}

func (cs *CacheService) put(key string, result *models.CachedResult, now time.Time) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.lru.Add(key, &cacheItem{result: result, lastAccess: now}) {
		cs.evictions.Add(1)
	}
}

// Delete removes key.
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.lru.Remove(key)
	return nil
}

// Clear removes every entry.
func (cs *CacheService) Clear(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.lru.Purge()
	return nil
}

// Size returns the number of stored entries, expired ones included.
func (cs *CacheService) Size() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.lru.Len()
}

// GetStats returns hit and miss counters.
func (cs *CacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := cs.hits.Load(), cs.misses.Load()
	return &CacheStats{
		Backend:    "memory",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(cs.Size()),
		Evictions:  cs.evictions.Load(),
	}, nil
}

// CleanupExpired removes all expired entries and returns how many were removed.
func (cs *CacheService) CleanupExpired() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now()
	removed := 0
	for _, key := range cs.lru.Keys() {
		item, ok := cs.lru.Peek(key)
		if ok && cs.expired(item, now) {
			cs.lru.Remove(key)
			removed++
		}
	}
	return removed
}

// StartCleanupWorker runs CleanupExpired every interval until ctx is done.
// A non-positive interval disables the worker.
func (cs *CacheService) StartCleanupWorker(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := cs.CleanupExpired(); n > 0 {
					cs.logger.Debug("Removed expired cache entries", zap.Int("count", n))
				}
			}
		}
	}()
}

// TTL returns the absolute lifetime of an entry.
func (cs *CacheService) TTL() time.Duration { return cs.ttl }

// IdleTTL returns the lifetime of an entry without access.
func (cs *CacheService) IdleTTL() time.Duration { return cs.idleTTL }

// Close is a no-op for the in-memory cache.
func (cs *CacheService) Close() error {
	return nil
}

func (cs *CacheService) expired(item *cacheItem, now time.Time) bool {
	return item.result.IsExpired(now, cs.ttl) || now.Sub(item.lastAccess) >= cs.idleTTL
}
