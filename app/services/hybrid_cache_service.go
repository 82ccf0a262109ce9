package services

import (
	"context"
	"fmt"

	"github.com/pcvolkmer/ags-example/app/models"
	"go.uber.org/zap"
)

// HybridCacheService combines the in-memory cache (L1) with Redis (L2).
type HybridCacheService struct {
	memory *CacheService
	redis  *RedisCacheService
	logger *zap.Logger
}

// NewHybridCacheService creates a two-tier cache.
func NewHybridCacheService(memory *CacheService, redis *RedisCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		memory: memory,
		redis:  redis,
		logger: logger,
	}
}

// Get tries memory first, then Redis. A Redis hit is copied into memory with
// its original insertion time.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.CachedResult, bool, error) {
	// 1. L1
	if result, found, _ := hcs.memory.Get(ctx, key); found {
		return result, true, nil
	}

	// 2. L2
	result, found, err := hcs.redis.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		hcs.logger.Debug("Cache miss (memory & Redis)", zap.String("key", key))
		return nil, false, nil
	}

	// 3. Copy back into L1
	hcs.memory.Restore(key, result)
	hcs.logger.Debug("L2 cache hit (Redis)", zap.String("key", key))
	return result, true, nil
}

// Set writes both tiers. A Redis failure is returned after memory was written.
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.CachedResult) error {
	_ = hcs.memory.Set(ctx, key, result)
	if err := hcs.redis.Set(ctx, key, result); err != nil {
		return fmt.Errorf("redis tier: %w", err)
	}
	return nil
}

// Delete removes key from both tiers.
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	_ = hcs.memory.Delete(ctx, key)
	return hcs.redis.Delete(ctx, key)
}

// Clear empties both tiers.
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	_ = hcs.memory.Clear(ctx)
	if err := hcs.redis.Clear(ctx); err != nil {
		return err
	}
	hcs.logger.Info("Cleared hybrid cache (memory + Redis)")
	return nil
}

// GetStats combines both tiers. Hits count once, at the tier that served them;
// misses are those of the last tier consulted.
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	memStats, _ := hcs.memory.GetStats(ctx)
	redisStats, err := hcs.redis.GetStats(ctx)
	if err != nil {
		hcs.logger.Warn("Redis stats unavailable", zap.Error(err))
		memStats.Backend = "hybrid"
		return memStats, nil
	}

	hits := memStats.TotalHits + redisStats.TotalHits
	return &CacheStats{
		Backend:    "hybrid",
		HitRate:    hitRate(hits, redisStats.TotalMiss),
		TotalHits:  hits,
		TotalMiss:  redisStats.TotalMiss,
		TotalItems: redisStats.TotalItems,
		Evictions:  memStats.Evictions,
	}, nil
}

// Close closes the Redis connection.
func (hcs *HybridCacheService) Close() error {
	return hcs.redis.Close()
}
