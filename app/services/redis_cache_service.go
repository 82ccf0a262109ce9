package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pcvolkmer/ags-example/app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCacheService is a query cache shared between replicas.
//
// The payload carries its insertion time. Every hit resets the key TTL to the
// smaller of the idle TTL and the remaining absolute TTL, so both bounds hold.
type RedisCacheService struct {
	client  *redis.Client
	logger  *zap.Logger
	prefix  string
	ttl     time.Duration
	idleTTL time.Duration
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService connects to redisURL and verifies the connection.
func NewRedisCacheService(redisURL, prefix string, ttl, idleTTL time.Duration, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisCacheService{
		client:  client,
		logger:  logger,
		prefix:  prefix,
		ttl:     ttl,
		idleTTL: idleTTL,
		now:     time.Now,
	}, nil
}

// Get returns a live entry and extends its idle deadline.
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.CachedResult, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		rcs.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("Redis get failed", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var result models.CachedResult
	if err := json.Unmarshal(val, &result); err != nil {
		rcs.logger.Error("Dropping unreadable cache payload", zap.Error(err), zap.String("key", cacheKey))
		_ = rcs.client.Del(ctx, cacheKey).Err()
		rcs.misses.Add(1)
		return nil, false, nil
	}

	now := rcs.now()
	remaining := rcs.ttl - result.Age(now)
	if remaining <= 0 {
		_ = rcs.client.Del(ctx, cacheKey).Err()
		rcs.misses.Add(1)
		return nil, false, nil
	}

	if err := rcs.client.Expire(ctx, cacheKey, min(rcs.idleTTL, remaining)).Err(); err != nil {
		rcs.logger.Warn("Redis expire failed", zap.Error(err), zap.String("key", cacheKey))
	}

	rcs.hits.Add(1)
	rcs.logger.Debug("Redis cache hit", zap.String("key", key))
	return &result, true, nil
}

// Set stores result with the idle TTL.
func (rcs *RedisCacheService) Set(ctx context.Context, key string, result *models.CachedResult) error {
	cacheKey := rcs.prefix + key

	stored := *result
	stored.InsertedAt = rcs.now()

	data, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("encoding cache payload: %w", err)
	}

	if err := rcs.client.Set(ctx, cacheKey, data, min(rcs.idleTTL, rcs.ttl)).Err(); err != nil {
		rcs.logger.Error("Redis set failed", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

// Delete removes key.
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	cacheKey := rcs.prefix + key
	if err := rcs.client.Del(ctx, cacheKey).Err(); err != nil {
		rcs.logger.Error("Redis delete failed", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

// Clear removes all keys under the prefix.
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	deleted := 0
	iter := rcs.client.Scan(ctx, 0, rcs.prefix+"*", 500).Iterator()
	batch := make([]string, 0, 500)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := rcs.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("deleting cache keys: %w", err)
			}
			deleted += len(batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning cache keys: %w", err)
	}
	if len(batch) > 0 {
		if err := rcs.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("deleting cache keys: %w", err)
		}
		deleted += len(batch)
	}

	rcs.logger.Info("Cleared Redis cache", zap.Int("keys_deleted", deleted))
	return nil
}

// GetStats returns the counters of this replica and the shared key count.
func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	var items int64
	iter := rcs.client.Scan(ctx, 0, rcs.prefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		items++
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("counting cache keys: %w", err)
	}

	hits, misses := rcs.hits.Load(), rcs.misses.Load()
	return &CacheStats{
		Backend:    "redis",
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: items,
	}, nil
}

// GetTTL returns the remaining key TTL.
func (rcs *RedisCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return rcs.client.TTL(ctx, rcs.prefix+key).Result()
}

// Ping checks the connection.
func (rcs *RedisCacheService) Ping(ctx context.Context) error {
	return rcs.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}
