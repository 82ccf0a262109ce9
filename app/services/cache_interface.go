package services

import (
	"context"

	"github.com/pcvolkmer/ags-example/app/models"
)

// CacheStats are the counters of one cache tier.
type CacheStats struct {
	Backend    string  `json:"backend"`
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
	Evictions  int64   `json:"evictions"`
}

// IQueryCache stores ranked results keyed by normalized query.
type IQueryCache interface {
	// Get returns the cached result, or found=false on a miss or expired entry.
	Get(ctx context.Context, key string) (*models.CachedResult, bool, error)

	// Set stores a freshly ranked result.
	Set(ctx context.Context, key string, result *models.CachedResult) error

	Delete(ctx context.Context, key string) error

	// Clear drops every entry.
	Clear(ctx context.Context) error

	GetStats(ctx context.Context) (*CacheStats, error)

	// Close releases connections, if any.
	Close() error
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
