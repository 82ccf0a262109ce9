package services

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/pcvolkmer/ags-example/app/models"
	"github.com/pcvolkmer/ags-example/internal/normalizer"
	"github.com/pcvolkmer/ags-example/internal/search"
	"go.uber.org/zap"
)

// AdminService reports dataset and cache statistics and manages the cache.
type AdminService struct {
	source search.EntrySource
	index  *search.ZipIndex
	cache  IQueryCache
	search *SearchService
	logger *zap.Logger
}

// DatasetStats describes the loaded gazetteer.
type DatasetStats struct {
	Entries            int `json:"entries"`
	DeprecatedEntries  int `json:"deprecated_entries"`
	DistrictFree       int `json:"district_free_entries"`
	WithoutPopulation  int `json:"entries_without_population"`
	PostalCodes        int `json:"postal_codes"`
	AmbiguousPostCodes int `json:"ambiguous_postal_codes"`
}

// SystemStats is the admin stats payload.
type SystemStats struct {
	Dataset     DatasetStats           `json:"dataset"`
	Cache       *CacheStats            `json:"cache"`
	Search      SearchStats            `json:"search"`
	Uptime      string                 `json:"uptime"`
	MemoryUsage map[string]interface{} `json:"memory_usage"`
}

// NewAdminService creates an AdminService.
func NewAdminService(source search.EntrySource, index *search.ZipIndex, cache IQueryCache, searchService *SearchService, logger *zap.Logger) *AdminService {
	return &AdminService{
		source: source,
		index:  index,
		cache:  cache,
		search: searchService,
		logger: logger,
	}
}

// GetDatasetStats counts entries by attribute.
func (as *AdminService) GetDatasetStats() DatasetStats {
	stats := DatasetStats{
		Entries:            as.source.Len(),
		PostalCodes:        as.index.PostalCodeCount(),
		AmbiguousPostCodes: as.index.AmbiguousCount(),
	}
	as.source.Range(func(_ int, e *models.Entry) bool {
		if e.Deprecated {
			stats.DeprecatedEntries++
		}
		if e.DistrictFree {
			stats.DistrictFree++
		}
		if !e.HasPopulation() {
			stats.WithoutPopulation++
		}
		return true
	})
	return stats
}

// GetSystemStats collects dataset, cache and runtime statistics.
func (as *AdminService) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	cacheStats, err := as.cache.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading cache stats: %w", err)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	searchStats := as.search.GetStats()
	return &SystemStats{
		Dataset: as.GetDatasetStats(),
		Cache:   cacheStats,
		Search:  searchStats,
		Uptime:  time.Since(as.search.GetStartTime()).Round(time.Second).String(),
		MemoryUsage: map[string]interface{}{
			"alloc_mb":       bToMb(m.Alloc),
			"total_alloc_mb": bToMb(m.TotalAlloc),
			"sys_mb":         bToMb(m.Sys),
			"num_gc":         m.NumGC,
		},
	}, nil
}

// InvalidateCache drops one query, or every query when query is empty.
func (as *AdminService) InvalidateCache(ctx context.Context, raw string) error {
	query := normalizer.Normalize(raw)
	if query == "" {
		if err := as.cache.Clear(ctx); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		as.logger.Info("Query cache cleared")
		return nil
	}
	if err := as.cache.Delete(ctx, query); err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	as.logger.Info("Query cache entry removed", zap.String("query", query))
	return nil
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
