package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pcvolkmer/ags-example/app/config"
	"github.com/pcvolkmer/ags-example/app/models"
	"github.com/pcvolkmer/ags-example/internal/matcher"
	"github.com/pcvolkmer/ags-example/internal/normalizer"
	"github.com/pcvolkmer/ags-example/internal/search"
	"go.uber.org/zap"
)

// SearchService answers lookups through the query cache.
type SearchService struct {
	searcher     *search.GazetteerSearcher
	cache        IQueryCache
	suggester    *matcher.Suggester
	suggestLimit int
	logger       *zap.Logger
	startTime    time.Time

	searches atomic.Int64
	computed atomic.Int64
}

// NewSearchService creates a SearchService. suggester may be nil.
func NewSearchService(searcher *search.GazetteerSearcher, cache IQueryCache, suggester *matcher.Suggester, suggestLimit int, logger *zap.Logger) *SearchService {
	return &SearchService{
		searcher:     searcher,
		cache:        cache,
		suggester:    suggester,
		suggestLimit: suggestLimit,
		logger:       logger,
		startTime:    time.Now(),
	}
}

// Search returns the ranked entries for a raw query. An empty query returns
// an empty result without consulting the cache. Cache failures are logged
// and the result is computed.
func (ss *SearchService) Search(ctx context.Context, raw string) []models.Entry {
	query := normalizer.Normalize(raw)
	if query == "" {
		return []models.Entry{}
	}
	ss.searches.Add(1)

	ctx, cancel := context.WithTimeout(ctx, config.RequestTimeout())
	defer cancel()

	cached, found, err := ss.cache.Get(ctx, query)
	if err != nil {
		ss.logger.Warn("Query cache lookup failed", zap.Error(err), zap.String("query", query))
	}
	if found {
		return cached.Entries
	}

	entries := ss.searcher.Rank(query)
	ss.computed.Add(1)

	if err := ss.cache.Set(ctx, query, models.NewCachedResult(query, entries, time.Now())); err != nil {
		ss.logger.Warn("Query cache store failed", zap.Error(err), zap.String("query", query))
	}
	return entries
}

// Suggest proposes place names for a query without results.
func (ss *SearchService) Suggest(raw string) []matcher.Suggestion {
	if ss.suggester == nil {
		return nil
	}
	return ss.suggester.Suggest(raw, ss.suggestLimit)
}

// AmbiguousZipsGrouped returns the ambiguous postal codes of a state by leading digit.
func (ss *SearchService) AmbiguousZipsGrouped(state string) models.ZipGroups {
	return ss.searcher.Index().GroupedByFirstDigit(state)
}

// AmbiguousDistricts returns the districts sharing an ambiguous postal code with a state.
func (ss *SearchService) AmbiguousDistricts(state string) []string {
	return ss.searcher.Index().DistrictsTouchingAmbiguousZips(state)
}

// GetStartTime returns when the service was created.
func (ss *SearchService) GetStartTime() time.Time {
	return ss.startTime
}

// SearchStats are the lookup counters since start.
type SearchStats struct {
	Searches      int64 `json:"searches"`
	Computed      int64 `json:"computed"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// GetStats returns the lookup counters.
func (ss *SearchService) GetStats() SearchStats {
	return SearchStats{
		Searches:      ss.searches.Load(),
		Computed:      ss.computed.Load(),
		UptimeSeconds: int64(time.Since(ss.startTime).Seconds()),
	}
}
