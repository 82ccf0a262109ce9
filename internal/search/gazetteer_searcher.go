// Package search ranks gazetteer entries and indexes ambiguous postal codes.
package search

import (
	"sort"

	"github.com/pcvolkmer/ags-example/app/models"
	"github.com/pcvolkmer/ags-example/internal/matcher"
	"github.com/pcvolkmer/ags-example/internal/normalizer"
	"go.uber.org/zap"
)

// Ranking defaults.
const (
	DefaultMinSimilarity uint8 = 90
	DefaultMaxResults          = 25
)

// SearchConfig holds the ranking policy.
type SearchConfig struct {
	MinSimilarity       uint8
	MaxResults          int
	StructuredThreshold float64
}

// DefaultSearchConfig returns the standard ranking policy.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MinSimilarity:       DefaultMinSimilarity,
		MaxResults:          DefaultMaxResults,
		StructuredThreshold: matcher.DefaultStructuredThreshold,
	}
}

// GazetteerSearcher ranks every store entry against a query.
type GazetteerSearcher struct {
	source EntrySource
	index  *ZipIndex
	scorer *matcher.Scorer
	config SearchConfig
	logger *zap.Logger
}

// NewGazetteerSearcher creates a searcher over an immutable source and its index.
func NewGazetteerSearcher(source EntrySource, index *ZipIndex, config SearchConfig, logger *zap.Logger) *GazetteerSearcher {
	if config.MaxResults <= 0 {
		config.MaxResults = DefaultMaxResults
	}
	return &GazetteerSearcher{
		source: source,
		index:  index,
		scorer: matcher.NewScorer(config.StructuredThreshold),
		config: config,
		logger: logger,
	}
}

// Rank returns at most MaxResults annotated entries with a similarity of at
// least MinSimilarity. Entries are ordered by similarity descending, then all
// deprecated entries are moved behind the current ones. Ties keep store order.
//
// The query must already be normalized. An empty query yields an empty result.
func (gs *GazetteerSearcher) Rank(normalized string) []models.Entry {
	if normalized == "" {
		return []models.Entry{}
	}

	query := gs.scorer.Prepare(normalized)
	matches := make([]models.Entry, 0, 64)
	gs.source.Range(func(_ int, e *models.Entry) bool {
		similarity := gs.scorer.Score(query, e)
		if similarity < gs.config.MinSimilarity {
			return true
		}
		matches = append(matches, e.WithSimilarity(similarity).WithZipCollision(gs.index.IsAmbiguous(e.PostalCode)))
		return true
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	matches = partitionDeprecated(matches)

	if len(matches) > gs.config.MaxResults {
		matches = matches[:gs.config.MaxResults]
	}

	gs.logger.Debug("Ranked query",
		zap.String("query", normalized),
		zap.Int("results", len(matches)))

	return matches
}

// RankRaw normalizes a raw query and ranks it.
func (gs *GazetteerSearcher) RankRaw(raw string) []models.Entry {
	return gs.Rank(normalizer.Normalize(raw))
}

// Index returns the zip index the searcher annotates with.
func (gs *GazetteerSearcher) Index() *ZipIndex {
	return gs.index
}

// partitionDeprecated moves deprecated entries to the end, keeping the
// relative order inside both groups.
func partitionDeprecated(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Deprecated {
			out = append(out, e)
		}
	}
	for _, e := range entries {
		if e.Deprecated {
			out = append(out, e)
		}
	}
	return out
}
