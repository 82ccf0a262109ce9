package models

import "time"

// CachedResult is a ranked result set stored by the query cache
type CachedResult struct {
	Query      string    `json:"query"`       // Normalized query, also the cache key
	Entries    []Entry   `json:"entries"`     // Ranked and annotated entries
	InsertedAt time.Time `json:"inserted_at"` // Start of the absolute lifetime
}

// NewCachedResult wraps entries computed for query at the given time
func NewCachedResult(query string, entries []Entry, insertedAt time.Time) *CachedResult {
	return &CachedResult{
		Query:      query,
		Entries:    entries,
		InsertedAt: insertedAt,
	}
}

// Age returns how long ago the result was computed
func (cr *CachedResult) Age(now time.Time) time.Duration {
	return now.Sub(cr.InsertedAt)
}

// IsExpired reports whether the absolute lifetime has elapsed
func (cr *CachedResult) IsExpired(now time.Time, ttl time.Duration) bool {
	return cr.Age(now) >= ttl
}
