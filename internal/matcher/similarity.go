// Package matcher scores gazetteer entries against a normalized query.
package matcher

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/pcvolkmer/ags-example/app/models"
	"github.com/pcvolkmer/ags-example/internal/normalizer"
	"github.com/xrash/smetrics"
)

const (
	// MaxScore is the similarity of a prefix or structured match.
	MaxScore uint8 = 100

	// DefaultStructuredThreshold is the Jaro-Winkler bound for the place part
	// of a "<plz> <place>" query.
	DefaultStructuredThreshold = 0.85

	boostThreshold = 0.7
	prefixSize     = 4
)

// Scorer computes the similarity of one entry for one query.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	extractor           *normalizer.PatternExtractor
	structuredThreshold float64
}

// NewScorer creates a Scorer. A threshold outside (0, 1] falls back to the default.
func NewScorer(structuredThreshold float64) *Scorer {
	if structuredThreshold <= 0 || structuredThreshold > 1 {
		structuredThreshold = DefaultStructuredThreshold
	}
	return &Scorer{
		extractor:           normalizer.NewPatternExtractor(),
		structuredThreshold: structuredThreshold,
	}
}

// Query is a normalized query with its structured form parsed once.
type Query struct {
	Text       string
	postal     normalizer.PostalPlace
	structured bool
}

// Prepare parses a normalized query for repeated scoring.
func (s *Scorer) Prepare(normalized string) Query {
	pp, ok := s.extractor.ExtractPostalPlace(normalized)
	return Query{Text: normalized, postal: pp, structured: ok}
}

// Score returns the similarity (0..100) of e for a prepared query.
// The first matching tier wins.
func (s *Scorer) Score(q Query, e *models.Entry) uint8 {
	if q.Text == "" {
		return 0
	}

	if isPrefixMatch(q.Text, e) {
		return MaxScore
	}

	if q.structured {
		if q.postal.PostalCode != e.PostalCode {
			return 0
		}
		if JaroWinkler(q.postal.Place, e.PlaceKey) >= s.structuredThreshold {
			return MaxScore
		}
		return 0
	}

	return toScore(JaroWinkler(q.Text, e.PlaceKey))
}

// ScoreString prepares and scores in one step.
func (s *Scorer) ScoreString(normalized string, e *models.Entry) uint8 {
	return s.Score(s.Prepare(normalized), e)
}

func isPrefixMatch(q string, e *models.Entry) bool {
	// postal codes are digits, so no folding is needed on them
	if strings.HasPrefix(e.PostalCode, q) || strings.HasPrefix(e.PlaceKey, q) {
		return true
	}
	if len(q) <= len(e.PostalCode) {
		return false
	}
	// q is a prefix of "<plz> <place>"
	rest, ok := strings.CutPrefix(q, e.PostalCode+" ")
	return ok && strings.HasPrefix(e.PlaceKey, rest)
}

// JaroWinkler returns the Jaro-Winkler similarity of two lowercased strings,
// counted in characters.
func JaroWinkler(a, b string) float64 {
	a, b = recode(a, b)
	return smetrics.JaroWinkler(a, b, boostThreshold, prefixSize)
}

// recode maps every distinct rune of a and b to a single byte. smetrics
// compares bytes, so "köln" would otherwise be five symbols long.
// Only rune equality matters to Jaro-Winkler, so the score is unchanged.
func recode(a, b string) (string, string) {
	if isASCII(a) && isASCII(b) {
		return a, b
	}
	symbols := make(map[rune]byte)
	enc := func(s string) ([]byte, bool) {
		out := make([]byte, 0, len(s))
		for _, r := range s {
			sym, ok := symbols[r]
			if !ok {
				if len(symbols) > math.MaxUint8 {
					return nil, false
				}
				sym = byte(len(symbols))
				symbols[r] = sym
			}
			out = append(out, sym)
		}
		return out, true
	}
	ra, okA := enc(a)
	rb, okB := enc(b)
	if !okA || !okB {
		// more than 256 distinct characters, score the raw bytes
		return a, b
	}
	return string(ra), string(rb)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func toScore(sim float64) uint8 {
	switch {
	case sim <= 0:
		return 0
	case sim >= 1:
		return MaxScore
	}
	return uint8(math.Floor(sim * 100))
}
