package matcher

import (
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/pcvolkmer/ags-example/app/models"
	"github.com/pcvolkmer/ags-example/internal/normalizer"
)

// EntrySource iterates entries in a stable order.
type EntrySource interface {
	Range(fn func(i int, e *models.Entry) bool)
}

// Suggestion is a place name close to a query that found nothing.
type Suggestion struct {
	PlaceName string `json:"ort"`
	Distance  int    `json:"distance"`
}

// Suggester proposes place names by edit distance on transliterated names.
type Suggester struct {
	source      EntrySource
	maxDistance int
}

// NewSuggester creates a Suggester accepting at most maxDistance edits.
func NewSuggester(source EntrySource, maxDistance int) *Suggester {
	if maxDistance <= 0 {
		maxDistance = 2
	}
	return &Suggester{source: source, maxDistance: maxDistance}
}

// Suggest returns up to limit distinct place names ordered by distance, then name.
func (s *Suggester) Suggest(query string, limit int) []Suggestion {
	key := normalizer.ASCIIKey(query)
	if key == "" || limit <= 0 {
		return nil
	}

	best := make(map[string]int)
	s.source.Range(func(_ int, e *models.Entry) bool {
		if _, seen := best[e.PlaceName]; seen {
			return true
		}
		d := levenshtein.ComputeDistance(key, normalizer.ASCIIKey(e.PlaceName))
		if d <= s.maxDistance {
			best[e.PlaceName] = d
		}
		return true
	})

	out := make([]Suggestion, 0, len(best))
	for name, d := range best {
		out = append(out, Suggestion{PlaceName: name, Distance: d})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].PlaceName < out[j].PlaceName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
