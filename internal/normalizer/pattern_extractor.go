package normalizer

import (
	"regexp"
)

// PostalPlace is a query of the form "<5 digit postal code> <place>"
type PostalPlace struct {
	PostalCode string // Five digits
	Place      string // Everything after the separating whitespace
}

// PatternExtractor recognizes structured query forms
type PatternExtractor struct {
	rePostalPlace *regexp.Regexp
}

// NewPatternExtractor creates a PatternExtractor
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{
		rePostalPlace: regexp.MustCompile(`^(?P<plz>[0-9]{5})\s+(?P<ort>.+)`),
	}
}

// IsPostalPlace reports whether the query has the structured postal+place form
func (pe *PatternExtractor) IsPostalPlace(query string) bool {
	return pe.rePostalPlace.MatchString(query)
}

// ExtractPostalPlace splits a structured query into its parts
func (pe *PatternExtractor) ExtractPostalPlace(query string) (PostalPlace, bool) {
	m := pe.rePostalPlace.FindStringSubmatch(query)
	if m == nil {
		return PostalPlace{}, false
	}
	return PostalPlace{
		PostalCode: m[pe.rePostalPlace.SubexpIndex("plz")],
		Place:      m[pe.rePostalPlace.SubexpIndex("ort")],
	}, true
}
