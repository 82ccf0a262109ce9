package matcher

import (
	"testing"

	"github.com/pcvolkmer/ags-example/app/models"
	"github.com/pcvolkmer/ags-example/internal/normalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(code, plz, place string) *models.Entry {
	return &models.Entry{
		MunicipalityCode: code,
		DistrictCode:     code[0:5],
		PostalCode:       plz,
		PlaceName:        place,
		PlaceKey:         normalizer.Fold(place),
	}
}

func TestScorer_Score(t *testing.T) {
	scorer := NewScorer(DefaultStructuredThreshold)
	berlin := entry("11000000", "10115", "Berlin")
	muenchen := entry("09162000", "80331", "München")
	koeln := entry("05315000", "50667", "Köln")

	testCases := []struct {
		name     string
		query    string
		entry    *models.Entry
		expected uint8
	}{
		{name: "prefix of postal code", query: "1011", entry: berlin, expected: 100},
		{name: "full postal code", query: "10115", entry: berlin, expected: 100},
		{name: "prefix of place name", query: "berl", entry: berlin, expected: 100},
		{name: "prefix of postal and place", query: "10115 ber", entry: berlin, expected: 100},
		{name: "structured exact", query: "10115 berlin", entry: berlin, expected: 100},
		{name: "structured misspelled", query: "10115 berlim", entry: berlin, expected: 100},
		{name: "structured other postal code", query: "10117 berlin", entry: berlin, expected: 0},
		{name: "structured distant place", query: "10115 hamburg", entry: berlin, expected: 0},
		{name: "free text misspelled", query: "berlim", entry: berlin, expected: 93},
		{name: "free text unrelated", query: "xyz", entry: berlin, expected: 0},
		{name: "umlaut prefix", query: "münch", entry: muenchen, expected: 100},
		{name: "umlaut typed without dots", query: "munchen", entry: muenchen, expected: 91},
		{name: "umlaut spelled out", query: "muenchen", entry: muenchen, expected: 78},
		{name: "structured umlaut typed without dots", query: "50667 koln", entry: koeln, expected: 100},
		{name: "empty query", query: "", entry: berlin, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, scorer.ScoreString(tc.query, tc.entry))
		})
	}
}

func TestScorer_StructuredThreshold(t *testing.T) {
	berlin := entry("11000000", "10115", "Berlin")

	strict := NewScorer(0.95)
	assert.Equal(t, uint8(0), strict.ScoreString("10115 berlim", berlin))

	fallback := NewScorer(0)
	assert.Equal(t, DefaultStructuredThreshold, fallback.structuredThreshold)
	assert.Equal(t, uint8(100), fallback.ScoreString("10115 berlim", berlin))
}

func TestScorer_ScoreInRange(t *testing.T) {
	scorer := NewScorer(DefaultStructuredThreshold)
	entries := []*models.Entry{
		entry("11000000", "10115", "Berlin"),
		entry("12060020", "16321", "Bernau bei Berlin"),
		entry("16061009", "37339", "Berlingerode"),
		entry("03152012", "37073", "Göttingen"),
	}

	for _, q := range []string{"b", "berlin", "gottingen", "37", "37073 göttingen", "zz", "ö"} {
		prepared := scorer.Prepare(q)
		for _, e := range entries {
			score := scorer.Score(prepared, e)
			assert.LessOrEqual(t, score, MaxScore, "%s / %s", q, e.PlaceName)
		}
	}
}

func TestJaroWinkler(t *testing.T) {
	assert.InDelta(t, 1.0, JaroWinkler("berlin", "berlin"), 1e-9)
	assert.InDelta(t, 0.9333, JaroWinkler("berlim", "berlin"), 1e-3)
	assert.GreaterOrEqual(t, JaroWinkler("berlim", "berlin"), DefaultStructuredThreshold)
	assert.InDelta(t, 0.0, JaroWinkler("xyz", "berlin"), 1e-9)
}

func TestJaroWinkler_CountsCharacters(t *testing.T) {
	testCases := []struct {
		a, b     string
		expected float64
	}{
		{a: "koln", b: "köln", expected: 0.85},
		{a: "munchen", b: "münchen", expected: 0.9143},
		{a: "wurzburg", b: "würzburg", expected: 0.925},
		{a: "bornsen", b: "börnsen", expected: 0.9143},
		{a: "köln", b: "köln", expected: 1},
		{a: "ß", b: "ö", expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			assert.InDelta(t, tc.expected, JaroWinkler(tc.a, tc.b), 1e-3)
		})
	}

	assert.GreaterOrEqual(t, JaroWinkler("koln", "köln"), DefaultStructuredThreshold)
}

func TestRecode(t *testing.T) {
	a, b := recode("berlin", "berlim")
	assert.Equal(t, "berlin", a, "ASCII input is passed through")
	assert.Equal(t, "berlim", b)

	a, b = recode("köln", "koln")
	assert.Len(t, a, 4)
	assert.Len(t, b, 4)
	assert.Equal(t, a[0], b[0])
	assert.NotEqual(t, a[1], b[1])
	assert.Equal(t, a[2:], b[2:])
}

func TestSuggester_Suggest(t *testing.T) {
	source := fixtureSource{
		*entry("09162000", "80331", "München"),
		*entry("09162000", "80333", "München"),
		*entry("09173147", "83646", "Bad Tölz"),
		*entry("11000000", "10115", "Berlin"),
	}
	s := NewSuggester(source, 2)

	got := s.Suggest("Munchen", 5)
	require.Len(t, got, 1)
	assert.Equal(t, Suggestion{PlaceName: "München", Distance: 0}, got[0])

	got = s.Suggest("bad tols", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "Bad Tölz", got[0].PlaceName)
	assert.Equal(t, 1, got[0].Distance)

	assert.Empty(t, s.Suggest("hamburg", 5))
	assert.Empty(t, s.Suggest("  ", 5))
	assert.Empty(t, s.Suggest("berlin", 0))
}

type fixtureSource []models.Entry

func (f fixtureSource) Range(fn func(i int, e *models.Entry) bool) {
	for i := range f {
		if !fn(i, &f[i]) {
			return
		}
	}
}
