package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "whitespace only", input: " \t\n ", expected: ""},
		{name: "trims and lowercases", input: "  Berlin ", expected: "berlin"},
		{name: "umlauts", input: "MÜNCHEN", expected: "münchen"},
		{name: "sharp s is kept", input: "Großenhain", expected: "großenhain"},
		{name: "postal and place", input: "10115 Berlin", expected: "10115 berlin"},
		{name: "inner whitespace kept", input: "Frankfurt  am Main", expected: "frankfurt  am main"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, input := range []string{"Köln", " 50667 KÖLN ", "Bad Tölz"} {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), input)
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty(" a "))
}

func TestPatternExtractor_ExtractPostalPlace(t *testing.T) {
	pe := NewPatternExtractor()

	testCases := []struct {
		query  string
		ok     bool
		postal string
		place  string
	}{
		{query: "10115 berlin", ok: true, postal: "10115", place: "berlin"},
		{query: "10115   berlin mitte", ok: true, postal: "10115", place: "berlin mitte"},
		{query: "10115\tberlim", ok: true, postal: "10115", place: "berlim"},
		{query: "10115", ok: false},
		{query: "10115 ", ok: false},
		{query: "1011 berlin", ok: false},
		{query: "berlin 10115", ok: false},
		{query: "101155 berlin", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			pp, ok := pe.ExtractPostalPlace(tc.query)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.ok, pe.IsPostalPlace(tc.query))
			if tc.ok {
				assert.Equal(t, tc.postal, pp.PostalCode)
				assert.Equal(t, tc.place, pp.Place)
			}
		})
	}
}

func TestASCIIKey(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "Bad Tölz", expected: "bad tolz"},
		{input: "  MÜNCHEN ", expected: "munchen"},
		{input: "Frankfurt  am\tMain", expected: "frankfurt am main"},
		{input: "berlin", expected: "berlin"},
		{input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, ASCIIKey(tc.input))
		})
	}
}
