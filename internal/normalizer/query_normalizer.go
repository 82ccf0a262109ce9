package normalizer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize trims and lowercases a raw query. The result is the cache key and
// the input of every scorer call.
func Normalize(raw string) string {
	return Fold(strings.TrimSpace(raw))
}

// Fold applies the full Unicode lowercase mapping.
//
// A cases.Caser keeps state between calls, so each call gets its own.
func Fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Lower(language.German).String(s)
}

// IsEmpty reports whether a raw query normalizes to the empty string.
func IsEmpty(raw string) bool {
	return strings.TrimSpace(raw) == ""
}
