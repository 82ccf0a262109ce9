package normalizer

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var reSpaces = regexp.MustCompile(`\s+`)

// ASCIIKey transliterates s to lowercase ASCII with single spaces
// ("Bad Tölz" -> "bad tolz", "Großenhain" -> "grossenhain").
// It is only used for suggestions, never for ranking scores.
func ASCIIKey(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	return reSpaces.ReplaceAllString(strings.TrimSpace(s), " ")
}
