package search

import (
	"sort"
	"strings"

	"github.com/pcvolkmer/ags-example/app/models"
)

// statePrefixLen is the length of a state id.
const statePrefixLen = 2

// EntrySource is the read side of the entry store.
type EntrySource interface {
	Len() int
	Range(fn func(i int, e *models.Entry) bool)
}

// ZipIndex maps postal codes to the districts they are assigned to.
// It is built once from an immutable store and is safe for concurrent use.
type ZipIndex struct {
	source    EntrySource
	districts map[string][]string // postal code -> distinct district codes, first-seen order
	ambiguous map[string]struct{}
}

// NewZipIndex scans the whole source once.
func NewZipIndex(source EntrySource) *ZipIndex {
	districts := make(map[string][]string)
	source.Range(func(_ int, e *models.Entry) bool {
		if e.PostalCode == "" {
			return true
		}
		list := districts[e.PostalCode]
		for _, d := range list {
			if d == e.DistrictCode {
				return true
			}
		}
		districts[e.PostalCode] = append(list, e.DistrictCode)
		return true
	})

	ambiguous := make(map[string]struct{})
	for zip, list := range districts {
		if len(list) > 1 {
			ambiguous[zip] = struct{}{}
		}
	}

	return &ZipIndex{
		source:    source,
		districts: districts,
		ambiguous: ambiguous,
	}
}

// IsAmbiguous reports whether zip is assigned to more than one district.
func (idx *ZipIndex) IsAmbiguous(zip string) bool {
	_, ok := idx.ambiguous[zip]
	return ok
}

// AmbiguousCount returns the number of ambiguous postal codes in the whole store.
func (idx *ZipIndex) AmbiguousCount() int {
	return len(idx.ambiguous)
}

// PostalCodeCount returns the number of distinct non-empty postal codes.
func (idx *ZipIndex) PostalCodeCount() int {
	return len(idx.districts)
}

// AmbiguousCodes returns, in ascending order, the ambiguous postal codes used
// by entries whose municipality code starts with statePrefix. Prefixes longer
// than two characters are truncated; an empty prefix selects all states.
func (idx *ZipIndex) AmbiguousCodes(statePrefix string) []string {
	prefix := TruncateState(statePrefix)

	seen := make(map[string]struct{})
	idx.source.Range(func(_ int, e *models.Entry) bool {
		if !strings.HasPrefix(e.MunicipalityCode, prefix) {
			return true
		}
		if _, ok := idx.ambiguous[e.PostalCode]; ok {
			seen[e.PostalCode] = struct{}{}
		}
		return true
	})

	codes := make([]string, 0, len(seen))
	for zip := range seen {
		codes = append(codes, zip)
	}
	sort.Strings(codes)
	return codes
}

// DistrictsOf returns the district codes zip is assigned to, in ascending order.
func (idx *ZipIndex) DistrictsOf(zip string) []string {
	out := append([]string(nil), idx.districts[zip]...)
	sort.Strings(out)
	return out
}

// GroupedByFirstDigit buckets AmbiguousCodes(statePrefix) by leading digit.
func (idx *ZipIndex) GroupedByFirstDigit(statePrefix string) models.ZipGroups {
	groups := make(models.ZipGroups)
	for _, zip := range idx.AmbiguousCodes(statePrefix) {
		label := models.BucketLabel(zip)
		groups[label] = append(groups[label], zip)
	}
	return groups
}

// DistrictsTouchingAmbiguousZips returns the distinct district codes, in
// ascending order, of every entry sharing an in-scope ambiguous postal code.
// Districts of other states are included when they share such a code.
func (idx *ZipIndex) DistrictsTouchingAmbiguousZips(statePrefix string) []string {
	set := make(map[string]struct{})
	for _, zip := range idx.AmbiguousCodes(statePrefix) {
		for _, d := range idx.districts[zip] {
			set[d] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// TruncateState cuts a state filter to at most two characters.
func TruncateState(st string) string {
	if len(st) <= statePrefixLen {
		return st
	}
	n := 0
	for i := range st {
		if n == statePrefixLen {
			return st[:i]
		}
		n++
	}
	return st
}
