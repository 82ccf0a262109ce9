package gazetteer

import (
	"fmt"
	"strconv"

	"github.com/golang/geo/s2"
	"github.com/pcvolkmer/ags-example/app/models"
)

// earthRadiusKm is the mean earth radius.
const earthRadiusKm = 6371.0088

// DefaultMaxDistanceKm is how far a municipality may lie from its district center.
const DefaultMaxDistanceKm = 100.0

// Violation is one entry failing a consistency check.
type Violation struct {
	Index            int     `json:"index"`
	MunicipalityCode string  `json:"gemeindeschluessel"`
	PlaceName        string  `json:"ort"`
	Problem          string  `json:"problem"`
	DistanceKm       float64 `json:"distance_km,omitempty"`
}

// Report summarizes a Check run.
type Report struct {
	Entries    int         `json:"entries"`
	Deprecated int         `json:"deprecated"`
	Violations []Violation `json:"violations"`
}

// OK reports whether no violation was found.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Check validates derived fields, postal code shape and coordinates of every
// entry. Entries lying further than maxKm from their district center are
// reported; a non-positive maxKm disables the distance check.
func Check(source interface {
	Range(fn func(i int, e *models.Entry) bool)
}, maxKm float64) Report {
	report := Report{Violations: []Violation{}}
	source.Range(func(i int, e *models.Entry) bool {
		report.Entries++
		if e.Deprecated {
			report.Deprecated++
		}
		for _, v := range checkEntry(e, maxKm) {
			v.Index = i
			report.Violations = append(report.Violations, v)
		}
		return true
	})
	return report
}

func checkEntry(e *models.Entry, maxKm float64) []Violation {
	var out []Violation
	add := func(problem string, dist float64) {
		out = append(out, Violation{
			MunicipalityCode: e.MunicipalityCode,
			PlaceName:        e.PlaceName,
			Problem:          problem,
			DistanceKm:       dist,
		})
	}

	if len(e.MunicipalityCode) != models.MunicipalityCodeLen || !isDigits(e.MunicipalityCode) {
		add("municipality code is not 8 digits", 0)
		return out
	}
	if e.DistrictCode != e.MunicipalityCode[:models.DistrictCodeLen] {
		add("district code does not match municipality code", 0)
	}
	if e.DistrictFree != (e.MunicipalityCode[models.DistrictCodeLen:] == "000") {
		add("district-free flag does not match municipality code", 0)
	}
	if e.PostalCode != "" && (len(e.PostalCode) != 5 || !isDigits(e.PostalCode)) {
		add("postal code is not 5 digits", 0)
	}
	if e.Population != nil && !isDigits(*e.Population) {
		add("population is not numeric", 0)
	}

	if maxKm <= 0 {
		return out
	}
	place, ok := latLng(e.Latitude, e.Longitude)
	if !ok {
		add("invalid coordinates", 0)
		return out
	}
	center, ok := latLng(e.DistrictLatitude, e.DistrictLongitude)
	if !ok {
		add("invalid district coordinates", 0)
		return out
	}
	if km := DistanceKm(place, center); km > maxKm {
		add(fmt.Sprintf("%.1f km from district center", km), km)
	}
	return out
}

// DistanceKm returns the great circle distance between two points.
func DistanceKm(a, b s2.LatLng) float64 {
	return a.Distance(b).Radians() * earthRadiusKm
}

func latLng(lat, lon string) (s2.LatLng, bool) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return s2.LatLng{}, false
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return s2.LatLng{}, false
	}
	ll := s2.LatLngFromDegrees(la, lo)
	return ll, ll.IsValid()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
