// Package geojson serves district boundaries as GeoJSON FeatureCollections.
package geojson

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/golang/geo/s2"
	"go.uber.org/zap"
)

//go:embed data/de_small.geojson
var dataFS embed.FS

const defaultFile = "data/de_small.geojson"

// FeatureCollection is a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	BBox     []float64 `json:"bbox,omitempty"`
	Features []Feature `json:"features"`
}

// Feature is one boundary. ID is a district code, or a state id for city states.
type Feature struct {
	Type       string     `json:"type,omitempty"`
	ID         string     `json:"id"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry is a Polygon or MultiPolygon. Coordinates are passed through unchanged.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Properties of a feature.
type Properties struct {
	Name string `json:"name"`
}

var (
	defaultCollection     *FeatureCollection
	defaultCollectionOnce sync.Once
	defaultCollectionErr  error
)

// Default returns the embedded boundaries, parsed on first call.
func Default(logger *zap.Logger) (*FeatureCollection, error) {
	defaultCollectionOnce.Do(func() {
		f, err := dataFS.Open(defaultFile)
		if err != nil {
			defaultCollectionErr = fmt.Errorf("opening embedded boundaries: %w", err)
			return
		}
		defer f.Close()
		defaultCollection, defaultCollectionErr = Load(f, logger)
	})
	return defaultCollection, defaultCollectionErr
}

// LoadFile reads boundaries from disk.
func LoadFile(path string, logger *zap.Logger) (*FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening boundaries %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, logger)
}

// Load parses a FeatureCollection. Features with an unsupported geometry type
// are dropped.
func Load(r io.Reader, logger *zap.Logger) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding boundaries: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("decoding boundaries: unexpected type %q", fc.Type)
	}

	kept := fc.Features[:0]
	for _, f := range fc.Features {
		switch f.Geometry.Type {
		case "Polygon", "MultiPolygon":
			kept = append(kept, f)
		default:
			logger.Warn("Skipping boundary feature", zap.String("id", f.ID), zap.String("geometry", f.Geometry.Type))
		}
	}
	fc.Features = kept
	fc.BBox = nil

	logger.Info("Boundaries loaded", zap.Int("features", len(fc.Features)))
	return &fc, nil
}

// FilterByPrefix returns a new collection with the features whose id starts
// with prefix, and their bounding box. An empty prefix selects all features.
func (fc *FeatureCollection) FilterByPrefix(prefix string) *FeatureCollection {
	out := &FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	for _, f := range fc.Features {
		if strings.HasPrefix(f.ID, prefix) {
			out.Features = append(out.Features, f)
		}
	}
	out.BBox = Bounds(out.Features)
	return out
}

// Bounds returns [minLon, minLat, maxLon, maxLat] over all features, or nil
// when there are no coordinates.
func Bounds(features []Feature) []float64 {
	rect := s2.EmptyRect()
	for _, f := range features {
		for _, p := range f.Geometry.positions() {
			rect = rect.AddPoint(s2.LatLngFromDegrees(p[1], p[0]))
		}
	}
	if rect.IsEmpty() {
		return nil
	}
	lo, hi := rect.Lo(), rect.Hi()
	return []float64{lo.Lng.Degrees(), lo.Lat.Degrees(), hi.Lng.Degrees(), hi.Lat.Degrees()}
}

// positions flattens the rings of a geometry into [lon, lat] pairs.
func (g Geometry) positions() [][]float64 {
	var rings [][][]float64
	switch g.Type {
	case "Polygon":
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil
		}
	case "MultiPolygon":
		var polygons [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &polygons); err != nil {
			return nil
		}
		for _, p := range polygons {
			rings = append(rings, p...)
		}
	}

	var out [][]float64
	for _, ring := range rings {
		for _, pos := range ring {
			if len(pos) >= 2 {
				out = append(out, pos)
			}
		}
	}
	return out
}
