// Package gazetteer holds the immutable in-memory table of municipality entries.
package gazetteer

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pcvolkmer/ags-example/app/models"
	"github.com/pcvolkmer/ags-example/internal/normalizer"
	"go.uber.org/zap"
)

//go:embed data/ags.csv
var dataFS embed.FS

// DefaultDataFile is the path of the embedded dataset.
const DefaultDataFile = "data/ags.csv"

// Column positions in the source CSV.
const (
	colMunicipalityCode = iota
	colPostalCode
	colPlaceName
	colDistrictName
	colStateName
	colLatitude
	colLongitude
	colDistrictLatitude
	colDistrictLongitude
	colDeprecated
	colPopulation
	colPrimaryZip

	minColumns = colDistrictLongitude + 1
)

// ErrInvalidRecord is returned by FromRecord for rows that violate the entry invariants.
var ErrInvalidRecord = errors.New("invalid gazetteer record")

// Store is the read-only entry table. It is safe for concurrent use.
type Store struct {
	entries []models.Entry
}

var (
	defaultStore     *Store
	defaultStoreOnce sync.Once
	defaultStoreErr  error
)

// Default returns the store built from the embedded dataset, loading it on first call.
func Default(logger *zap.Logger) (*Store, error) {
	defaultStoreOnce.Do(func() {
		f, err := dataFS.Open(DefaultDataFile)
		if err != nil {
			defaultStoreErr = fmt.Errorf("opening embedded dataset: %w", err)
			return
		}
		defer f.Close()
		defaultStore, defaultStoreErr = Load(f, logger)
	})
	return defaultStore, defaultStoreErr
}

// LoadFile builds a store from a CSV file on disk.
func LoadFile(path string, logger *zap.Logger) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, logger)
}

// Load parses CSV with a header row into a store. Rows that cannot form a
// valid entry are skipped and logged.
func Load(r io.Reader, logger *zap.Logger) (*Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset is empty")
		}
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}

	entries := make([]models.Entry, 0, 16384)
	skipped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			logger.Warn("Skipping unreadable dataset row", zap.Int("line", line), zap.Error(err))
			continue
		}

		entry, err := FromRecord(record)
		if err != nil {
			skipped++
			logger.Warn("Skipping invalid dataset row", zap.Int("line", line), zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}

	logger.Info("Gazetteer loaded",
		zap.Int("entries", len(entries)),
		zap.Int("skipped", skipped))

	return &Store{entries: entries}, nil
}

// FromRecord builds an entry from one CSV record.
func FromRecord(record []string) (models.Entry, error) {
	if len(record) < minColumns {
		return models.Entry{}, fmt.Errorf("%w: %d columns, want at least %d", ErrInvalidRecord, len(record), minColumns)
	}

	code := record[colMunicipalityCode]
	if len(code) != models.MunicipalityCodeLen {
		return models.Entry{}, fmt.Errorf("%w: municipality code %q", ErrInvalidRecord, code)
	}

	entry := models.Entry{
		MunicipalityCode:  code,
		PostalCode:        record[colPostalCode],
		PlaceName:         record[colPlaceName],
		DistrictName:      record[colDistrictName],
		StateName:         record[colStateName],
		Latitude:          record[colLatitude],
		Longitude:         record[colLongitude],
		DistrictLatitude:  record[colDistrictLatitude],
		DistrictLongitude: record[colDistrictLongitude],
		Deprecated:        column(record, colDeprecated, "1") == "1",
		PrimaryZip:        column(record, colPrimaryZip, "0") == "1",
	}
	if population := column(record, colPopulation, ""); population != "" {
		entry.Population = &population
	}

	return Prepare(entry), nil
}

// column returns the value at i, or def when the record is shorter.
func column(record []string, i int, def string) string {
	if i < len(record) {
		return record[i]
	}
	return def
}

// Prepare fills the fields derived from the municipality code and place name
// and clears the query annotations. The code must be 8 characters long.
func Prepare(entry models.Entry) models.Entry {
	entry.DistrictCode = entry.MunicipalityCode[0:models.DistrictCodeLen]
	entry.DistrictFree = entry.MunicipalityCode[models.DistrictCodeLen:models.MunicipalityCodeLen] == "000"
	entry.PlaceKey = normalizer.Fold(entry.PlaceName)
	entry.Similarity = 0
	entry.ZipCollision = false
	return entry
}

// NewStore builds a store from entries in the given order. Entries with a
// municipality code of the wrong length are dropped.
func NewStore(entries []models.Entry) *Store {
	prepared := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if len(e.MunicipalityCode) != models.MunicipalityCodeLen {
			continue
		}
		prepared = append(prepared, Prepare(e))
	}
	return &Store{entries: prepared}
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// At returns a copy of the i-th entry in source order.
func (s *Store) At(i int) models.Entry {
	return s.entries[i]
}

// Range calls fn for every entry in source order until fn returns false.
// fn must not modify the entry.
func (s *Store) Range(fn func(i int, e *models.Entry) bool) {
	for i := range s.entries {
		if !fn(i, &s.entries[i]) {
			return
		}
	}
}
