package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Ranking controls which entries a search returns.
type Ranking struct {
	MinSimilarity       uint8   `yaml:"min_similarity" json:"min_similarity"`
	MaxResults          int     `yaml:"max_results" json:"max_results"`
	StructuredThreshold float64 `yaml:"structured_threshold" json:"structured_threshold"`
}

// Cache bounds the query cache.
type Cache struct {
	Capacity    int           `yaml:"capacity" json:"capacity"`
	TTL         time.Duration `yaml:"ttl" json:"ttl"`
	IdleTTL     time.Duration `yaml:"idle_ttl" json:"idle_ttl"`
	RedisPrefix string        `yaml:"redis_prefix" json:"redis_prefix"`
}

// Suggest controls "did you mean" proposals for empty results.
type Suggest struct {
	MaxDistance int `yaml:"max_distance" json:"max_distance"`
	Limit       int `yaml:"limit" json:"limit"`
}

// LookupCfg is the ranking configuration file.
type LookupCfg struct {
	Ranking Ranking `yaml:"ranking" json:"ranking"`
	Cache   Cache   `yaml:"cache" json:"cache"`
	Suggest Suggest `yaml:"suggest" json:"suggest"`
}

// C is the active configuration, replaced by Load.
var C = Defaults()

// Defaults returns the built-in configuration.
func Defaults() LookupCfg {
	return LookupCfg{
		Ranking: Ranking{
			MinSimilarity:       90,
			MaxResults:          25,
			StructuredThreshold: 0.85,
		},
		Cache: Cache{
			Capacity:    1000,
			TTL:         30 * time.Minute,
			IdleTTL:     5 * time.Minute,
			RedisPrefix: "ags:query:",
		},
		Suggest: Suggest{
			MaxDistance: 2,
			Limit:       5,
		},
	}
}

// Load reads path into C on top of the defaults. A missing file keeps the defaults.
func Load(path string) error {
	cfg, err := Read(path)
	if err != nil {
		return err
	}
	C = cfg
	return nil
}

// Read parses and validates a configuration file without touching C.
func Read(path string) (LookupCfg, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c LookupCfg) Validate() error {
	switch {
	case c.Ranking.MinSimilarity > 100:
		return errors.New("ranking.min_similarity must be within 0..100")
	case c.Ranking.MaxResults <= 0:
		return errors.New("ranking.max_results must be positive")
	case c.Ranking.StructuredThreshold <= 0 || c.Ranking.StructuredThreshold > 1:
		return errors.New("ranking.structured_threshold must be within (0, 1]")
	case c.Cache.Capacity <= 0:
		return errors.New("cache.capacity must be positive")
	case c.Cache.TTL <= 0 || c.Cache.IdleTTL <= 0:
		return errors.New("cache.ttl and cache.idle_ttl must be positive")
	case c.Suggest.MaxDistance < 0 || c.Suggest.Limit < 0:
		return errors.New("suggest values must not be negative")
	}
	return nil
}

// RequestTimeout bounds a single lookup including cache round trips.
func RequestTimeout() time.Duration { return 1500 * time.Millisecond }
