package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ranking.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRead_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Read(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestRead_RepositoryFileMatchesDefaults(t *testing.T) {
	cfg, err := Read("../../config/ranking.yaml")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestRead_PartialOverride(t *testing.T) {
	path := writeFile(t, "cache:\n  capacity: 10\n  idle_ttl: 90s\n")

	cfg, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Cache.Capacity)
	assert.Equal(t, 90*time.Second, cfg.Cache.IdleTTL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, uint8(90), cfg.Ranking.MinSimilarity)
}

func TestRead_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "bad yaml", content: "ranking: ["},
		{name: "similarity too high", content: "ranking:\n  min_similarity: 101\n"},
		{name: "no results", content: "ranking:\n  max_results: 0\n"},
		{name: "threshold out of range", content: "ranking:\n  structured_threshold: 1.5\n"},
		{name: "zero capacity", content: "cache:\n  capacity: 0\n"},
		{name: "negative ttl", content: "cache:\n  ttl: -1m\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(writeFile(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_SetsGlobal(t *testing.T) {
	t.Cleanup(func() { C = Defaults() })

	require.NoError(t, Load(writeFile(t, "ranking:\n  max_results: 5\n")))
	assert.Equal(t, 5, C.Ranking.MaxResults)

	assert.Error(t, Load(writeFile(t, "ranking:\n  max_results: -1\n")))
	assert.Equal(t, 5, C.Ranking.MaxResults, "failed load keeps the previous config")
}
