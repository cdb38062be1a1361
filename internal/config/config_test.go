package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"listen: \":9090\"\nsearch:\n  time_budget_ms: 1500\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Listen)
	require.Equal(t, 1500*time.Millisecond, cfg.TimeBudget())
	require.Equal(t, Default().BoardSize, cfg.BoardSize)
	require.Equal(t, Default().Search.MaxDepth, cfg.Search.MaxDepth)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board_size: 3\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestEngineOptionsCarrySearchSection(t *testing.T) {
	cfg := Default()
	cfg.Search.MaxDepth = 6
	cfg.Search.LogSearchStats = true

	opts := cfg.EngineOptions()
	require.Equal(t, 6, opts.MaxDepth)
	require.Equal(t, cfg.TimeBudget(), opts.TimeBudget)
	require.True(t, opts.LogSearchStats)
	require.Equal(t, cfg.Search.Weights, opts.Weights)
}
