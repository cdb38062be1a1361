package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kibria30/Mini-Gomoku/pkg/engine"
)

// Config is the daemon configuration. Every field has a default; a config
// file only needs the keys it wants to override.
type Config struct {
	Listen    string       `yaml:"listen" json:"listen"`
	BoardSize int          `yaml:"board_size" json:"board_size"`
	Search    SearchConfig `yaml:"search" json:"search"`
}

type SearchConfig struct {
	MaxDepth       int            `yaml:"max_depth" json:"max_depth"`
	TimeBudgetMs   int            `yaml:"time_budget_ms" json:"time_budget_ms"`
	TTSize         int            `yaml:"tt_size" json:"tt_size"`
	TTBuckets      int            `yaml:"tt_buckets" json:"tt_buckets"`
	LogSearchStats bool           `yaml:"log_search_stats" json:"log_search_stats"`
	Weights        engine.Weights `yaml:"weights" json:"weights"`
}

func Default() Config {
	return Config{
		Listen:    ":8080",
		BoardSize: 15,
		Search: SearchConfig{
			MaxDepth:     10,
			TimeBudgetMs: 500,
			TTSize:       1 << 18,
			TTBuckets:    4,
			Weights:      engine.DefaultWeights(),
		},
	}
}

// Load reads a yaml file over the defaults. An empty path returns the
// defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is empty")
	}
	if c.BoardSize < engine.MinBoardSize {
		return fmt.Errorf("board_size %d below minimum %d", c.BoardSize, engine.MinBoardSize)
	}
	if c.Search.MaxDepth < 1 {
		return fmt.Errorf("search.max_depth must be at least 1, got %d", c.Search.MaxDepth)
	}
	if c.Search.TimeBudgetMs < 0 {
		return fmt.Errorf("search.time_budget_ms is negative")
	}
	return nil
}

func (c Config) TimeBudget() time.Duration {
	return time.Duration(c.Search.TimeBudgetMs) * time.Millisecond
}

// EngineOptions translates the search section into engine configuration.
func (c Config) EngineOptions() engine.Options {
	return engine.Options{
		MaxDepth:       c.Search.MaxDepth,
		TimeBudget:     c.TimeBudget(),
		TTCapacity:     c.Search.TTSize,
		TTBuckets:      c.Search.TTBuckets,
		Weights:        c.Search.Weights,
		LogSearchStats: c.Search.LogSearchStats,
	}
}
