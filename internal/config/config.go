// Package config defines the configuration structures for the completion
// engine.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// InputConfig holds the paths of the run's input files.
type InputConfig struct {
	Pathways  string `mapstructure:"pathways"`  // retrosynthesis pathway CSV
	Compounds string `mapstructure:"compounds"` // compound structure TSV
	MetNet    string `mapstructure:"metnet"`    // metabolic network CSV (EC numbers)
	Sink      string `mapstructure:"sink"`      // sink species CSV
	Rebuild   string `mapstructure:"rebuild"`   // precomputed rebuild JSON
	Scores    string `mapstructure:"scores"`    // rule score TSV; empty when postgres is used
}

// CompletionConfig holds the expansion and ranking tunables.
type CompletionConfig struct {
	MaxSubpathsFilter int     `mapstructure:"max_subpaths_filter"`
	LowerFluxBound    float64 `mapstructure:"lower_flux_bound"`
	UpperFluxBound    float64 `mapstructure:"upper_flux_bound"`
	Workers           int     `mapstructure:"workers"`
}

// RedisConfig holds the compound cache connection parameters.  The cache is
// optional; an empty Addr disables it.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PostgresConfig holds the rule score store connection parameters.  The
// store is optional; when disabled the file-backed score table is used.
type PostgresConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// KafkaConfig holds the run announcement publisher parameters.  Publishing
// is optional; when disabled runs finish silently.
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure of the engine.
type Config struct {
	Input      InputConfig      `mapstructure:"input"`
	Completion CompletionConfig `mapstructure:"completion"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Log        LogConfig        `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start a run.
func (c *Config) Validate() error {
	// Inputs
	if c.Input.Pathways == "" {
		return fmt.Errorf("config: input.pathways is required")
	}
	if c.Input.Compounds == "" {
		return fmt.Errorf("config: input.compounds is required")
	}
	if c.Input.Sink == "" {
		return fmt.Errorf("config: input.sink is required")
	}
	if c.Input.Rebuild == "" {
		return fmt.Errorf("config: input.rebuild is required")
	}
	if !c.Postgres.Enabled && c.Input.Scores == "" {
		return fmt.Errorf("config: input.scores is required unless postgres is enabled")
	}

	// Completion
	if c.Completion.MaxSubpathsFilter < 0 {
		return fmt.Errorf("config: completion.max_subpaths_filter must be >= 0, got %d", c.Completion.MaxSubpathsFilter)
	}
	if c.Completion.UpperFluxBound <= c.Completion.LowerFluxBound {
		return fmt.Errorf("config: completion.upper_flux_bound %g must exceed lower_flux_bound %g",
			c.Completion.UpperFluxBound, c.Completion.LowerFluxBound)
	}

	// Redis
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis is enabled")
	}

	// Postgres
	if c.Postgres.Enabled && c.Postgres.DSN == "" {
		return fmt.Errorf("config: postgres.dsn is required when postgres is enabled")
	}

	// Kafka
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must contain at least one broker address")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("config: kafka.topic is required when kafka is enabled")
		}
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
