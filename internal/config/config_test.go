package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{
		Input: InputConfig{
			Pathways:  "out_paths.csv",
			Compounds: "compounds.txt",
			MetNet:    "out_metnet.csv",
			Sink:      "sink.csv",
			Rebuild:   "rebuild.json",
			Scores:    "rules.tsv",
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing pathways", func(c *Config) { c.Input.Pathways = "" }},
		{"missing compounds", func(c *Config) { c.Input.Compounds = "" }},
		{"missing sink", func(c *Config) { c.Input.Sink = "" }},
		{"missing rebuild", func(c *Config) { c.Input.Rebuild = "" }},
		{"missing scores without postgres", func(c *Config) { c.Input.Scores = "" }},
		{"negative filter", func(c *Config) { c.Completion.MaxSubpathsFilter = -1 }},
		{"inverted flux bounds", func(c *Config) { c.Completion.UpperFluxBound = -20000 }},
		{"redis enabled without addr", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }},
		{"postgres enabled without dsn", func(c *Config) { c.Postgres.Enabled = true }},
		{"kafka enabled without topic", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Topic = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_ScoresOptionalWithPostgres(t *testing.T) {
	cfg := validConfig()
	cfg.Input.Scores = ""
	cfg.Postgres.Enabled = true
	cfg.Postgres.DSN = "postgres://localhost/scores"
	assert.NoError(t, cfg.Validate())
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultMaxSubpathsFilter, cfg.Completion.MaxSubpathsFilter)
	assert.Equal(t, float64(DefaultLowerFluxBound), cfg.Completion.LowerFluxBound)
	assert.Equal(t, float64(DefaultUpperFluxBound), cfg.Completion.UpperFluxBound)
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, []string{DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, []string{"stderr"}, cfg.Log.OutputPaths)

	// Explicit values win over defaults.
	cfg = &Config{Completion: CompletionConfig{MaxSubpathsFilter: 100}}
	ApplyDefaults(cfg)
	assert.Equal(t, 100, cfg.Completion.MaxSubpathsFilter)

	// Nil is tolerated.
	ApplyDefaults(nil)
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	const yaml = `
input:
  pathways: /data/out_paths.csv
  compounds: /data/compounds.txt
  metnet: /data/out_metnet.csv
  sink: /data/sink.csv
  rebuild: /data/rebuild.json
  scores: /data/rules.tsv
completion:
  max_subpaths_filter: 25
log:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/out_paths.csv", cfg.Input.Pathways)
	assert.Equal(t, 25, cfg.Completion.MaxSubpathsFilter)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults fill the gaps.
	assert.Equal(t, float64(DefaultUpperFluxBound), cfg.Completion.UpperFluxBound)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidConfigFails(t *testing.T) {
	const yaml = `
input:
  pathways: /data/out_paths.csv
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
