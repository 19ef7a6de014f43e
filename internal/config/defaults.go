package config

// Default value constants.
const (
	DefaultMaxSubpathsFilter = 10
	DefaultLowerFluxBound    = -10000
	DefaultUpperFluxBound    = 10000

	DefaultRedisAddr = "localhost:6379"

	DefaultKafkaBroker = "localhost:9092"
	DefaultKafkaTopic  = "completion-runs"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the engine default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins.  It must run after unmarshalling and before
// Validate so optional-but-defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Completion ───────────────────────────────────────────────────────────
	if cfg.Completion.MaxSubpathsFilter == 0 {
		cfg.Completion.MaxSubpathsFilter = DefaultMaxSubpathsFilter
	}
	if cfg.Completion.LowerFluxBound == 0 {
		cfg.Completion.LowerFluxBound = DefaultLowerFluxBound
	}
	if cfg.Completion.UpperFluxBound == 0 {
		cfg.Completion.UpperFluxBound = DefaultUpperFluxBound
	}
	// Workers defaults to zero: zero means one worker per CPU.

	// ── Redis ────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}

	// ── Kafka ────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}

	// ── Log ──────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.OutputPaths) == 0 {
		cfg.Log.OutputPaths = []string{"stderr"}
	}
}
