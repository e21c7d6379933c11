// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load(ctx) layers defaults, optional YAML file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// PostgresDSN selects the fingerprint store. Empty means in-memory.
	PostgresDSN string `koanf:"postgres_dsn"`

	// ModelPath points at the run predictor weights file (JSON). Empty
	// means the predictor runs in placeholder mode.
	ModelPath string `koanf:"model_path"`

	// DefaultTopK is the similar-game result count when the client does
	// not ask for one; MaxTopK caps what the client may ask for.
	DefaultTopK int `koanf:"default_top_k"`
	MaxTopK     int `koanf:"max_top_k"`

	// SampleThreshold is the minimum stored fingerprints before searches
	// stop falling back to the built-in sample library.
	SampleThreshold int `koanf:"sample_threshold"`

	// IngestWorkers sets the number of concurrent game ingest workers.
	IngestWorkers int `koanf:"ingest_workers"`

	// IngestQueueSize bounds the in-memory ingest job queue.
	IngestQueueSize int `koanf:"ingest_queue_size"`

	// StatsBaseURL and LiveBaseURL locate the upstream play-by-play feeds.
	StatsBaseURL string `koanf:"stats_base_url"`
	LiveBaseURL  string `koanf:"live_base_url"`

	// FeedRateLimit caps upstream requests per second.
	FeedRateLimit float64 `koanf:"feed_rate_limit"`

	// Season selects which season game logs are pulled for, e.g. "2025-26".
	Season string `koanf:"season"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8090",
		PostgresDSN:     "",
		ModelPath:       "",
		DefaultTopK:     3,
		MaxTopK:         10,
		SampleThreshold: 10,
		IngestWorkers:   runtime.NumCPU(),
		IngestQueueSize: 1024,
		StatsBaseURL:    "https://stats.nba.com/stats",
		LiveBaseURL:     "https://cdn.nba.com/static/json/liveData",
		FeedRateLimit:   1.5,
		Season:          "2025-26",
	}
}
