package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if MOMENTUM_CONFIG is set
//  3. env (prefix MOMENTUM_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("MOMENTUM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: MOMENTUM_ADDR, MOMENTUM_INGEST_WORKERS, ...
	// Map env keys like MOMENTUM_INGEST_WORKERS -> ingest_workers (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("MOMENTUM_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "momentum_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.DefaultTopK <= 0 || c.MaxTopK < c.DefaultTopK {
		return fmt.Errorf("%w: top-k bounds out of order", ErrInvalidConfig)
	}
	if c.SampleThreshold < 0 {
		return fmt.Errorf("%w: sample_threshold must not be negative", ErrInvalidConfig)
	}
	if c.IngestWorkers <= 0 || c.IngestQueueSize <= 0 {
		return fmt.Errorf("%w: ingest sizing must be positive", ErrInvalidConfig)
	}
	if c.FeedRateLimit <= 0 {
		return fmt.Errorf("%w: feed_rate_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
