package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hoopsight/momentum/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"MOMENTUM_CONFIG",
		"MOMENTUM_ADDR",
		"MOMENTUM_LOG_LEVEL",
		"MOMENTUM_DEFAULT_TOP_K",
		"MOMENTUM_MAX_TOP_K",
		"MOMENTUM_SAMPLE_THRESHOLD",
		"MOMENTUM_INGEST_WORKERS",
		"MOMENTUM_INGEST_QUEUE_SIZE",
		"MOMENTUM_SEASON",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
				convey.So(cfg.DefaultTopK, convey.ShouldEqual, 3)
				convey.So(cfg.SampleThreshold, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MOMENTUM_ADDR", ":8080")
			_ = os.Setenv("MOMENTUM_DEFAULT_TOP_K", "5")
			_ = os.Setenv("MOMENTUM_INGEST_WORKERS", "2")
			_ = os.Setenv("MOMENTUM_SEASON", "2024-25")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultTopK, convey.ShouldEqual, 5)
				convey.So(cfg.IngestWorkers, convey.ShouldEqual, 2)
				convey.So(cfg.Season, convey.ShouldEqual, "2024-25")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
default_top_k: 4
max_top_k: 8
ingest_workers: 3
ingest_queue_size: 64
`
			tmpFile := createTempConfigFile(t, yamlContent)

			_ = os.Setenv("MOMENTUM_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DefaultTopK, convey.ShouldEqual, 4)
				convey.So(cfg.MaxTopK, convey.ShouldEqual, 8)
				convey.So(cfg.IngestWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.IngestQueueSize, convey.ShouldEqual, 64)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
default_top_k: 4
`
			tmpFile := createTempConfigFile(t, yamlContent)

			_ = os.Setenv("MOMENTUM_CONFIG", tmpFile)
			_ = os.Setenv("MOMENTUM_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars should win over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DefaultTopK, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When the config is invalid", func() {
			_ = os.Setenv("MOMENTUM_ADDR", "")
			defer clearConfigEnvVars()

			convey.Convey("Then an empty addr is rejected", func() {
				_, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When top-k bounds are out of order", func() {
			_ = os.Setenv("MOMENTUM_DEFAULT_TOP_K", "20")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
