package config_test

import (
	"runtime"
	"testing"

	"github.com/hoopsight/momentum/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DefaultTopK, convey.ShouldEqual, 3)
			convey.So(cfg.MaxTopK, convey.ShouldEqual, 10)
			convey.So(cfg.SampleThreshold, convey.ShouldEqual, 10)
			convey.So(cfg.IngestWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.IngestQueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.Season, convey.ShouldEqual, "2025-26")
		})
	})
}
