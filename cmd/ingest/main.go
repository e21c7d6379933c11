// Command ingest pulls a season of finished games through the ingest
// pipeline and optionally exports a run-predictor training set built from
// the stored momentum vectors.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/hoopsight/momentum/internal/adapters/nba"
	"github.com/hoopsight/momentum/internal/adapters/repository"
	"github.com/hoopsight/momentum/internal/config"
	"github.com/hoopsight/momentum/internal/domain/runpredict"
	"github.com/hoopsight/momentum/internal/pipeline"
	"github.com/hoopsight/momentum/pkg/logger"
)

const runTimeout = 4 * time.Hour

func main() {
	var (
		season      = flag.String("season", "", "Season to ingest, e.g. 2025-26 (default: configured season)")
		samplesPath = flag.String("samples", "", "Write a training-sample JSON file built from stored vectors")
		workers     = flag.Int("workers", 0, "Number of ingest workers (default: configured)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get().Named("ingest")

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString(cfg.LogLevel)

	if *season == "" {
		*season = cfg.Season
	}
	if *workers <= 0 {
		*workers = cfg.IngestWorkers
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("failed to open store: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeStore()

	feed := nba.NewClient(
		nba.WithStatsBaseURL(cfg.StatsBaseURL),
		nba.WithLiveBaseURL(cfg.LiveBaseURL),
		nba.WithRateLimit(cfg.FeedRateLimit),
	)

	p := pipeline.New(feed, store,
		pipeline.WithWorkers(*workers),
		pipeline.WithQueueSize(cfg.IngestQueueSize),
		pipeline.WithLogger(log),
	)

	report, err := p.Run(ctx, *season)
	if err != nil {
		log.Error(ctx, "ingest run aborted", logger.Error(err))
	}
	log.Info(ctx, "ingest run finished",
		logger.String("season", *season),
		logger.Int("total", report.Total),
		logger.Int("processed", report.Processed),
		logger.Int("skipped", report.Skipped),
		logger.Int("failed", report.Failed),
	)

	if *samplesPath != "" {
		if err := exportSamples(ctx, store, *samplesPath); err != nil {
			log.Error(ctx, "training sample export failed", logger.Error(err))
			os.Exit(1)
		}
	}
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.PostgresDSN == "" {
		return repository.NewMemoryStore(), func() {}, nil
	}
	pg, err := repository.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	return pg, func() { _ = pg.Close() }, nil
}

// exportSamples rebuilds the sliding-window training set from every
// stored momentum vector and writes it as JSON.
func exportSamples(ctx context.Context, store repository.Store, path string) error {
	log := logger.Get().Named("ingest")

	fps, err := store.ListAll(ctx)
	if err != nil {
		return err
	}

	vectors := make([][]float64, len(fps))
	for i, fp := range fps {
		vectors[i] = fp.Vector
	}

	samples, stats := runpredict.BuildTrainingSet(vectors)
	raw, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return err
	}

	log.Info(ctx, "training samples written",
		logger.String("path", path),
		logger.Int("games", len(fps)),
		logger.Int("samples", stats.Total),
		logger.Int("positives", stats.Positives),
		logger.Float64("positive_rate", stats.PositiveRate),
	)
	return nil
}
