// Package pipeline ingests finished games: it pulls play-by-play from the
// feed, builds momentum traces, and stores game fingerprints. Work is fed
// through a bounded job queue consumed by a small worker pool so a whole
// season can be ingested without hammering the upstream.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hoopsight/momentum/internal/adapters/nba"
	"github.com/hoopsight/momentum/internal/adapters/repository"
	"github.com/hoopsight/momentum/internal/domain/fingerprint"
	"github.com/hoopsight/momentum/internal/domain/model"
	"github.com/hoopsight/momentum/internal/domain/momentum"
	"github.com/hoopsight/momentum/pkg/logger"
	"github.com/hoopsight/momentum/pkg/metrics"
)

// Default pipeline configuration constants.
const (
	defaultWorkers   = 4
	defaultQueueSize = 256
)

// Feed is the slice of the upstream client the pipeline needs.
type Feed interface {
	ListGames(ctx context.Context, season string) ([]nba.GameSummary, error)
	PlayByPlay(ctx context.Context, gameID string) ([]model.PlayEvent, error)
}

// Report summarizes one ingest run.
type Report struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Pipeline wires the feed, trace builder and fingerprint store together.
type Pipeline struct {
	feed      Feed
	store     repository.Store
	builder   *momentum.Builder
	workers   int
	queueSize int
	log       logger.Logger
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithWorkers sets the number of concurrent ingest workers.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithQueueSize bounds the in-memory job queue.
func WithQueueSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.queueSize = n
		}
	}
}

// WithBuilder sets a custom trace builder.
func WithBuilder(b *momentum.Builder) Option {
	return func(p *Pipeline) {
		if b != nil {
			p.builder = b
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// New creates an ingest pipeline.
func New(feed Feed, store repository.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		feed:      feed,
		store:     store,
		builder:   momentum.NewBuilder(),
		workers:   defaultWorkers,
		queueSize: defaultQueueSize,
		log:       logger.Get().Named("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run ingests every game of the season and reports what happened. It
// returns early only when the context is canceled; individual game
// failures are counted, logged and skipped.
func (p *Pipeline) Run(ctx context.Context, season string) (Report, error) {
	games, err := p.feed.ListGames(ctx, season)
	if err != nil {
		return Report{}, fmt.Errorf("list games: %w", err)
	}

	jobs := make(chan nba.GameSummary, p.queueSize)
	metrics.UpdateIngestWorkerCount(p.workers)

	var mu sync.Mutex
	report := Report{Total: len(games)}

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for game := range jobs {
				outcome := p.ingestOne(ctx, game)
				mu.Lock()
				switch outcome {
				case outcomeProcessed:
					report.Processed++
				case outcomeSkipped:
					report.Skipped++
				case outcomeFailed:
					report.Failed++
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, game := range games {
		select {
		case jobs <- game:
			metrics.UpdateIngestQueueSize(len(jobs))
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	metrics.UpdateIngestQueueSize(0)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (p *Pipeline) ingestOne(ctx context.Context, game nba.GameSummary) outcome {
	start := time.Now()

	exists, err := p.store.Exists(ctx, game.GameID)
	if err != nil {
		p.fail(ctx, game.GameID, "store_check", err)
		return outcomeFailed
	}
	if exists {
		metrics.RecordIngestSkipped()
		return outcomeSkipped
	}

	plays, err := p.feed.PlayByPlay(ctx, game.GameID)
	if err != nil {
		p.fail(ctx, game.GameID, "fetch", err)
		return outcomeFailed
	}

	trace := p.builder.Build(plays, game.HomeTeam, game.AwayTeam)
	metrics.RecordTraceBuilt(len(trace))

	fp := model.Fingerprint{
		GameID:     game.GameID,
		Season:     game.Season,
		HomeTeam:   game.HomeTeam,
		AwayTeam:   game.AwayTeam,
		FinalScore: nba.FinalScore(plays),
		Vector:     fingerprint.FromTrace(trace),
	}
	if game.GameDate != "" {
		fp.Metadata = map[string]any{"game_date": game.GameDate}
	}

	if err := p.store.Insert(ctx, fp); err != nil {
		// A concurrent worker may have won the insert race.
		if errors.Is(err, repository.ErrDuplicateGame) {
			metrics.RecordIngestSkipped()
			return outcomeSkipped
		}
		p.fail(ctx, game.GameID, "store_insert", err)
		return outcomeFailed
	}

	metrics.RecordIngestProcessed()
	metrics.RecordIngestLatency(float64(time.Since(start).Milliseconds()))
	p.log.Debug(ctx, "game ingested",
		logger.String("game_id", game.GameID),
		logger.Int("trace_samples", len(trace)))
	return outcomeProcessed
}

func (p *Pipeline) fail(ctx context.Context, gameID, stage string, err error) {
	metrics.RecordIngestFailed()
	metrics.RecordErrorByComponent("pipeline", stage)
	p.log.Error(ctx, "game ingest failed",
		logger.String("game_id", gameID),
		logger.String("stage", stage),
		logger.Error(err))
}
