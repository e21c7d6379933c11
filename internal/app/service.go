// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/hoopsight/momentum/internal/adapters/repository"
	"github.com/hoopsight/momentum/internal/domain/fingerprint"
	"github.com/hoopsight/momentum/internal/domain/model"
	"github.com/hoopsight/momentum/internal/domain/momentum"
	"github.com/hoopsight/momentum/internal/domain/narrative"
	"github.com/hoopsight/momentum/internal/domain/runpredict"
	"github.com/hoopsight/momentum/pkg/logger"
	"github.com/hoopsight/momentum/pkg/metrics"
)

// Service implements the API dependencies for the momentum system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	builder     *momentum.Builder
	predictor   *runpredict.Predictor
	synthesizer *narrative.Synthesizer

	// Configuration
	modelPath       string
	defaultTopK     int
	sampleThreshold int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the fingerprint store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithModelPath points the run predictor at a weights file.
func WithModelPath(path string) Option {
	return func(s *Service) {
		s.modelPath = path
	}
}

// WithDefaultTopK sets the similar-game result count used when the caller
// does not ask for one.
func WithDefaultTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.defaultTopK = k
		}
	}
}

// WithSampleThreshold sets the minimum stored fingerprints before
// searches run against real data.
func WithSampleThreshold(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.sampleThreshold = n
		}
	}
}

// WithBuilder sets a custom trace builder.
func WithBuilder(b *momentum.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration. The run
// predictor starts in placeholder mode until Start loads a model, so
// predictions are safe to request at any point in the lifecycle.
func New(opts ...Option) *Service {
	s := &Service{
		builder:         momentum.NewBuilder(),
		predictor:       runpredict.NewPredictor(),
		synthesizer:     narrative.NewSynthesizer(),
		defaultTopK:     fingerprint.DefaultTopK,
		sampleThreshold: fingerprint.SampleDataThreshold,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components. A missing or unreadable model
// file is not fatal; the predictor then answers in placeholder mode.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting momentum service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory fingerprint store")
	}

	if s.modelPath != "" {
		m, err := runpredict.LoadModel(s.modelPath)
		if err != nil {
			s.logger.Warn(ctx, "run predictor model unavailable, using placeholder mode",
				logger.String("path", s.modelPath), logger.Error(err))
		} else {
			s.predictor = runpredict.NewPredictor(runpredict.WithModel(m))
		}
	}

	s.started = true
	s.logger.Info(ctx, "momentum service started",
		logger.Int("default_top_k", s.defaultTopK),
		logger.Bool("predictor_ready", s.predictor.Ready()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping momentum service...")

	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "momentum service stopped")
}

// SimilarGames ranks stored fingerprints against the query vector. Until
// the store holds enough real games the search answers from the built-in
// sample library and flags the result.
func (s *Service) SimilarGames(ctx context.Context, vector []float64, topK int) (fingerprint.SearchResult, error) {
	if topK <= 0 {
		topK = s.defaultTopK
	}

	stored, err := s.store.ListAll(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "store_list")
		return fingerprint.SearchResult{}, fmt.Errorf("list fingerprints: %w", err)
	}
	if len(stored) < s.sampleThreshold {
		// Below the configured floor the store is not representative;
		// let the search fall through to the sample library.
		stored = nil
	}

	result := fingerprint.Search(vector, stored, topK)
	metrics.RecordSimilarityQuery()
	if result.UsingSampleData {
		metrics.RecordSampleFallback()
	}
	return result, nil
}

// PredictRun forecasts a momentum run from a trailing window and the
// current score differential.
func (s *Service) PredictRun(_ context.Context, window []float64, scoreDiff int) model.RunPrediction {
	prediction := s.predictor.Predict(window, float64(scoreDiff))
	metrics.RecordPrediction(prediction.Confidence)
	return prediction
}

// BuildTrace turns raw play events into a momentum trace.
func (s *Service) BuildTrace(_ context.Context, plays []model.PlayEvent, homeID, awayID string) model.MomentumTrace {
	trace := s.builder.Build(plays, homeID, awayID)
	metrics.RecordTraceBuilt(len(trace))
	return trace
}

// Narrative synthesizes commentary for the given trace.
func (s *Service) Narrative(_ context.Context, trace model.MomentumTrace, gameCtx narrative.GameContext) string {
	text := s.synthesizer.Synthesize(trace, gameCtx)
	metrics.RecordNarrative()
	return text
}

// NarrativeWindow reports on a sub-range of the trace.
func (s *Service) NarrativeWindow(_ context.Context, trace model.MomentumTrace, gameCtx narrative.GameContext, from, to int) narrative.WindowReport {
	report := s.synthesizer.Window(trace, gameCtx, from, to)
	metrics.RecordNarrative()
	return report
}

// PredictorReady reports whether the run predictor has a trained model.
func (s *Service) PredictorReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.predictor != nil && s.predictor.Ready()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"default_top_k":    s.defaultTopK,
		"sample_threshold": s.sampleThreshold,
	}

	if s.started {
		stats["predictor_ready"] = s.predictor.Ready()
		if count, err := s.store.Count(ctx); err == nil {
			stats["fingerprints"] = count
			metrics.UpdateFingerprintCount(count)
		}
	}

	return stats
}
