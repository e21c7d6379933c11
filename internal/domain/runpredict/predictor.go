package runpredict

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/hoopsight/momentum/internal/domain/model"
)

// Confidence bucket thresholds.
const (
	lowConfidenceMax  = 0.4
	highConfidenceMin = 0.7
)

// Probability threshold above which a run message names a direction.
const runMessageThreshold = 0.6

// Confidence labels.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Model is a trained linear classifier: one weight per feature plus a
// bias, squashed through a sigmoid.
type Model struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Validate checks the weight vector width against the feature layout.
func (m *Model) Validate() error {
	if m == nil {
		return ErrNoModel
	}
	if len(m.Weights) != featureCount {
		return fmt.Errorf("model has %d weights, want %d: %w", len(m.Weights), featureCount, ErrBadModel)
	}
	return nil
}

// LoadModel reads trained weights from a JSON file. A missing or malformed
// file is reported to the caller, who is expected to fall back to the
// placeholder predictor rather than fail.
func LoadModel(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	var m Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Option applies a configuration option to the Predictor.
type Option func(*Predictor)

// WithModel sets the trained model. Without one the predictor returns a
// labeled deterministic placeholder instead of failing callers.
func WithModel(m *Model) Option {
	return func(p *Predictor) {
		if m != nil && m.Validate() == nil {
			p.model = m
		}
	}
}

// Predictor turns a trailing momentum window plus score differential into
// a run probability. It is pure: no state changes across calls.
type Predictor struct {
	model *Model
}

// NewPredictor creates a Predictor.
func NewPredictor(opts ...Option) *Predictor {
	p := &Predictor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ready reports whether a trained model is loaded.
func (p *Predictor) Ready() bool {
	return p.model != nil
}

// Predict forecasts an imminent run from the last momentum window values
// (normalized to [-1,1], chronological) and the score differential.
func (p *Predictor) Predict(window []float64, scoreDiff float64) model.RunPrediction {
	if p.model == nil {
		return model.RunPrediction{
			Probability: 0.5,
			Confidence:  ConfidenceLow,
			Message:     "Run predictor offline; returning placeholder estimate.",
		}
	}

	features := Features(window, scoreDiff)
	z := p.model.Bias
	for i, w := range p.model.Weights {
		z += w * features[i]
	}
	prob := sigmoid(z)

	return model.RunPrediction{
		Probability: prob,
		Confidence:  confidence(prob),
		Message:     message(prob, PadWindow(window)),
	}
}

func confidence(prob float64) string {
	switch {
	case prob < lowConfidenceMax:
		return ConfidenceLow
	case prob > highConfidenceMin:
		return ConfidenceHigh
	default:
		return ConfidenceMedium
	}
}

// message picks a direction from the latest window value when a run looks
// likely.
func message(prob float64, padded []float64) string {
	if prob <= runMessageThreshold {
		return "Game flow looks stable."
	}
	last := padded[len(padded)-1]
	switch {
	case last > 0.1:
		return "Home team showing signs of a momentum run."
	case last < -0.1:
		return "Away team showing signs of a momentum run."
	default:
		return "Game flow indicating a potential breakout."
	}
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
