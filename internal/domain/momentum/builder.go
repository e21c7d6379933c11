// Package momentum folds ordered play events into a bounded momentum trace.
//
// Decay policy: position-based. The most recent recentWindow events carry
// full weight; older events decay linearly with their distance from the end
// of the game, floored at decayFloor so no play ever contributes nothing.
// This policy is deliberately independent of wall-clock gaps, which are
// unreliable in play feeds, and must never be mixed with a wall-clock
// cutoff policy inside one build.
package momentum

import (
	"sort"

	"github.com/hoopsight/momentum/internal/domain/impact"
	"github.com/hoopsight/momentum/internal/domain/model"
)

// Default builder configuration constants.
const (
	maxMomentum       = 100.0
	defaultRecentSpan = 10   // positions from the end that keep full weight
	defaultDecaySlope = 20.0 // positions over which older plays fade
	defaultDecayFloor = 0.3
	minVisibleRange   = 20.0 // traces flatter than this get rescaled
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithScorer sets a custom impact scorer.
func WithScorer(s *impact.Scorer) Option {
	return func(b *Builder) {
		if s != nil {
			b.scorer = s
		}
	}
}

// WithDecayFloor sets the minimum decay multiplier for old plays.
func WithDecayFloor(floor float64) Option {
	return func(b *Builder) {
		if floor > 0 && floor <= 1 {
			b.decayFloor = floor
		}
	}
}

// WithVisibilityRescale enables or disables the post-pass rescale of
// near-flat traces. Enabled by default.
func WithVisibilityRescale(enabled bool) Option {
	return func(b *Builder) {
		b.rescale = enabled
	}
}

// Builder recomputes a full momentum trace from a complete play list.
// It holds only configuration, so concurrent Build calls are safe.
type Builder struct {
	scorer     *impact.Scorer
	recentSpan int
	decaySlope float64
	decayFloor float64
	rescale    bool
}

// NewBuilder creates a Builder with default configuration.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		scorer:     impact.NewScorer(),
		recentSpan: defaultRecentSpan,
		decaySlope: defaultDecaySlope,
		decayFloor: defaultDecayFloor,
		rescale:    true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build folds the complete play list into an ordered momentum trace.
// Events missing a timestamp or team id, and events for teams other than
// homeID/awayID, are silently skipped. An empty input yields an empty
// trace, not an error. The fold is deterministic: identical input always
// produces an identical trace.
func (b *Builder) Build(plays []model.PlayEvent, homeID, awayID string) model.MomentumTrace {
	valid := make([]model.PlayEvent, 0, len(plays))
	for _, p := range plays {
		if p.WallClock.IsZero() || p.TeamID == "" {
			continue
		}
		if p.TeamID != homeID && p.TeamID != awayID {
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return model.MomentumTrace{}
	}

	// Source order is untrusted; stable sort keeps provider order for ties.
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].WallClock.Before(valid[j].WallClock)
	})

	trace := make(model.MomentumTrace, 0, len(valid))
	var running float64
	for i, p := range valid {
		raw := b.scorer.RawImpact(p)
		weighted := raw * b.decayAt(len(valid)-1-i)

		if p.TeamID == homeID {
			running += weighted
		} else {
			running -= weighted
		}
		running = clamp(running, -maxMomentum, maxMomentum)

		trace = append(trace, model.MomentumSample{
			SequenceID: p.SequenceID,
			GameClock:  p.GameClock,
			Period:     p.Period,
			Text:       p.Text,
			TeamID:     p.TeamID,
			HomeScore:  p.HomeScore,
			AwayScore:  p.AwayScore,
			Momentum:   running,
			RawImpact:  raw,
			PlayType:   p.TypeLabel,
		})
	}

	if b.rescale {
		rescaleFlat(trace)
	}
	return trace
}

// decayAt returns the decay multiplier for a play distanceBack positions
// from the most recent event.
func (b *Builder) decayAt(distanceBack int) float64 {
	if distanceBack < b.recentSpan {
		return 1.0
	}
	d := 1.0 - float64(distanceBack-b.recentSpan)/b.decaySlope
	if d < b.decayFloor {
		return b.decayFloor
	}
	if d > 1.0 {
		return 1.0
	}
	return d
}

// rescaleFlat stretches a near-flat trace so small swings stay visible.
// Plain multiplication preserves sign and relative order.
func rescaleFlat(trace model.MomentumTrace) {
	if len(trace) == 0 {
		return
	}
	lo, hi := trace[0].Momentum, trace[0].Momentum
	for _, s := range trace[1:] {
		if s.Momentum < lo {
			lo = s.Momentum
		}
		if s.Momentum > hi {
			hi = s.Momentum
		}
	}
	span := hi - lo
	if span <= 0 || span >= minVisibleRange {
		return
	}
	scale := minVisibleRange / span
	for i := range trace {
		trace[i].Momentum = clamp(trace[i].Momentum*scale, -maxMomentum, maxMomentum)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
