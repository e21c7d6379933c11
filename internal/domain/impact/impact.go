// Package impact converts individual play events into signed momentum impact.
package impact

import (
	"strings"

	"github.com/hoopsight/momentum/internal/domain/model"
)

// Default impact weights. Rules are additive and independent: a fast-break
// dunk scores the scoring value plus the fast-break, finish, and dunk
// bonuses.
const (
	scoringMultiplier = 2.0
	turnoverPenalty   = -5.0
	fastBreakBonus    = 3.0
	// transitionFinishBonus stacks on top of fastBreakBonus when the fast
	// break actually converts; an empty-handed break is worth less than a
	// finished one.
	transitionFinishBonus = 2.0
	dunkBonus             = 2.0
	andOneBonus           = 2.0
	blockBonus            = 4.0
	stealBonus            = 4.0
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithScoringMultiplier overrides the per-point scoring weight.
func WithScoringMultiplier(m float64) Option {
	return func(s *Scorer) {
		if m > 0 {
			s.scoringMultiplier = m
		}
	}
}

// WithTurnoverPenalty overrides the turnover penalty. The value is used as
// given, so it should be negative.
func WithTurnoverPenalty(p float64) Option {
	return func(s *Scorer) {
		if p < 0 {
			s.turnoverPenalty = p
		}
	}
}

// Scorer computes the signed raw impact of one play. It is pure and holds
// no per-game state; the same event always yields the same impact.
// Team-relative sign flipping happens downstream in the trace builder.
type Scorer struct {
	scoringMultiplier float64
	turnoverPenalty   float64
}

// NewScorer creates a Scorer with default weights.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		scoringMultiplier: scoringMultiplier,
		turnoverPenalty:   turnoverPenalty,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RawImpact returns the signed impact of a play. All text matching is
// case-insensitive substring matching over the description and type label.
// Events with neither text nor type contribute nothing.
func (s *Scorer) RawImpact(e model.PlayEvent) float64 {
	text := strings.ToLower(e.Text)
	typ := strings.ToLower(e.TypeLabel)
	if text == "" && typ == "" {
		return 0
	}

	var impact float64

	if e.IsScoringPlay {
		impact += s.scoringMultiplier * float64(e.ScoreValue)
	}
	if contains(text, typ, "turnover") {
		impact += s.turnoverPenalty
	}
	if contains(text, typ, "fast break") {
		impact += fastBreakBonus
		if e.IsScoringPlay {
			impact += transitionFinishBonus
		}
	}
	if contains(text, typ, "dunk") || contains(text, typ, "alley-oop") || contains(text, typ, "alley oop") {
		impact += dunkBonus
	}
	if isAndOne(e, text) {
		impact += andOneBonus
	}
	if contains(text, typ, "block") {
		impact += blockBonus
	}
	if contains(text, typ, "steal") {
		impact += stealBonus
	}

	return impact
}

// isAndOne detects an and-one: either the text says so explicitly, or a
// made scoring play also mentions a foul.
func isAndOne(e model.PlayEvent, text string) bool {
	if strings.Contains(text, "and 1") || strings.Contains(text, "and-1") || strings.Contains(text, "and one") {
		return true
	}
	return e.IsScoringPlay && strings.Contains(text, "foul")
}

func contains(text, typ, token string) bool {
	return strings.Contains(text, token) || strings.Contains(typ, token)
}
