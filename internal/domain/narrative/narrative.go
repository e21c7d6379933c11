// Package narrative synthesizes short prose describing game state from a
// momentum trace. The pipeline is an ordered list of independent pure
// detectors; each looks at the trace and contributes at most one sentence.
// Detector order is fixed, so output for a given trace is deterministic.
package narrative

import (
	"strconv"
	"strings"

	"github.com/hoopsight/momentum/internal/domain/model"
)

// Synthesis limits and fixed fallback copy.
const (
	minTraceSamples = 5

	gatheringMessage     = "Gathering momentum data for this matchup."
	earlyFallback        = "Early going: both teams are still settling in."
	lateFallback         = "Both teams trading blows with no clear momentum edge."
	earlyFallbackPeriods = 2
)

// GameContext carries the team metadata and clock state a synthesis call
// needs alongside the trace.
type GameContext struct {
	HomeTeamID string
	AwayTeamID string
	HomeName   string
	AwayName   string
	Period     int
	GameClock  string // remaining period clock, e.g. "3:24"
	Live       bool
}

// snapshot bundles everything detectors read: the trace, the call context
// and how many sentences earlier detectors emitted.
type snapshot struct {
	trace   model.MomentumTrace
	ctx     GameContext
	emitted int
}

// detector inspects the snapshot and contributes zero or one sentence.
type detector func(s *snapshot) (string, bool)

// Option applies a configuration option to the Synthesizer.
type Option func(*Synthesizer)

// Synthesizer runs the detector pipeline. It holds only configuration and
// is safe for concurrent use.
type Synthesizer struct {
	detectors []detector
}

// NewSynthesizer creates a Synthesizer with the standard detector order:
// game situation, momentum trend, scoring runs, lead changes, key plays,
// biggest swing.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		detectors: []detector{
			detectGameSituation,
			detectMomentumTrend,
			detectScoringRuns,
			detectLeadChanges,
			detectKeyPlays,
			detectBiggestSwing,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize composes prose for the trace. Traces shorter than
// minTraceSamples yield a fixed gathering-data message; if no detector
// fires, a fixed period-dependent fallback is returned.
func (s *Synthesizer) Synthesize(trace model.MomentumTrace, ctx GameContext) string {
	if len(trace) < minTraceSamples {
		return gatheringMessage
	}

	snap := &snapshot{trace: trace, ctx: ctx}
	var sentences []string
	for _, detect := range s.detectors {
		if sentence, ok := detect(snap); ok && sentence != "" {
			sentences = append(sentences, sentence)
			snap.emitted++
		}
	}

	if len(sentences) == 0 {
		if ctx.Period <= earlyFallbackPeriods {
			return earlyFallback
		}
		return lateFallback
	}
	return strings.Join(sentences, " ")
}

// last returns the most recent n samples of the trace (fewer when the
// trace is shorter).
func (s *snapshot) last(n int) model.MomentumTrace {
	if len(s.trace) <= n {
		return s.trace
	}
	return s.trace[len(s.trace)-n:]
}

// scoreDiff is the current home-minus-away differential.
func (s *snapshot) scoreDiff() int {
	latest := s.trace[len(s.trace)-1]
	return latest.HomeScore - latest.AwayScore
}

// teamName resolves a trace team id to a display name.
func (s *snapshot) teamName(teamID string) string {
	switch teamID {
	case s.ctx.HomeTeamID:
		return s.ctx.HomeName
	case s.ctx.AwayTeamID:
		return s.ctx.AwayName
	default:
		return "the team"
	}
}

// leader returns the name of the team ahead; empty on a tie.
func (s *snapshot) leader() string {
	diff := s.scoreDiff()
	switch {
	case diff > 0:
		return s.ctx.HomeName
	case diff < 0:
		return s.ctx.AwayName
	default:
		return ""
	}
}

// clockMinutes parses the remaining period clock ("7:42" or "42.0") into
// minutes. Unparseable clocks report a full period so clock-gated
// situations never fire on bad data.
func clockMinutes(clock string) float64 {
	const fullPeriodMinutes = 12
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return fullPeriodMinutes
	}
	if mins, secs, ok := strings.Cut(clock, ":"); ok {
		m, errM := strconv.Atoi(mins)
		sf, errS := strconv.ParseFloat(secs, 64)
		if errM != nil || errS != nil {
			return fullPeriodMinutes
		}
		return float64(m) + sf/60
	}
	if secs, err := strconv.ParseFloat(clock, 64); err == nil {
		return secs / 60
	}
	return fullPeriodMinutes
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
