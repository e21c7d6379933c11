package narrative

import (
	"fmt"
	"math"

	"github.com/hoopsight/momentum/internal/domain/model"
)

// WindowReport describes a user-selected sub-range of a trace using the
// same trend and volatility primitives as the live synthesis, plus the
// score change inside the window.
type WindowReport struct {
	From        int    `json:"from"`
	To          int    `json:"to"`
	Direction   string `json:"direction"` // home, away or neutral
	Strength    string `json:"strength"`  // slight, moderate or strong
	Volatility  string `json:"volatility"`
	HomePoints  int    `json:"home_points"`
	AwayPoints  int    `json:"away_points"`
	Description string `json:"description"`
}

// Window summarizes trace samples in [from, to). Bounds are clamped to the
// trace; an empty or inverted range yields a neutral report rather than an
// error.
func (s *Synthesizer) Window(trace model.MomentumTrace, ctx GameContext, from, to int) WindowReport {
	if from < 0 {
		from = 0
	}
	if to > len(trace) {
		to = len(trace)
	}
	if from >= to {
		return WindowReport{From: from, To: to, Direction: "neutral", Strength: "slight",
			Volatility: "stable", Description: "No plays in the selected range."}
	}

	window := trace[from:to]
	vals := window.Values()

	var sum float64
	for _, v := range vals {
		sum += v
	}
	meanVal := sum / float64(len(vals))

	direction := "neutral"
	directionName := "neither side"
	if meanVal > trendDirectionMin {
		direction, directionName = "home", ctx.HomeName
	} else if meanVal < -trendDirectionMin {
		direction, directionName = "away", ctx.AwayName
	}

	strength := "slight"
	switch {
	case math.Abs(meanVal) > trendModerateMax:
		strength = "strong"
	case math.Abs(meanVal) > trendSlightMax:
		strength = "moderate"
	}

	first, last := window[0], window[len(window)-1]
	homePts := last.HomeScore - first.HomeScore
	awayPts := last.AwayScore - first.AwayScore

	report := WindowReport{
		From:       from,
		To:         to,
		Direction:  direction,
		Strength:   strength,
		Volatility: volatility(vals),
		HomePoints: homePts,
		AwayPoints: awayPts,
	}
	report.Description = fmt.Sprintf(
		"Over this stretch the momentum favored %s (%s, %s); scoring went %d-%d.",
		directionName, report.Strength, report.Volatility, homePts, awayPts)
	return report
}
