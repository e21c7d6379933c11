package narrative

import (
	"fmt"
	"math"
	"strings"
)

// Game-situation thresholds, checked first match wins.
const (
	crunchTimeClockMin  = 3.0
	crunchTimeMaxDiff   = 5
	lateLeadClockMin    = 5.0
	lateLeadMaxDiff     = 10
	blowoutDiff         = 25
	comfortableDiff     = 15
	comebackSwing       = 10
	tightDiff           = 3
	finalPeriod         = 4
)

// detectGameSituation emits one sentence for the first matching rule:
// crunch time, clock-limited lead, blowout, comfortable lead, comeback in
// progress, tight game.
func detectGameSituation(s *snapshot) (string, bool) {
	diff := s.scoreDiff()
	clock := clockMinutes(s.ctx.GameClock)

	if s.ctx.Period >= finalPeriod && clock <= crunchTimeClockMin && abs(diff) <= crunchTimeMaxDiff {
		return fmt.Sprintf("Crunch time: %s and %s are separated by %d with the clock running out.",
			s.ctx.HomeName, s.ctx.AwayName, abs(diff)), true
	}
	if s.ctx.Period >= finalPeriod && clock <= lateLeadClockMin && abs(diff) <= lateLeadMaxDiff {
		leader := s.leader()
		if leader == "" {
			return "All square late in the fourth.", true
		}
		return fmt.Sprintf("%s protecting a %d-point lead late in the game.", leader, abs(diff)), true
	}
	if abs(diff) >= blowoutDiff {
		return fmt.Sprintf("%s are running away with it, up %d.", s.leader(), abs(diff)), true
	}
	if abs(diff) >= comfortableDiff {
		return fmt.Sprintf("%s in firm control with a %d-point cushion.", s.leader(), abs(diff)), true
	}
	if name, ok := s.comebackTeam(); ok {
		return fmt.Sprintf("%s are storming back into this one.", name), true
	}
	if abs(diff) <= tightDiff {
		return fmt.Sprintf("A tight game: %s %d, %s %d.",
			s.ctx.HomeName, s.trace[len(s.trace)-1].HomeScore,
			s.ctx.AwayName, s.trace[len(s.trace)-1].AwayScore), true
	}
	return "", false
}

// comebackTeam compares the current differential to the differential at
// the trace's midpoint and reports the team that has swung the game at
// least comebackSwing points back toward itself.
func (s *snapshot) comebackTeam() (string, bool) {
	mid := s.trace[len(s.trace)/2]
	midDiff := mid.HomeScore - mid.AwayScore
	diff := s.scoreDiff()

	if midDiff < 0 && diff-midDiff >= comebackSwing {
		return s.ctx.HomeName, true
	}
	if midDiff > 0 && midDiff-diff >= comebackSwing {
		return s.ctx.AwayName, true
	}
	return "", false
}

// Momentum-trend thresholds over the last trendWindow samples.
const (
	trendWindow        = 10
	trendDirectionMin  = 8.0
	trendSlightMax     = 12.0
	trendModerateMax   = 30.0
	volatileDeltaMean  = 15.0
)

// detectMomentumTrend reads direction, strength and volatility off the
// recent momentum values.
func detectMomentumTrend(s *snapshot) (string, bool) {
	recent := s.last(trendWindow)
	vals := recent.Values()

	var sum float64
	for _, v := range vals {
		sum += v
	}
	meanVal := sum / float64(len(vals))

	direction := "neutral"
	if meanVal > trendDirectionMin {
		direction = s.ctx.HomeName
	} else if meanVal < -trendDirectionMin {
		direction = s.ctx.AwayName
	}

	strength := "slight"
	switch {
	case math.Abs(meanVal) > trendModerateMax:
		strength = "strong"
	case math.Abs(meanVal) > trendSlightMax:
		strength = "moderate"
	}

	shape := volatility(vals)

	if direction == "neutral" {
		switch shape {
		case "volatile":
			return "Momentum is swinging wildly with neither side holding on.", true
		case "building":
			return "Momentum is quietly building toward one side.", true
		default:
			return "", false // flat and neutral says nothing worth printing
		}
	}

	switch shape {
	case "building":
		return fmt.Sprintf("Momentum is building steadily for %s (%s edge).", direction, strength), true
	case "volatile":
		return fmt.Sprintf("%s hold a %s momentum edge, but it is swinging play to play.", direction, strength), true
	default:
		return fmt.Sprintf("%s carrying a %s momentum edge.", direction, strength), true
	}
}

// volatility classifies the window: "building" when the first, two-thirds
// and last values move monotonically one way, "volatile" when the mean
// absolute consecutive delta is large, otherwise "stable".
func volatility(vals []float64) string {
	if len(vals) < 3 {
		return "stable"
	}
	first := vals[0]
	midpoint := vals[len(vals)*2/3]
	last := vals[len(vals)-1]
	if (first < midpoint && midpoint < last) || (first > midpoint && midpoint > last) {
		return "building"
	}

	var deltaSum float64
	for i := 1; i < len(vals); i++ {
		deltaSum += math.Abs(vals[i] - vals[i-1])
	}
	if deltaSum/float64(len(vals)-1) > volatileDeltaMean {
		return "volatile"
	}
	return "stable"
}

// Scoring-run thresholds over the last runWindow samples.
const (
	runWindow       = 10
	runImpactFloor  = 2.0
	runMinPlays     = 4
)

// detectScoringRuns counts high-impact plays per team in the recent window
// and calls a run when one side has at least runMinPlays and more than
// double the opponent's count.
func detectScoringRuns(s *snapshot) (string, bool) {
	var homeCount, awayCount int
	for _, sample := range s.last(runWindow) {
		if sample.RawImpact <= runImpactFloor {
			continue
		}
		switch sample.TeamID {
		case s.ctx.HomeTeamID:
			homeCount++
		case s.ctx.AwayTeamID:
			awayCount++
		}
	}

	if homeCount >= runMinPlays && homeCount > 2*awayCount {
		return fmt.Sprintf("%s are on a run with %d high-impact plays in the last stretch.",
			s.ctx.HomeName, homeCount), true
	}
	if awayCount >= runMinPlays && awayCount > 2*homeCount {
		return fmt.Sprintf("%s are on a run with %d high-impact plays in the last stretch.",
			s.ctx.AwayName, awayCount), true
	}
	return "", false
}

// Lead-change thresholds across the whole trace.
const (
	leadChangeMinTrace = 30
	leadChangeMin      = 3
	leadChangeSeesaw   = 5
)

// detectLeadChanges counts transitions between home-led and away-led
// states. Ties are neither a state nor a transition.
func detectLeadChanges(s *snapshot) (string, bool) {
	if len(s.trace) < leadChangeMinTrace {
		return "", false
	}

	changes := 0
	state := 0 // -1 away led, +1 home led, 0 nobody yet
	for _, sample := range s.trace {
		diff := sample.HomeScore - sample.AwayScore
		if diff == 0 {
			continue
		}
		next := 1
		if diff < 0 {
			next = -1
		}
		if state != 0 && next != state {
			changes++
		}
		state = next
	}

	if changes >= leadChangeSeesaw {
		return fmt.Sprintf("A genuine seesaw battle: the lead has already flipped %d times.", changes), true
	}
	if changes >= leadChangeMin {
		return fmt.Sprintf("The lead has changed hands %d times.", changes), true
	}
	return "", false
}

// Key-play thresholds over the last keyPlayWindow samples.
const (
	keyPlayWindow     = 20
	keyPlayImpactMin  = 6.0
	keyPlayBigImpact  = 8.0
	keyPlayMax        = 3
)

// detectKeyPlays lists up to the last keyPlayMax plays whose raw impact
// cleared keyPlayImpactMin, classified by their description.
func detectKeyPlays(s *snapshot) (string, bool) {
	var described []string
	recent := s.last(keyPlayWindow)
	for i := len(recent) - 1; i >= 0 && len(described) < keyPlayMax; i-- {
		sample := recent[i]
		if math.Abs(sample.RawImpact) < keyPlayImpactMin {
			continue
		}
		label := classifyPlay(sample.Text, sample.RawImpact)
		if label == "" {
			continue
		}
		described = append(described, fmt.Sprintf("%s by %s", label, s.teamName(sample.TeamID)))
	}
	if len(described) == 0 {
		return "", false
	}

	// Restore chronological order; collection walked backwards.
	for i, j := 0, len(described)-1; i < j; i, j = i+1, j-1 {
		described[i], described[j] = described[j], described[i]
	}
	return fmt.Sprintf("Key plays: %s.", strings.Join(described, ", ")), true
}

func classifyPlay(text string, rawImpact float64) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "block"):
		return "a big block"
	case strings.Contains(lower, "steal"):
		return "a steal"
	case strings.Contains(lower, "dunk"):
		return "a thunderous dunk"
	case strings.Contains(lower, "three"):
		return "a clutch three-pointer"
	case math.Abs(rawImpact) >= keyPlayBigImpact:
		return "a momentum-shifting play"
	default:
		return ""
	}
}

// Biggest-swing thresholds; runs only when earlier detectors left room.
const (
	swingWindow      = 20
	swingMinDelta    = 5.0
	swingMaxEmitted  = 3
)

// detectBiggestSwing reports the largest adjacent momentum delta among
// recent plays that actually carried impact, when fewer than
// swingMaxEmitted sentences have been produced so far.
func detectBiggestSwing(s *snapshot) (string, bool) {
	if s.emitted >= swingMaxEmitted {
		return "", false
	}

	recent := s.last(swingWindow)
	bestDelta := 0.0
	bestText := ""
	for i := 1; i < len(recent); i++ {
		if recent[i].RawImpact == 0 {
			continue
		}
		delta := math.Abs(recent[i].Momentum - recent[i-1].Momentum)
		if delta > bestDelta {
			bestDelta = delta
			bestText = recent[i].Text
		}
	}

	if bestDelta <= swingMinDelta || bestText == "" {
		return "", false
	}
	return fmt.Sprintf("Biggest recent swing: %q.", bestText), true
}
