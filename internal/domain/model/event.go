// Package model contains domain models passed between layers.
package model

import "time"

// PlayEvent represents a single play-by-play entry for a game.
// Source order is untrusted; consumers must sort by WallClock before use.
type PlayEvent struct {
	SequenceID    int       // provider sequence number
	WallClock     time.Time // absolute event timestamp
	GameClock     string    // remaining period clock, e.g. "7:42"
	Period        int       // 1-4 regulation, 5+ overtime
	TeamID        string    // acting team; empty for neutral events
	Text          string    // play description
	TypeLabel     string    // provider action type, e.g. "turnover"
	IsScoringPlay bool
	ScoreValue    int // points scored on this play, 0 otherwise
	HomeScore     int // running home score after the play
	AwayScore     int // running away score after the play
}

// MomentumSample is one point of a momentum trace: the clamped running
// momentum after folding in the corresponding play.
type MomentumSample struct {
	SequenceID int
	GameClock  string
	Period     int
	Text       string
	TeamID     string
	HomeScore  int
	AwayScore  int
	Momentum   float64 // post-clamp running momentum, in [-100,100]
	RawImpact  float64 // pre-decay impact of this play, unclamped
	PlayType   string
}

// MomentumTrace is the ordered per-play momentum series for one game.
// It is always rebuilt in full from the complete play list, never mutated.
type MomentumTrace []MomentumSample

// Values returns the momentum values of the trace in order.
func (t MomentumTrace) Values() []float64 {
	vals := make([]float64, len(t))
	for i, s := range t {
		vals[i] = s.Momentum
	}
	return vals
}

// Fingerprint summarizes a finished game as a fixed-length normalized
// momentum vector plus display metadata. Stored fingerprints are immutable.
type Fingerprint struct {
	GameID     string
	Season     string
	HomeTeam   string
	AwayTeam   string
	FinalScore string
	Vector     []float64 // exactly VectorLength components in [-1,1]
	Metadata   map[string]any
}

// VectorLength is the fixed fingerprint vector size.
const VectorLength = 20

// RunTrainingSample is one offline classifier sample: a normalized
// momentum window, the discretized score-differential bucket, and the
// forward-looking run label.
type RunTrainingSample struct {
	Window      []float64 `json:"window"` // WindowSize values in [-1,1]
	ScoreBucket int       `json:"score_bucket"`
	Label       int       `json:"label"` // 1 if a run follows, else 0
}

// WindowSize is the trailing momentum window used by the run predictor.
const WindowSize = 5

// RunPrediction is the ephemeral result of a run forecast.
type RunPrediction struct {
	Probability float64 `json:"run_probability"` // in [0,1]
	Confidence  string  `json:"confidence"`      // low, medium or high
	Message     string  `json:"message"`
}
