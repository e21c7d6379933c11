// Package runpredict forecasts imminent scoring runs from a trailing
// momentum window, and generates the offline training samples the
// classifier is fitted on. Fitting itself happens outside this module; the
// package only consumes the resulting weights.
package runpredict

import "github.com/hoopsight/momentum/internal/domain/model"

// Bucket discretization constants. The same mapping is used for training
// sample generation and inference; changing it invalidates trained weights.
const (
	bucketCount = 20
	diffScale   = 100.0 // score differential treated as a [-100,100] scalar
)

// featureCount is the classifier input width: the window plus one bucket.
const featureCount = model.WindowSize + 1

// ScoreBucket maps a score differential in [-100,100] onto a bucket index
// in [0,19]: -100 -> 0, 0 -> 9, +100 -> 19. Out-of-range inputs clamp.
func ScoreBucket(diff float64) int {
	normalized := (diff + diffScale) / (2 * diffScale)
	bucket := int(normalized * float64(bucketCount-1))
	if bucket < 0 {
		return 0
	}
	if bucket > bucketCount-1 {
		return bucketCount - 1
	}
	return bucket
}

// Features builds the classifier input vector from a trailing momentum
// window (normalized values in [-1,1], chronological) and the score
// differential. Short windows are left-padded with zeros; long windows
// keep only the most recent model.WindowSize values.
func Features(window []float64, scoreDiff float64) []float64 {
	padded := PadWindow(window)
	features := make([]float64, 0, featureCount)
	features = append(features, padded...)
	features = append(features, float64(ScoreBucket(scoreDiff)))
	return features
}

// PadWindow normalizes a window to exactly model.WindowSize values,
// left-padding with zeros and keeping the most recent values.
func PadWindow(window []float64) []float64 {
	out := make([]float64, model.WindowSize)
	if len(window) >= model.WindowSize {
		copy(out, window[len(window)-model.WindowSize:])
		return out
	}
	copy(out[model.WindowSize-len(window):], window)
	return out
}
