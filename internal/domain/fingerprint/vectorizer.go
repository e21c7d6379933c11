// Package fingerprint turns momentum traces into fixed-length vectors and
// ranks stored game fingerprints against a query by cosine similarity.
package fingerprint

import (
	"math"

	"github.com/hoopsight/momentum/internal/domain/model"
)

const normalizeScale = 100.0 // momentum range maps onto [-1,1]

// Vectorize resamples an ordered momentum series into exactly
// model.VectorLength components in [-1,1]. Values are divided by 100 and
// clamped. Longer inputs are decimated by evenly spaced index selection
// (no averaging, so the result is bit-reproducible); shorter inputs are
// right-padded with the last value. The function is pure and deterministic.
func Vectorize(values []float64) []float64 {
	out := make([]float64, model.VectorLength)
	if len(values) == 0 {
		return out
	}

	switch {
	case len(values) > model.VectorLength:
		step := float64(len(values)) / float64(model.VectorLength)
		for i := 0; i < model.VectorLength; i++ {
			out[i] = normalize(values[int(float64(i)*step)])
		}
	case len(values) < model.VectorLength:
		for i := 0; i < len(values); i++ {
			out[i] = normalize(values[i])
		}
		last := out[len(values)-1]
		for i := len(values); i < model.VectorLength; i++ {
			out[i] = last
		}
	default:
		for i, v := range values {
			out[i] = normalize(v)
		}
	}
	return out
}

// FromTrace vectorizes the momentum values of a trace.
func FromTrace(trace model.MomentumTrace) []float64 {
	return Vectorize(trace.Values())
}

func normalize(v float64) float64 {
	n := v / normalizeScale
	if n > 1 {
		return 1
	}
	if n < -1 {
		return -1
	}
	return n
}

// Cosine returns the cosine similarity of two equal-length vectors, and
// false when either vector has zero norm. Zero-norm vectors carry no
// direction, so they are excluded from ranking rather than scored.
func Cosine(a, b []float64) (float64, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), true
}
