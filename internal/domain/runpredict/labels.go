package runpredict

import "github.com/hoopsight/momentum/internal/domain/model"

// Label generation constants. A window "leads into a run" when the mean of
// the lookahead values strictly exceeds runThreshold in normalized
// magnitude and extends beyond the window mean in the same direction.
const (
	lookahead    = 3
	runThreshold = 0.3
)

// TrainingStats summarizes a generated sample set.
type TrainingStats struct {
	Total        int     `json:"total"`
	Positives    int     `json:"positives"`
	PositiveRate float64 `json:"positive_rate"`
}

// BuildSamples slides a model.WindowSize window (stride 1) across one
// normalized momentum vector and labels each window by the lookahead rule.
// Windows without a full lookahead are dropped. The score bucket feature
// uses the window's final momentum value as the differential proxy,
// denormalized to the same [-100,100] scale inference receives.
func BuildSamples(vector []float64) []model.RunTrainingSample {
	if len(vector) < model.WindowSize+lookahead {
		return nil
	}
	samples := make([]model.RunTrainingSample, 0, len(vector)-model.WindowSize-lookahead+1)
	for i := 0; i+model.WindowSize+lookahead <= len(vector); i++ {
		window := append([]float64(nil), vector[i:i+model.WindowSize]...)
		future := vector[i+model.WindowSize : i+model.WindowSize+lookahead]

		samples = append(samples, model.RunTrainingSample{
			Window:      window,
			ScoreBucket: ScoreBucket(window[len(window)-1] * diffScale),
			Label:       label(window, future),
		})
	}
	return samples
}

// BuildTrainingSet generates samples for a whole fingerprint library and
// reports the total count and positive-class rate.
func BuildTrainingSet(vectors [][]float64) ([]model.RunTrainingSample, TrainingStats) {
	var all []model.RunTrainingSample
	for _, v := range vectors {
		if len(v) != model.VectorLength {
			continue
		}
		all = append(all, BuildSamples(v)...)
	}

	stats := TrainingStats{Total: len(all)}
	for _, s := range all {
		stats.Positives += s.Label
	}
	if stats.Total > 0 {
		stats.PositiveRate = float64(stats.Positives) / float64(stats.Total)
	}
	return all, stats
}

func label(window, future []float64) int {
	windowMean := mean(window)
	futureMean := mean(future)
	if futureMean > runThreshold && futureMean > windowMean {
		return 1
	}
	if futureMean < -runThreshold && futureMean < windowMean {
		return 1
	}
	return 0
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
