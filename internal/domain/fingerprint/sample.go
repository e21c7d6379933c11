package fingerprint

import "github.com/hoopsight/momentum/internal/domain/model"

// SampleLibrary returns the canned fingerprints used when the real store is
// too thin to rank against. The vectors are hand-shaped: a steady home
// pull-away, a back-and-forth finish, and a late away surge.
func SampleLibrary() []model.Fingerprint {
	return []model.Fingerprint{
		{
			GameID:     "sample_game_1",
			Season:     "sample",
			HomeTeam:   "Bulls",
			AwayTeam:   "Knicks",
			FinalScore: "100-98",
			Vector: []float64{
				0.00, 0.05, 0.12, 0.18, 0.22, 0.30, 0.35, 0.38, 0.45, 0.50,
				0.52, 0.58, 0.60, 0.66, 0.70, 0.74, 0.80, 0.84, 0.90, 0.95,
			},
			Metadata: map[string]any{"sample_data": true},
		},
		{
			GameID:     "sample_game_2",
			Season:     "sample",
			HomeTeam:   "Lakers",
			AwayTeam:   "Celtics",
			FinalScore: "114-110",
			Vector: []float64{
				0.00, 0.10, -0.05, 0.15, -0.10, 0.20, 0.05, -0.15, 0.10, 0.25,
				-0.05, 0.18, 0.30, 0.12, -0.08, 0.22, 0.35, 0.15, 0.28, 0.40,
			},
			Metadata: map[string]any{"sample_data": true},
		},
		{
			GameID:     "sample_game_3",
			Season:     "sample",
			HomeTeam:   "Warriors",
			AwayTeam:   "Cavaliers",
			FinalScore: "104-91",
			Vector: []float64{
				0.10, 0.20, 0.15, 0.25, 0.20, 0.10, 0.00, -0.10, -0.20, -0.25,
				-0.30, -0.40, -0.45, -0.50, -0.60, -0.65, -0.70, -0.80, -0.85, -0.90,
			},
			Metadata: map[string]any{"sample_data": true},
		},
	}
}
