package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hoopsight/momentum/internal/adapters/http/api"
	"github.com/hoopsight/momentum/internal/domain/fingerprint"
	"github.com/hoopsight/momentum/internal/domain/model"
	"github.com/hoopsight/momentum/internal/domain/narrative"
	. "github.com/smartystreets/goconvey/convey"
)

// stubDeps implements api.Dependencies with canned answers.
type stubDeps struct {
	searchResult fingerprint.SearchResult
	prediction   model.RunPrediction
	trace        model.MomentumTrace
	narrative    string
	window       narrative.WindowReport

	gotVector []float64
	gotTopK   int
}

func (s *stubDeps) SimilarGames(_ context.Context, vector []float64, topK int) (fingerprint.SearchResult, error) {
	s.gotVector = vector
	s.gotTopK = topK
	return s.searchResult, nil
}

func (s *stubDeps) PredictRun(_ context.Context, _ []float64, _ int) model.RunPrediction {
	return s.prediction
}

func (s *stubDeps) BuildTrace(_ context.Context, _ []model.PlayEvent, _, _ string) model.MomentumTrace {
	return s.trace
}

func (s *stubDeps) Narrative(_ context.Context, _ model.MomentumTrace, _ narrative.GameContext) string {
	return s.narrative
}

func (s *stubDeps) NarrativeWindow(_ context.Context, _ model.MomentumTrace, _ narrative.GameContext, from, to int) narrative.WindowReport {
	report := s.window
	report.From, report.To = from, to
	return report
}

type stubStats struct{}

func (stubStats) GetStats(_ context.Context) map[string]interface{} {
	return map[string]interface{}{"fingerprints": 12, "predictor_ready": true}
}

func newTestServer(deps *stubDeps) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, stubStats{}, 10).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func csvVector(v float64) string {
	parts := make([]string, model.VectorLength)
	for i := range parts {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, ",")
}

func TestSimilarGamesEndpoint(t *testing.T) {
	Convey("Given a server with one stored match", t, func() {
		deps := &stubDeps{
			searchResult: fingerprint.SearchResult{
				UsingSampleData: false,
				Matches: []fingerprint.Match{{
					Fingerprint: model.Fingerprint{
						GameID: "g1", HomeTeam: "Bulls", AwayTeam: "Knicks", FinalScore: "100-98",
					},
					Score: 0.93,
				}},
			},
		}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When querying with a full vector", func() {
			resp, err := http.Get(srv.URL + "/api/similar-games?vector=" + csvVector(0.5) + "&top_k=3")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the ranked matches come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var body struct {
					UsingSampleData bool `json:"using_sample_data"`
					SimilarGames    []struct {
						GameID     string  `json:"game_id"`
						Similarity float64 `json:"similarity"`
					} `json:"similar_games"`
				}
				So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
				So(body.UsingSampleData, ShouldBeFalse)
				So(body.SimilarGames, ShouldHaveLength, 1)
				So(body.SimilarGames[0].GameID, ShouldEqual, "g1")
				So(body.SimilarGames[0].Similarity, ShouldAlmostEqual, 0.93)

				So(deps.gotVector, ShouldHaveLength, model.VectorLength)
				So(deps.gotTopK, ShouldEqual, 3)
			})
		})

		Convey("When the vector is missing", func() {
			resp, err := http.Get(srv.URL + "/api/similar-games")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the vector has the wrong length", func() {
			resp, err := http.Get(srv.URL + "/api/similar-games?vector=1,2,3")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When top_k exceeds the cap", func() {
			resp, err := http.Get(srv.URL + "/api/similar-games?vector=" + csvVector(0.1) + "&top_k=50")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			resp, err := http.Post(srv.URL+"/api/similar-games", "application/json", strings.NewReader("{}"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestPredictRunEndpoint(t *testing.T) {
	Convey("Given a server with a canned prediction", t, func() {
		deps := &stubDeps{
			prediction: model.RunPrediction{Probability: 0.82, Confidence: "high",
				Message: "Home team showing signs of a momentum run."},
		}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When posting a valid window", func() {
			body := `{"momentum_window": [0.1, 0.3, 0.5, 0.6, 0.7], "score_diff": 4}`
			resp, err := http.Post(srv.URL+"/api/predict-run", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the prediction comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var got model.RunPrediction
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got.Probability, ShouldAlmostEqual, 0.82)
				So(got.Confidence, ShouldEqual, "high")
			})
		})

		Convey("When the window is empty", func() {
			resp, err := http.Post(srv.URL+"/api/predict-run", "application/json",
				strings.NewReader(`{"momentum_window": [], "score_diff": 0}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a window value is out of range", func() {
			resp, err := http.Post(srv.URL+"/api/predict-run", "application/json",
				strings.NewReader(`{"momentum_window": [2.0], "score_diff": 0}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the body is not JSON", func() {
			resp, err := http.Post(srv.URL+"/api/predict-run", "application/json", strings.NewReader("nope"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func momentumBody() string {
	plays := []map[string]any{}
	base := time.Date(2025, 10, 21, 19, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		plays = append(plays, map[string]any{
			"sequence_id":     i + 1,
			"wall_clock":      base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
			"game_clock":      "10:00",
			"period":          1,
			"team_id":         "CHI",
			"text":            "3PT shot made",
			"type":            "3pt",
			"is_scoring_play": true,
			"score_value":     3,
			"home_score":      (i + 1) * 3,
			"away_score":      0,
		})
	}
	body, _ := json.Marshal(map[string]any{
		"home_team": "CHI", "away_team": "NYK", "plays": plays,
	})
	return string(body)
}

func TestMomentumEndpoint(t *testing.T) {
	Convey("Given a server with a canned trace", t, func() {
		deps := &stubDeps{
			trace: model.MomentumTrace{
				{SequenceID: 1, TeamID: "CHI", Momentum: 6, RawImpact: 6, HomeScore: 3},
				{SequenceID: 2, TeamID: "CHI", Momentum: 12, RawImpact: 6, HomeScore: 6},
			},
		}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When posting plays", func() {
			resp, err := http.Post(srv.URL+"/api/momentum", "application/json", strings.NewReader(momentumBody()))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the trace comes back with parallel values", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var got struct {
					Samples []struct {
						SequenceID int     `json:"sequence_id"`
						Momentum   float64 `json:"momentum"`
					} `json:"samples"`
					Values      []float64 `json:"values"`
					Fingerprint []float64 `json:"fingerprint"`
				}
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got.Samples, ShouldHaveLength, 2)
				So(got.Values, ShouldResemble, []float64{6, 12})
				So(got.Samples[1].Momentum, ShouldAlmostEqual, 12)
				So(got.Fingerprint, ShouldHaveLength, model.VectorLength)
			})
		})

		Convey("When the team ids are missing", func() {
			resp, err := http.Post(srv.URL+"/api/momentum", "application/json",
				strings.NewReader(`{"plays": [{"sequence_id": 1}]}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestNarrativeEndpoint(t *testing.T) {
	Convey("Given a server with a canned narrative", t, func() {
		deps := &stubDeps{
			trace:     model.MomentumTrace{{SequenceID: 1}},
			narrative: "Bulls are building momentum with sustained pressure.",
			window: narrative.WindowReport{
				Direction: "home", Strength: "moderate", Volatility: "stable",
				HomePoints: 12, AwayPoints: 4,
				Description: "Over this stretch the momentum favored Bulls (moderate, stable); scoring went 12-4.",
			},
		}
		srv := newTestServer(deps)
		defer srv.Close()

		base := `"home_team": "CHI", "away_team": "NYK", "home_name": "Bulls", "away_name": "Knicks",
			"period": 2, "game_clock": "5:30", "live": true,
			"plays": [{"sequence_id": 1, "wall_clock": "2025-10-21T19:00:00Z", "team_id": "CHI"}]`

		Convey("When posting without a window", func() {
			resp, err := http.Post(srv.URL+"/api/narrative", "application/json",
				strings.NewReader("{"+base+"}"))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the narrative string comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var got struct {
					Narrative string `json:"narrative"`
				}
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got.Narrative, ShouldContainSubstring, "building momentum")
			})
		})

		Convey("When posting with a window", func() {
			resp, err := http.Post(srv.URL+"/api/narrative", "application/json",
				strings.NewReader("{"+base+`, "window": {"from": 0, "to": 1}}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the windowed report comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var got narrative.WindowReport
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got.Direction, ShouldEqual, "home")
				So(got.From, ShouldEqual, 0)
				So(got.To, ShouldEqual, 1)
				So(got.HomePoints, ShouldEqual, 12)
			})
		})

		Convey("When plays are missing", func() {
			resp, err := http.Post(srv.URL+"/api/narrative", "application/json",
				strings.NewReader(`{"home_team": "CHI", "away_team": "NYK"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a running server", t, func() {
		srv := newTestServer(&stubDeps{})
		defer srv.Close()

		Convey("When fetching stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the service stats come back as JSON", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var got map[string]interface{}
				So(json.NewDecoder(resp.Body).Decode(&got), ShouldBeNil)
				So(got["fingerprints"], ShouldEqual, 12.0)
				So(got["predictor_ready"], ShouldEqual, true)
			})
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a running server", t, func() {
		srv := newTestServer(&stubDeps{})
		defer srv.Close()

		Convey("When probing /healthz", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the metrics exposition answers", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
