// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hoopsight/momentum/internal/domain/fingerprint"
	"github.com/hoopsight/momentum/internal/domain/model"
	"github.com/hoopsight/momentum/internal/domain/narrative"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SimilarGames ranks stored fingerprints against a query vector.
	SimilarGames(ctx context.Context, vector []float64, topK int) (fingerprint.SearchResult, error)

	// PredictRun forecasts a momentum run from a trailing window.
	PredictRun(ctx context.Context, window []float64, scoreDiff int) model.RunPrediction

	// BuildTrace turns raw play events into a momentum trace.
	BuildTrace(ctx context.Context, plays []model.PlayEvent, homeID, awayID string) model.MomentumTrace

	// Narrative synthesizes commentary for the given trace.
	Narrative(ctx context.Context, trace model.MomentumTrace, gameCtx narrative.GameContext) string

	// NarrativeWindow reports on a sub-range of the trace.
	NarrativeWindow(ctx context.Context, trace model.MomentumTrace, gameCtx narrative.GameContext, from, to int) narrative.WindowReport
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	similarHandler   *SimilarHandler
	predictHandler   *PredictHandler
	momentumHandler  *MomentumHandler
	narrativeHandler *NarrativeHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxTopK int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		similarHandler:   NewSimilarHandler(deps, maxTopK),
		predictHandler:   NewPredictHandler(deps),
		momentumHandler:  NewMomentumHandler(deps),
		narrativeHandler: NewNarrativeHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/similar-games", MetricsMiddleware(s.similarHandler.HandleSimilarGames, "similar_games"))
	mux.HandleFunc("/api/predict-run", MetricsMiddleware(s.predictHandler.HandlePredictRun, "predict_run"))
	mux.HandleFunc("/api/momentum", MetricsMiddleware(s.momentumHandler.HandleMomentum, "momentum"))
	mux.HandleFunc("/api/narrative", MetricsMiddleware(s.narrativeHandler.HandleNarrative, "narrative"))
}

// playRequest mirrors one play-by-play entry on the wire.
type playRequest struct {
	SequenceID    int    `json:"sequence_id"`
	WallClock     string `json:"wall_clock"` // RFC3339
	GameClock     string `json:"game_clock"`
	Period        int    `json:"period"`
	TeamID        string `json:"team_id"`
	Text          string `json:"text"`
	TypeLabel     string `json:"type"`
	IsScoringPlay bool   `json:"is_scoring_play"`
	ScoreValue    int    `json:"score_value"`
	HomeScore     int    `json:"home_score"`
	AwayScore     int    `json:"away_score"`
}

// toEvents converts wire plays to domain events. Unparseable wall clocks
// become zero times, which the trace builder drops.
func toEvents(plays []playRequest) []model.PlayEvent {
	events := make([]model.PlayEvent, len(plays))
	for i, p := range plays {
		wall, _ := time.Parse(time.RFC3339, p.WallClock)
		events[i] = model.PlayEvent{
			SequenceID:    p.SequenceID,
			WallClock:     wall,
			GameClock:     p.GameClock,
			Period:        p.Period,
			TeamID:        p.TeamID,
			Text:          p.Text,
			TypeLabel:     p.TypeLabel,
			IsScoringPlay: p.IsScoringPlay,
			ScoreValue:    p.ScoreValue,
			HomeScore:     p.HomeScore,
			AwayScore:     p.AwayScore,
		}
	}
	return events
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
