// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hoopsight/momentum/internal/domain/fingerprint"
	"github.com/hoopsight/momentum/internal/domain/model"
)

// MomentumDependencies defines the interface for trace building.
type MomentumDependencies interface {
	BuildTrace(ctx context.Context, plays []model.PlayEvent, homeID, awayID string) model.MomentumTrace
}

// MomentumHandler turns raw play lists into momentum traces.
type MomentumHandler struct {
	deps MomentumDependencies
}

// NewMomentumHandler creates a new momentum handler.
func NewMomentumHandler(deps MomentumDependencies) *MomentumHandler {
	return &MomentumHandler{deps: deps}
}

type momentumRequest struct {
	HomeTeam string        `json:"home_team"`
	AwayTeam string        `json:"away_team"`
	Plays    []playRequest `json:"plays"`
}

func (m momentumRequest) validate() error {
	switch {
	case strings.TrimSpace(m.HomeTeam) == "":
		return errors.New("missing home_team")
	case strings.TrimSpace(m.AwayTeam) == "":
		return errors.New("missing away_team")
	case len(m.Plays) == 0:
		return errors.New("missing plays")
	}
	return nil
}

// momentumSample mirrors one trace point on the wire.
type momentumSample struct {
	SequenceID int     `json:"sequence_id"`
	GameClock  string  `json:"game_clock"`
	Period     int     `json:"period"`
	Text       string  `json:"text"`
	TeamID     string  `json:"team_id"`
	HomeScore  int     `json:"home_score"`
	AwayScore  int     `json:"away_score"`
	Momentum   float64 `json:"momentum"`
	RawImpact  float64 `json:"raw_impact"`
}

type momentumResponse struct {
	Samples     []momentumSample `json:"samples"`
	Values      []float64        `json:"values"`
	Fingerprint []float64        `json:"fingerprint"` // fixed-length normalized vector
}

// HandleMomentum handles POST /api/momentum requests.
func (h *MomentumHandler) HandleMomentum(w http.ResponseWriter, r *http.Request) {
	const op = "api.momentum"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req momentumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	trace := h.deps.BuildTrace(r.Context(), toEvents(req.Plays), req.HomeTeam, req.AwayTeam)

	resp := momentumResponse{
		Samples:     make([]momentumSample, len(trace)),
		Values:      trace.Values(),
		Fingerprint: fingerprint.FromTrace(trace),
	}
	for i, s := range trace {
		resp.Samples[i] = momentumSample{
			SequenceID: s.SequenceID,
			GameClock:  s.GameClock,
			Period:     s.Period,
			Text:       s.Text,
			TeamID:     s.TeamID,
			HomeScore:  s.HomeScore,
			AwayScore:  s.AwayScore,
			Momentum:   s.Momentum,
			RawImpact:  s.RawImpact,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
