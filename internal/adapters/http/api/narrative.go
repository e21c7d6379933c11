// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hoopsight/momentum/internal/domain/model"
	"github.com/hoopsight/momentum/internal/domain/narrative"
)

// NarrativeDependencies defines the interface for narrative synthesis.
type NarrativeDependencies interface {
	BuildTrace(ctx context.Context, plays []model.PlayEvent, homeID, awayID string) model.MomentumTrace
	Narrative(ctx context.Context, trace model.MomentumTrace, gameCtx narrative.GameContext) string
	NarrativeWindow(ctx context.Context, trace model.MomentumTrace, gameCtx narrative.GameContext, from, to int) narrative.WindowReport
}

// NarrativeHandler synthesizes live commentary from play lists.
type NarrativeHandler struct {
	deps NarrativeDependencies
}

// NewNarrativeHandler creates a new narrative handler.
func NewNarrativeHandler(deps NarrativeDependencies) *NarrativeHandler {
	return &NarrativeHandler{deps: deps}
}

type narrativeWindow struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type narrativeRequest struct {
	HomeTeam  string           `json:"home_team"`
	AwayTeam  string           `json:"away_team"`
	HomeName  string           `json:"home_name"`
	AwayName  string           `json:"away_name"`
	Period    int              `json:"period"`
	GameClock string           `json:"game_clock"`
	Live      bool             `json:"live"`
	Plays     []playRequest    `json:"plays"`
	Window    *narrativeWindow `json:"window,omitempty"`
}

func (n narrativeRequest) validate() error {
	switch {
	case strings.TrimSpace(n.HomeTeam) == "":
		return errors.New("missing home_team")
	case strings.TrimSpace(n.AwayTeam) == "":
		return errors.New("missing away_team")
	case len(n.Plays) == 0:
		return errors.New("missing plays")
	}
	return nil
}

func (n narrativeRequest) gameContext() narrative.GameContext {
	return narrative.GameContext{
		HomeTeamID: n.HomeTeam,
		AwayTeamID: n.AwayTeam,
		HomeName:   n.HomeName,
		AwayName:   n.AwayName,
		Period:     n.Period,
		GameClock:  n.GameClock,
		Live:       n.Live,
	}
}

type narrativeResponse struct {
	Narrative string `json:"narrative"`
}

// HandleNarrative handles POST /api/narrative requests. A window in the
// request switches the response to a windowed report.
func (h *NarrativeHandler) HandleNarrative(w http.ResponseWriter, r *http.Request) {
	const op = "api.narrative"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req narrativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	trace := h.deps.BuildTrace(r.Context(), toEvents(req.Plays), req.HomeTeam, req.AwayTeam)
	gameCtx := req.gameContext()

	if req.Window != nil {
		report := h.deps.NarrativeWindow(r.Context(), trace, gameCtx, req.Window.From, req.Window.To)
		writeJSON(w, http.StatusOK, report)
		return
	}

	writeJSON(w, http.StatusOK, narrativeResponse{
		Narrative: h.deps.Narrative(r.Context(), trace, gameCtx),
	})
}
