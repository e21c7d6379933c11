// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hoopsight/momentum/internal/domain/model"
)

// PredictDependencies defines the interface for run forecasts.
type PredictDependencies interface {
	PredictRun(ctx context.Context, window []float64, scoreDiff int) model.RunPrediction
}

// PredictHandler handles run prediction requests.
type PredictHandler struct {
	deps PredictDependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// predictRequest carries the trailing momentum window, normalized to
// [-1,1], plus the current score differential from the home side.
type predictRequest struct {
	MomentumWindow []float64 `json:"momentum_window"`
	ScoreDiff      int       `json:"score_diff"`
}

func (p predictRequest) validate() error {
	if len(p.MomentumWindow) == 0 {
		return errors.New("missing momentum_window")
	}
	if len(p.MomentumWindow) > model.WindowSize {
		return fmt.Errorf("momentum_window must have at most %d values", model.WindowSize)
	}
	for i, v := range p.MomentumWindow {
		if v < -1 || v > 1 {
			return fmt.Errorf("momentum_window[%d] out of [-1,1]", i)
		}
	}
	return nil
}

// HandlePredictRun handles POST /api/predict-run requests.
func (h *PredictHandler) HandlePredictRun(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict_run"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	prediction := h.deps.PredictRun(r.Context(), req.MomentumWindow, req.ScoreDiff)
	writeJSON(w, http.StatusOK, prediction)
}
