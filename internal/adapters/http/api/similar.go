// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/hoopsight/momentum/internal/domain/fingerprint"
	"github.com/hoopsight/momentum/internal/domain/model"
)

// SimilarDependencies defines the interface for similarity queries.
type SimilarDependencies interface {
	SimilarGames(ctx context.Context, vector []float64, topK int) (fingerprint.SearchResult, error)
}

// SimilarHandler handles similar-game lookups.
type SimilarHandler struct {
	deps    SimilarDependencies
	maxTopK int
}

// NewSimilarHandler creates a new similar-games handler.
func NewSimilarHandler(deps SimilarDependencies, maxTopK int) *SimilarHandler {
	return &SimilarHandler{deps: deps, maxTopK: maxTopK}
}

// similarGame mirrors one ranked match on the wire.
type similarGame struct {
	GameID     string  `json:"game_id"`
	Season     string  `json:"season,omitempty"`
	HomeTeam   string  `json:"home_team"`
	AwayTeam   string  `json:"away_team"`
	FinalScore string  `json:"final_score"`
	Similarity float64 `json:"similarity"`
}

type similarResponse struct {
	UsingSampleData bool          `json:"using_sample_data"`
	SimilarGames    []similarGame `json:"similar_games"`
}

// HandleSimilarGames handles GET /api/similar-games?vector=v1,...,v20&top_k=N.
func (h *SimilarHandler) HandleSimilarGames(w http.ResponseWriter, r *http.Request) {
	const op = "api.similar_games"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	vector, err := parseVector(r.URL.Query().Get("vector"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	topK := 0
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		topK, err = strconv.Atoi(raw)
		if err != nil || topK < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if topK > h.maxTopK {
			writeError(w, http.StatusBadRequest, "top_k_exceeded", NewKind(op, ErrBadRequest))
			return
		}
	}

	result, err := h.deps.SimilarGames(r.Context(), vector, topK)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	resp := similarResponse{
		UsingSampleData: result.UsingSampleData,
		SimilarGames:    make([]similarGame, 0, len(result.Matches)),
	}
	for _, m := range result.Matches {
		resp.SimilarGames = append(resp.SimilarGames, similarGame{
			GameID:     m.Fingerprint.GameID,
			Season:     m.Fingerprint.Season,
			HomeTeam:   m.Fingerprint.HomeTeam,
			AwayTeam:   m.Fingerprint.AwayTeam,
			FinalScore: m.Fingerprint.FinalScore,
			Similarity: m.Score,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseVector reads a comma-separated momentum vector and insists on the
// fixed fingerprint length.
func parseVector(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("missing vector")
	}
	parts := strings.Split(raw, ",")
	if len(parts) != model.VectorLength {
		return nil, fmt.Errorf("vector must have %d components, got %d", model.VectorLength, len(parts))
	}
	vector := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("vector component %d is not a number", i)
		}
		vector[i] = v
	}
	return vector, nil
}
