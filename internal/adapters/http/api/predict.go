// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pitchside/oracle/internal/domain/model"
)

// PredictDependencies defines the interface for prediction operations.
type PredictDependencies interface {
	Predict(ctx context.Context, team1, team2, venue string) (model.Prediction, error)
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps PredictDependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// predictRequest mirrors the schema for POST /predict.
type predictRequest struct {
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
	Venue string `json:"venue"`
}

func (p predictRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Team1) == "":
		return errors.New("missing team1")
	case strings.TrimSpace(p.Team2) == "":
		return errors.New("missing team2")
	}
	return nil
}

// predictResponse is the success envelope for POST /predict.
type predictResponse struct {
	Success    bool             `json:"success"`
	Prediction model.Prediction `json:"prediction"`
}

// HandlePostPredict handles POST /predict requests.
func (h *PredictHandler) HandlePostPredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_predict"
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
	p, err := h.deps.Predict(r.Context(), req.Team1, req.Team2, req.Venue)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", WrapKind(op, ErrNotReady, err))
		return
	}
	writeJSON(w, http.StatusOK, predictResponse{Success: true, Prediction: p})
}
