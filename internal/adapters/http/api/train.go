// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/pitchside/oracle/internal/domain/model"
	"github.com/pitchside/oracle/internal/domain/stats"
)

// TrainDependencies defines the interface for training operations.
type TrainDependencies interface {
	Train(ctx context.Context) (model.TrainResult, error)
}

// TrainHandler handles training requests.
type TrainHandler struct {
	deps TrainDependencies
}

// NewTrainHandler creates a new train handler.
func NewTrainHandler(deps TrainDependencies) *TrainHandler {
	return &TrainHandler{deps: deps}
}

// trainFailureResponse mirrors the error shape for a rejected training run.
type trainFailureResponse struct {
	Success        bool   `json:"success"`
	Error          string `json:"error"`
	CurrentMatches int    `json:"current_matches"`
}

// HandlePostTrain handles POST /train requests.
func (h *TrainHandler) HandlePostTrain(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_train"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	result, err := h.deps.Train(r.Context())
	if err != nil {
		var insufficient *stats.InsufficientDataError
		if errors.As(err, &insufficient) {
			// Too little history is a client-visible condition, not a fault.
			writeJSON(w, http.StatusUnprocessableEntity, trainFailureResponse{
				Success:        false,
				Error:          insufficient.Error(),
				CurrentMatches: insufficient.Current,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
