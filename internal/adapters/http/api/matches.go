// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/pitchside/oracle/internal/domain/dedupe"
	"github.com/pitchside/oracle/internal/domain/model"
)

// MatchDependencies defines the interface for match ingestion dependencies.
type MatchDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, m model.Match) bool
}

// MatchesHandler handles match ingestion requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandlePostMatch handles POST /matches requests.
func (h *MatchesHandler) HandlePostMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	m := req.toMatch()
	if err := m.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	// Records submitted without an idempotency key get one assigned, so every
	// accepted record can be retried safely downstream.
	if m.EventID == "" {
		m.EventID = uuid.NewString()
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), m.EventID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", EventID: m.EventID, Duplicate: true})
		return
	}

	// Try to enqueue for async processing
	if ok := h.deps.Enqueue(r.Context(), m); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), m.EventID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", EventID: m.EventID, Duplicate: false})
}
