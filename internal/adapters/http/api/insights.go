// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pitchside/oracle/internal/domain/model"
)

// InsightDependencies defines the interface for insight operations.
type InsightDependencies interface {
	Insights(ctx context.Context, team string) (model.TeamInsight, error)
}

// InsightsHandler handles team insight requests.
type InsightsHandler struct {
	deps InsightDependencies
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(deps InsightDependencies) *InsightsHandler {
	return &InsightsHandler{deps: deps}
}

// HandleGetInsights handles GET /insights/{team} requests.
func (h *InsightsHandler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_insights"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /insights/
	path := strings.TrimPrefix(r.URL.Path, "/insights/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	team, err := url.PathUnescape(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	report, err := h.deps.Insights(r.Context(), team)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", WrapKind(op, ErrNotReady, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
