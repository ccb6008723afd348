// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pitchside/oracle/internal/domain/dedupe"
	"github.com/pitchside/oracle/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a match record for async appending. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, m model.Match) bool

	// Train recomputes and publishes the model over the full stored history.
	Train(ctx context.Context) (model.TrainResult, error)

	// Read operations serve from the currently published model.
	Predict(ctx context.Context, team1, team2, venue string) (model.Prediction, error)
	Insights(ctx context.Context, team string) (model.TeamInsight, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	indexHandler    *IndexHandler
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	matchesHandler  *MatchesHandler
	trainHandler    *TrainHandler
	predictHandler  *PredictHandler
	insightsHandler *InsightsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		indexHandler:    NewIndexHandler(),
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		matchesHandler:  NewMatchesHandler(deps),
		trainHandler:    NewTrainHandler(deps),
		predictHandler:  NewPredictHandler(deps),
		insightsHandler: NewInsightsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandlePostMatch, "matches"))
	mux.HandleFunc("/train", MetricsMiddleware(s.trainHandler.HandlePostTrain, "train"))
	mux.HandleFunc("/predict", MetricsMiddleware(s.predictHandler.HandlePostPredict, "predict"))
	mux.HandleFunc("/insights/", MetricsMiddleware(s.insightsHandler.HandleGetInsights, "insights"))
	mux.HandleFunc("/", s.indexHandler.HandleIndex)
}

// matchRequest mirrors the ingestion schema for POST /matches.
type matchRequest struct {
	EventID      string `json:"event_id"`
	Team1        string `json:"team1"`
	Team2        string `json:"team2"`
	Team1Score   int    `json:"team1Score"`
	Team2Score   int    `json:"team2Score"`
	Winner       string `json:"winner"`
	Venue        string `json:"venue"`
	TossWinner   string `json:"tossWinner"`
	TossDecision string `json:"tossDecision"`
}

// toMatch converts the request body to a domain record. Validation happens on
// the domain type so the rules live in one place.
func (m matchRequest) toMatch() model.Match {
	return model.Match{
		EventID:      m.EventID,
		Team1:        m.Team1,
		Team2:        m.Team2,
		Team1Score:   m.Team1Score,
		Team2Score:   m.Team2Score,
		Winner:       m.Winner,
		Venue:        m.Venue,
		TossWinner:   m.TossWinner,
		TossDecision: m.TossDecision,
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	EventID   string `json:"event_id"`
	Duplicate bool   `json:"duplicate"`
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
