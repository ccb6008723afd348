// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// IndexHandler serves the service description at the root path.
type IndexHandler struct{}

// NewIndexHandler creates a new index handler.
func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

type indexResponse struct {
	Service   string            `json:"service"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// HandleIndex handles GET / requests.
func (h *IndexHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, indexResponse{
		Service: "match outcome predictor",
		Status:  "running",
		Endpoints: map[string]string{
			"POST /matches":        "ingest a match record",
			"POST /train":          "retrain the model over stored history",
			"POST /predict":        "predict a fixture outcome",
			"GET /insights/{team}": "per-team performance report",
			"GET /stats":           "service statistics",
			"GET /healthz":         "liveness and metrics",
		},
	})
}
