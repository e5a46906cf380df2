package server

import (
	"context"
	"net/http"
	"time"
)

type HealthHandler struct {
	dbPing func(context.Context) error
}

func NewHealthHandler(dbPing func(context.Context) error) *HealthHandler {
	return &HealthHandler{dbPing: dbPing}
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "alive"}, http.StatusOK)
}

// Readiness handles GET /health/ready: the engine is ready once the gene
// database answers a ping.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := h.dbPing(ctx); err != nil {
			respondJSON(w, map[string]string{"status": "unavailable", "error": err.Error()}, http.StatusServiceUnavailable)
			return
		}
	}
	respondJSON(w, map[string]string{"status": "ready", "timestamp": time.Now().UTC().Format(time.RFC3339)}, http.StatusOK)
}
