// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// HealthDependencies defines the interface for health checks.
type HealthDependencies interface {
	CorpusSize(ctx context.Context) (int, error)
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps HealthDependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status      string `json:"status"`
	VerbsLoaded int    `json:"verbs_loaded"`
}

// HandleHealth handles GET /api/health requests. The service is healthy
// exactly when the corpus is loadable; without it no session can be served.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	const op = "api.health"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	size, err := h.deps.CorpusSize(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "service_unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", VerbsLoaded: size})
}
