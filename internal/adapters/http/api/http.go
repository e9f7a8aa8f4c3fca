// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/starkverb/internal/domain/model"
	"github.com/okian/starkverb/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// StartSession draws count verbs into a fresh quiz selection.
	StartSession(ctx context.Context, count int) (model.QuizSelection, error)

	// SubmitAnswers grades a full submission into a session report.
	SubmitAnswers(ctx context.Context, answers []model.Answer) (model.SessionReport, error)

	// CorpusSize reports the number of loaded verbs.
	CorpusSize(ctx context.Context) (int, error)
}

// Limits on the count accepted by GET /api/session/start.
type CountLimits struct {
	Default int
	Max     int
}

// Request validator shared by all handlers.
var validate = validator.New() //nolint:gochecknoglobals // validator instances are designed to be shared

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	startHandler  *StartSessionHandler
	submitHandler *SubmitSessionHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, limits CountLimits) *Server {
	return &Server{
		healthHandler: NewHealthHandler(deps),
		statsHandler:  NewStatsHandler(statsProvider),
		startHandler:  NewStartSessionHandler(deps, limits),
		submitHandler: NewSubmitSessionHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/api/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/api/session/start", MetricsMiddleware(s.startHandler.HandleStartSession, "session_start"))
	mux.HandleFunc("/api/session/submit", MetricsMiddleware(s.submitHandler.HandleSubmitSession, "session_submit"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
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
