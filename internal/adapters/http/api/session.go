// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/starkverb/internal/domain/model"
	"github.com/okian/starkverb/internal/domain/sampling"
)

// StartDependencies defines the interface for starting quiz sessions.
type StartDependencies interface {
	StartSession(ctx context.Context, count int) (model.QuizSelection, error)
}

// StartSessionHandler handles session start requests.
type StartSessionHandler struct {
	deps   StartDependencies
	limits CountLimits
}

// NewStartSessionHandler creates a new session start handler.
func NewStartSessionHandler(deps StartDependencies, limits CountLimits) *StartSessionHandler {
	return &StartSessionHandler{deps: deps, limits: limits}
}

// verbInfo mirrors the wire schema of one offered quiz slot. Canonical
// forms are deliberately absent.
type verbInfo struct {
	Infinitive   string   `json:"infinitive"`
	Index        int      `json:"index"`
	Translations []string `json:"translations"`
	Example      string   `json:"example"`
}

type startResponse struct {
	SessionID  string     `json:"session_id"`
	Verbs      []verbInfo `json:"verbs"`
	TotalVerbs int        `json:"total_verbs"`
}

// HandleStartSession handles GET /api/session/start?count=N requests.
// count defaults to the configured session size and must stay within
// [1, max]; requests beyond the corpus size are rejected by the sampler.
func (h *StartSessionHandler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.start_session"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	count := h.limits.Default
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request",
				WrapKind(op, ErrBadRequest, errors.New("count must be an integer")))
			return
		}
		count = n
	}
	if count < 1 || count > h.limits.Max {
		writeError(w, http.StatusBadRequest, "bad_request",
			NewKind(op, ErrBadRequest))
		return
	}

	selection, err := h.deps.StartSession(r.Context(), count)
	if err != nil {
		switch {
		case errors.Is(err, sampling.ErrInvalidCount), errors.Is(err, sampling.ErrNotEnoughVerbs):
			writeError(w, http.StatusBadRequest, "not_enough_verbs", Wrap(op, err))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}

	resp := startResponse{
		SessionID:  selection.SessionID,
		Verbs:      make([]verbInfo, len(selection.Verbs)),
		TotalVerbs: len(selection.Verbs),
	}
	for i, v := range selection.Verbs {
		translations := v.Translations
		if translations == nil {
			translations = []string{}
		}
		resp.Verbs[i] = verbInfo{
			Infinitive:   v.Infinitive,
			Index:        v.Index,
			Translations: translations,
			Example:      v.Example,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
