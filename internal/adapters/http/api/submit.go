// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/starkverb/internal/domain/model"
	"github.com/okian/starkverb/internal/domain/session"
)

// SubmitDependencies defines the interface for grading submissions.
type SubmitDependencies interface {
	SubmitAnswers(ctx context.Context, answers []model.Answer) (model.SessionReport, error)
}

// SubmitSessionHandler handles answer submission requests.
type SubmitSessionHandler struct {
	deps SubmitDependencies
}

// NewSubmitSessionHandler creates a new submission handler.
func NewSubmitSessionHandler(deps SubmitDependencies) *SubmitSessionHandler {
	return &SubmitSessionHandler{deps: deps}
}

// answerPayload mirrors the wire schema of one submitted verb. The form
// fields may be absent; an absent field grades like an empty answer.
type answerPayload struct {
	Infinitive  string `json:"infinitive" validate:"required"`
	Praesens    string `json:"praesens"`
	Praeteritum string `json:"praeteritum"`
	Perfekt     string `json:"perfekt"`
}

type submitRequest struct {
	SessionID string          `json:"session_id" validate:"required"`
	Answers   []answerPayload `json:"answers" validate:"required,min=1,dive"`
}

// verbResultPayload mirrors the per-verb breakdown in the report.
type verbResultPayload struct {
	Infinitive     string            `json:"infinitive"`
	Correct        map[string]bool   `json:"correct"`
	UserAnswers    map[string]string `json:"user_answers"`
	CorrectAnswers map[string]string `json:"correct_answers"`
	AllCorrect     bool              `json:"all_correct"`
}

type submitResponse struct {
	SessionID       string              `json:"session_id"`
	TotalVerbs      int                 `json:"total_verbs"`
	TotalForms      int                 `json:"total_forms"`
	CorrectCount    int                 `json:"correct_count"`
	ScorePercentage int                 `json:"score_percentage"`
	Results         []verbResultPayload `json:"results"`
}

// HandleSubmitSession handles POST /api/session/submit requests.
func (h *SubmitSessionHandler) HandleSubmitSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	answers := make([]model.Answer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = model.Answer{
			Infinitive:  a.Infinitive,
			Praesens:    a.Praesens,
			Praeteritum: a.Praeteritum,
			Perfekt:     a.Perfekt,
		}
	}

	report, err := h.deps.SubmitAnswers(r.Context(), answers)
	if err != nil {
		if errors.Is(err, session.ErrUnknownVerbInSubmission) {
			writeError(w, http.StatusBadRequest, "unknown_verb", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	resp := submitResponse{
		SessionID:       req.SessionID,
		TotalVerbs:      report.TotalVerbs,
		TotalForms:      report.TotalForms,
		CorrectCount:    report.CorrectCount,
		ScorePercentage: report.ScorePercentage,
		Results:         make([]verbResultPayload, len(report.Results)),
	}
	for i, vr := range report.Results {
		payload := verbResultPayload{
			Infinitive:     vr.Infinitive,
			Correct:        make(map[string]bool, len(vr.Results)),
			UserAnswers:    make(map[string]string, len(vr.Results)),
			CorrectAnswers: make(map[string]string, len(vr.Results)),
			AllCorrect:     vr.AllCorrect(),
		}
		for _, fr := range vr.Results {
			name := string(fr.Form)
			payload.Correct[name] = fr.IsCorrect
			payload.UserAnswers[name] = fr.UserAnswer
			payload.CorrectAnswers[name] = fr.CorrectAnswer
		}
		resp.Results[i] = payload
	}
	writeJSON(w, http.StatusOK, resp)
}
