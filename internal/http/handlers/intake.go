package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/sealbook/notary-platform/internal/http/middleware"
	"github.com/sealbook/notary-platform/internal/intake"
	"github.com/sealbook/notary-platform/internal/observability/metrics"
	"github.com/sealbook/notary-platform/pkg/logging"
)

// HeaderSessionID identifies one intake session across requests.
const HeaderSessionID = "X-Session-Id"

// IntakeHandler exposes the multi-step booking flow over JSON.
type IntakeHandler struct {
	controller *intake.Controller
	metrics    *metrics.IntakeMetrics
	logger     *logging.Logger
}

// NewIntakeHandler creates the intake endpoint set. metrics may be nil.
func NewIntakeHandler(controller *intake.Controller, m *metrics.IntakeMetrics, logger *logging.Logger) *IntakeHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &IntakeHandler{controller: controller, metrics: m, logger: logger}
}

// stateResponse is the full session snapshot returned by most endpoints, so
// a client can re-render the whole flow from any single response.
type stateResponse struct {
	SessionID      string                  `json:"session_id"`
	Steps          []intake.StepDefinition `json:"steps"`
	CurrentStep    int                     `json:"current_step"`
	CompletedSteps []int                   `json:"completed_steps"`
	Form           intake.FormState        `json:"form"`
}

func (h *IntakeHandler) load(w http.ResponseWriter, r *http.Request) (*intake.Session, bool) {
	sessionID := strings.TrimSpace(r.Header.Get(HeaderSessionID))
	if sessionID == "" {
		jsonError(w, "missing "+HeaderSessionID+" header", http.StatusBadRequest)
		return nil, false
	}
	_, authenticated := middleware.CurrentUser(r.Context())
	sess, err := h.controller.Load(r.Context(), sessionID, authenticated)
	if err != nil {
		h.logger.Error("failed to load intake session", "session", sessionID, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return sess, true
}

func (h *IntakeHandler) state(sess *intake.Session) stateResponse {
	form := sess.Form()
	// Credentials never leave the server.
	form.Password = ""
	form.ConfirmPassword = ""
	return stateResponse{
		SessionID:      sess.ID,
		Steps:          h.controller.Steps(),
		CurrentStep:    sess.Current(),
		CompletedSteps: sess.CompletedSteps(),
		Form:           form,
	}
}

// GetState returns the current session snapshot.
// GET /intake
func (h *IntakeHandler) GetState(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.state(sess))
}

// UpdateForm merges the request body into the form. Fields absent from the
// body keep their current value; fields present overwrite, including with
// empty values.
// PATCH /intake/form
func (h *IntakeHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	body, err := decodeBody(r)
	if err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	sess.UpdateForm(r.Context(), func(f *intake.FormState) {
		// Unmarshal over the existing struct: only provided keys change.
		_ = json.Unmarshal(body, f)
	})
	writeJSON(w, http.StatusOK, h.state(sess))
}

func decodeBody(r *http.Request) ([]byte, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	var probe map[string]any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	return raw, nil
}

// advanceResponse wraps the advance outcome together with a fresh snapshot.
type advanceResponse struct {
	intake.AdvanceResult
	State stateResponse `json:"state"`
}

// Advance validates the current step and moves forward, submitting on the
// final step.
// POST /intake/advance
func (h *IntakeHandler) Advance(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	// Attribute the attempt to the step being validated, not the one the
	// session lands on.
	step := sess.Current()
	result, err := sess.Advance(r.Context())
	h.metrics.ObserveAdvance(strconv.Itoa(step), len(result.FieldErrors) > 0)
	if err != nil {
		h.logger.Error("intake submission failed", "session", sess.ID, "error", err)
		jsonError(w, "submission failed, please try again", http.StatusBadGateway)
		return
	}
	if len(result.FieldErrors) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, advanceResponse{AdvanceResult: result, State: h.state(sess)})
		return
	}
	writeJSON(w, http.StatusOK, advanceResponse{AdvanceResult: result, State: h.state(sess)})
}

// Retreat moves one step back.
// POST /intake/retreat
func (h *IntakeHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	sess.Retreat()
	writeJSON(w, http.StatusOK, h.state(sess))
}

// Jump moves directly to a step when its prerequisite is complete. A refused
// jump is still a 200: the response carries the step to render instead.
// POST /intake/jump
func (h *IntakeHandler) Jump(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	var req struct {
		Step int `json:"step"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	nav := sess.JumpTo(req.Step)
	h.metrics.ObserveNavigation(nav.Allowed)
	writeJSON(w, http.StatusOK, map[string]any{"nav": nav, "state": h.state(sess)})
}

// Resolve answers where a deep link to ?step=N must land.
// GET /intake/resolve
func (h *IntakeHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	target, err := strconv.Atoi(r.URL.Query().Get("step"))
	if err != nil {
		jsonError(w, "step query parameter must be an integer", http.StatusBadRequest)
		return
	}
	nav := sess.Resolve(target)
	h.metrics.ObserveNavigation(nav.Allowed)
	writeJSON(w, http.StatusOK, map[string]any{"nav": nav, "state": h.state(sess)})
}

// Abandon discards the session's form and progress.
// DELETE /intake
func (h *IntakeHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := sess.Abandon(r.Context()); err != nil {
		h.logger.Error("failed to abandon intake session", "session", sess.ID, "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
