package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sealbook/notary-platform/pkg/logging"
)

// Submitter hands a completed form to the external record-creation endpoint.
// The controller treats the call as opaque: success may carry a redirect URL
// for the next external step (e.g. payment), failure leaves the flow intact.
type Submitter interface {
	Submit(ctx context.Context, sessionID string, form FormState) (redirectURL string, err error)
}

// NavResult is the outcome of a navigation request. Allowed=false is not an
// error: the request was silently refused and Step carries the step the
// caller must render instead. Gating here is a UI convenience; privileged
// actions are re-validated server-side regardless.
type NavResult struct {
	Allowed bool `json:"allowed"`
	Step    int  `json:"step"`
}

// AdvanceResult is the outcome of one Advance call.
type AdvanceResult struct {
	// Step the caller should render next.
	Step int `json:"step"`
	// FieldErrors is non-empty when validation blocked the advance.
	FieldErrors []FieldError `json:"field_errors,omitempty"`
	// Submitted is true when the final step submitted successfully.
	Submitted bool `json:"submitted"`
	// RedirectURL is the external next step reported by the submission
	// endpoint, passed through without interpretation.
	RedirectURL string `json:"redirect_url,omitempty"`
}

// Controller owns the step definitions and the collaborators shared by all
// intake sessions. Per-session state lives in Session.
type Controller struct {
	steps  []StepDefinition
	store  Store
	submit Submitter
	logger *logging.Logger
}

// NewController wires the flow controller. submit may be nil in read-only
// contexts (resume checks, dashboards).
func NewController(store Store, submit Submitter, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller{
		steps:  DefaultSteps(),
		store:  store,
		submit: submit,
		logger: logger,
	}
}

// Steps returns the immutable step sequence.
func (c *Controller) Steps() []StepDefinition {
	out := make([]StepDefinition, len(c.steps))
	copy(out, c.steps)
	return out
}

// Session is one client's in-progress intake. It exclusively owns its
// FormState and mirrors every mutation to the store synchronously, so a
// reload immediately after a change never sees a stale snapshot.
type Session struct {
	ID            string
	Authenticated bool

	c         *Controller
	current   int
	form      FormState
	completed map[int]bool
}

func formKey(sessionID string) string  { return "intake:" + sessionID + ":form" }
func stepsKey(sessionID string) string { return "intake:" + sessionID + ":steps" }

// Load reconstructs a session from the store, or starts a fresh one when
// nothing is persisted. The current step resumes at the first incomplete step.
func (c *Controller) Load(ctx context.Context, sessionID string, authenticated bool) (*Session, error) {
	s := &Session{
		ID:            sessionID,
		Authenticated: authenticated,
		c:             c,
		current:       StepServices,
		completed:     make(map[int]bool),
	}

	raw, err := c.store.Get(ctx, formKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("intake: load form: %w", err)
	}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.form); err != nil {
			return nil, fmt.Errorf("intake: decode persisted form: %w", err)
		}
	}

	raw, err = c.store.Get(ctx, stepsKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("intake: load completed steps: %w", err)
	}
	if raw != "" {
		var ids []int
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, fmt.Errorf("intake: decode completed steps: %w", err)
		}
		for _, id := range ids {
			s.completed[id] = true
		}
	}

	s.current = s.resumeStep()
	return s, nil
}

// Form returns a copy of the current form state.
func (s *Session) Form() FormState { return s.form }

// Current returns the step the session is on.
func (s *Session) Current() int { return s.current }

// CompletedSteps returns the completed step ids in ascending order.
func (s *Session) CompletedSteps() []int {
	ids := make([]int, 0, len(s.completed))
	for id := range s.completed {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// UpdateForm applies a mutation to the form and mirrors it to the store
// before returning. Persistence errors are logged, not surfaced: the
// in-memory state is authoritative for the rest of the request.
func (s *Session) UpdateForm(ctx context.Context, mutate func(*FormState)) {
	mutate(&s.form)
	s.persistForm(ctx)
}

// Advance validates the current step and moves forward on success. On the
// final step it submits instead of navigating; a successful submission
// clears all persisted progress and resets the session to step 1.
func (s *Session) Advance(ctx context.Context) (AdvanceResult, error) {
	if errs := validateStep(s.current, &s.form, s.Authenticated); len(errs) > 0 {
		return AdvanceResult{Step: s.current, FieldErrors: errs}, nil
	}

	if s.current == s.lastStep() {
		return s.submitFinal(ctx)
	}

	s.completed[s.current] = true
	s.current++
	s.persistCompleted(ctx)
	return AdvanceResult{Step: s.current}, nil
}

func (s *Session) submitFinal(ctx context.Context) (AdvanceResult, error) {
	if s.c.submit == nil {
		return AdvanceResult{Step: s.current}, fmt.Errorf("intake: no submitter configured")
	}
	redirect, err := s.c.submit.Submit(ctx, s.ID, s.form)
	if err != nil {
		// Form and progress stay persisted so a retry needs no re-entry.
		return AdvanceResult{Step: s.current}, fmt.Errorf("intake: submit: %w", err)
	}

	s.completed[s.current] = true
	if err := s.Abandon(ctx); err != nil {
		s.c.logger.Warn("failed to clear intake after submit", "session", s.ID, "error", err)
	}
	return AdvanceResult{Step: s.current, Submitted: true, RedirectURL: redirect}, nil
}

// Retreat moves one step back. It never touches CompletedSteps and is
// always permitted above step 1.
func (s *Session) Retreat() int {
	if s.current > StepServices {
		s.current--
	}
	return s.current
}

// JumpTo moves directly to target when its prerequisite is met; otherwise
// the request is silently refused and the session stays where it is.
func (s *Session) JumpTo(target int) NavResult {
	if s.jumpAllowed(target) {
		s.current = target
		return NavResult{Allowed: true, Step: target}
	}
	return NavResult{Allowed: false, Step: s.current}
}

// Resolve is the resume-on-load guard for deep links: it answers where a
// direct request for target must land. Disallowed targets redirect to the
// first incomplete step.
func (s *Session) Resolve(target int) NavResult {
	if s.jumpAllowed(target) {
		s.current = target
		return NavResult{Allowed: true, Step: target}
	}
	s.current = s.resumeStep()
	return NavResult{Allowed: false, Step: s.current}
}

// Abandon clears all persisted progress and resets the session.
func (s *Session) Abandon(ctx context.Context) error {
	s.form = FormState{}
	s.completed = make(map[int]bool)
	s.current = StepServices
	if err := s.c.store.Delete(ctx, formKey(s.ID), stepsKey(s.ID)); err != nil {
		return fmt.Errorf("intake: clear session: %w", err)
	}
	return nil
}

// jumpAllowed implements the gating rule: step n is reachable only when
// n == 1 or step n-1 has been completed.
func (s *Session) jumpAllowed(target int) bool {
	if target < StepServices || target > s.lastStep() {
		return false
	}
	return target == StepServices || s.completed[target-1]
}

// resumeStep is max(completed)+1 capped at the last step, or step 1 when
// nothing is completed.
func (s *Session) resumeStep() int {
	next := StepServices
	for id := range s.completed {
		if id >= next {
			next = id + 1
		}
	}
	if last := s.lastStep(); next > last {
		next = last
	}
	return next
}

func (s *Session) lastStep() int {
	return s.c.steps[len(s.c.steps)-1].ID
}

func (s *Session) persistForm(ctx context.Context) {
	data, err := json.Marshal(s.form)
	if err != nil {
		s.c.logger.Error("failed to encode intake form", "session", s.ID, "error", err)
		return
	}
	if err := s.c.store.Set(ctx, formKey(s.ID), string(data)); err != nil {
		s.c.logger.Warn("failed to persist intake form", "session", s.ID, "error", err)
	}
}

func (s *Session) persistCompleted(ctx context.Context) {
	data, err := json.Marshal(s.CompletedSteps())
	if err != nil {
		s.c.logger.Error("failed to encode completed steps", "session", s.ID, "error", err)
		return
	}
	if err := s.c.store.Set(ctx, stepsKey(s.ID), string(data)); err != nil {
		s.c.logger.Warn("failed to persist completed steps", "session", s.ID, "error", err)
	}
}
