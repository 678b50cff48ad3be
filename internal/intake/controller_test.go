package intake

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

type stubSubmitter struct {
	redirect string
	err      error
	calls    int
	lastForm FormState
}

func (s *stubSubmitter) Submit(_ context.Context, _ string, form FormState) (string, error) {
	s.calls++
	s.lastForm = form
	return s.redirect, s.err
}

func newTestSession(t *testing.T, submit Submitter) (*Controller, *Session) {
	t.Helper()
	c := NewController(NewMemoryStore(), submit, nil)
	s, err := c.Load(context.Background(), "sess-1", false)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return c, s
}

func completeForm() FormState {
	return FormState{
		ServiceIDs: []string{"apostille"},
		Documents: []DocumentRef{
			{ServiceID: "apostille", FileName: "deed.pdf", StorageKey: "docs/sess-1/deed.pdf"},
		},
		AppointmentDate: "2025-03-10",
		AppointmentTime: "10:00",
		Timezone:        "UTC-5",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Phone:           "+14155550123",
		Street:          "1 Analytical Way",
		City:            "London",
		PostalCode:      "EC1A",
		Country:         "GB",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	}
}

func TestJumpGatingBoundary(t *testing.T) {
	// Property: jumpTo(k) succeeds iff k == 1 or k-1 is completed, for
	// arbitrary completed-step subsets.
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		_, s := newTestSession(t, nil)
		for id := StepServices; id < StepReview; id++ {
			if rng.Intn(2) == 1 {
				s.completed[id] = true
			}
		}
		for target := StepServices; target <= StepReview; target++ {
			want := target == StepServices || s.completed[target-1]
			res := s.JumpTo(target)
			if res.Allowed != want {
				t.Fatalf("trial %d: JumpTo(%d) allowed=%v, want %v (completed=%v)",
					trial, target, res.Allowed, want, s.CompletedSteps())
			}
			if res.Allowed && res.Step != target {
				t.Fatalf("allowed jump landed on %d, want %d", res.Step, target)
			}
		}
	}
}

func TestJumpOutOfRangeIsRefused(t *testing.T) {
	_, s := newTestSession(t, nil)
	for _, target := range []int{0, -3, StepReview + 1, 99} {
		if res := s.JumpTo(target); res.Allowed {
			t.Fatalf("JumpTo(%d) should be refused", target)
		}
	}
}

func TestAdvancePersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewController(store, nil, nil)

	s, err := c.Load(ctx, "sess-rt", false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.UpdateForm(ctx, func(f *FormState) {
		f.ServiceIDs = []string{"power-of-attorney"}
		f.Notes = "bring two witnesses"
	})
	res, err := s.Advance(ctx)
	if err != nil || len(res.FieldErrors) > 0 {
		t.Fatalf("Advance failed: %v %v", err, res.FieldErrors)
	}

	reloaded, err := c.Load(ctx, "sess-rt", false)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got, want := reloaded.Form(), s.Form(); fmt.Sprintf("%+v", got) != fmt.Sprintf("%+v", want) {
		t.Fatalf("form snapshot changed across reload:\n got %+v\nwant %+v", got, want)
	}
	if got, want := fmt.Sprint(reloaded.CompletedSteps()), fmt.Sprint(s.CompletedSteps()); got != want {
		t.Fatalf("completed steps changed across reload: got %s want %s", got, want)
	}
	if reloaded.Current() != StepDocuments {
		t.Fatalf("reload resumed at %d, want %d", reloaded.Current(), StepDocuments)
	}
}

func TestAdvanceBlockedByValidationLeavesStateAlone(t *testing.T) {
	ctx := context.Background()
	_, s := newTestSession(t, nil)

	res, err := s.Advance(ctx)
	if err != nil {
		t.Fatalf("validation failure must not be an error: %v", err)
	}
	if len(res.FieldErrors) == 0 {
		t.Fatal("expected field errors for empty service selection")
	}
	if res.Step != StepServices || s.Current() != StepServices {
		t.Fatalf("blocked advance moved the session: %d", s.Current())
	}
	if len(s.CompletedSteps()) != 0 {
		t.Fatalf("blocked advance marked steps completed: %v", s.CompletedSteps())
	}
}

func TestRetreatIsUnconditionalAndStopsAtOne(t *testing.T) {
	_, s := newTestSession(t, nil)
	s.form = completeForm()
	ctx := context.Background()
	if _, err := s.Advance(ctx); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := s.Retreat(); got != StepServices {
		t.Fatalf("Retreat = %d, want %d", got, StepServices)
	}
	if got := s.Retreat(); got != StepServices {
		t.Fatalf("Retreat below step 1 = %d, want %d", got, StepServices)
	}
	if len(s.CompletedSteps()) != 1 {
		t.Fatalf("Retreat mutated completed steps: %v", s.CompletedSteps())
	}
}

func TestResolveRedirectsDeepLinks(t *testing.T) {
	_, s := newTestSession(t, nil)
	s.completed[StepServices] = true
	s.completed[StepDocuments] = true

	res := s.Resolve(StepContact)
	if res.Allowed {
		t.Fatal("step 4 must not be reachable with only steps 1-2 completed")
	}
	if res.Step != StepAppointment {
		t.Fatalf("redirect landed on %d, want %d", res.Step, StepAppointment)
	}

	res = s.Resolve(StepAppointment)
	if !res.Allowed || res.Step != StepAppointment {
		t.Fatalf("step 3 should be directly reachable: %+v", res)
	}
}

func TestResolveEmptyProgressGoesToStepOne(t *testing.T) {
	_, s := newTestSession(t, nil)
	if res := s.Resolve(StepReview); res.Allowed || res.Step != StepServices {
		t.Fatalf("Resolve(5) on empty progress = %+v, want redirect to 1", res)
	}
}

func TestSubmissionFailureKeepsEverything(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	submit := &stubSubmitter{err: errors.New("upstream 503")}
	c := NewController(store, submit, nil)

	s, err := c.Load(ctx, "sess-fail", false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.UpdateForm(ctx, func(f *FormState) { *f = completeForm() })
	walkToReview(t, s)

	res, err := s.Advance(ctx)
	if err == nil {
		t.Fatal("expected submission error to surface")
	}
	if res.Submitted {
		t.Fatal("failed submission reported as submitted")
	}
	if s.Form().FirstName != "Ada" {
		t.Fatal("form cleared on failed submission")
	}

	reloaded, err := c.Load(ctx, "sess-fail", false)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Form().FirstName != "Ada" {
		t.Fatal("persisted form cleared on failed submission")
	}
}

func TestEndToEndIntakeScenario(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	submit := &stubSubmitter{redirect: "https://pay.example.com/cs_123"}
	c := NewController(store, submit, nil)

	s, err := c.Load(ctx, "sess-e2e", false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s.UpdateForm(ctx, func(f *FormState) { f.ServiceIDs = []string{"apostille"} })
	mustAdvance(t, s, StepDocuments)

	s.UpdateForm(ctx, func(f *FormState) {
		f.Documents = append(f.Documents, DocumentRef{
			ServiceID: "apostille", FileName: "deed.pdf", StorageKey: "docs/sess-e2e/deed.pdf",
		})
	})
	mustAdvance(t, s, StepAppointment)

	s.UpdateForm(ctx, func(f *FormState) {
		f.AppointmentDate = "2025-03-10"
		f.AppointmentTime = "10:00"
		f.Timezone = "UTC-5"
	})
	mustAdvance(t, s, StepContact)

	s.UpdateForm(ctx, func(f *FormState) {
		f.FirstName = "Ada"
		f.LastName = "Lovelace"
		f.Email = "ada@example.com"
		f.Phone = "+14155550123"
		f.Street = "1 Analytical Way"
		f.City = "London"
		f.PostalCode = "EC1A"
		f.Country = "GB"
		f.Password = "correct horse"
		f.ConfirmPassword = "correct horse"
	})
	mustAdvance(t, s, StepReview)

	res, err := s.Advance(ctx)
	if err != nil {
		t.Fatalf("final advance: %v", err)
	}
	if !res.Submitted || res.RedirectURL != "https://pay.example.com/cs_123" {
		t.Fatalf("unexpected submission result: %+v", res)
	}
	if submit.calls != 1 {
		t.Fatalf("submitter called %d times, want 1", submit.calls)
	}
	if submit.lastForm.AppointmentTime != "10:00" {
		t.Fatalf("submitted form lost appointment time: %+v", submit.lastForm)
	}

	// State is cleared in memory and in the store.
	if got := s.Form(); len(got.ServiceIDs) != 0 || got.FirstName != "" {
		t.Fatalf("form not cleared after submission: %+v", got)
	}
	if len(s.CompletedSteps()) != 0 || s.Current() != StepServices {
		t.Fatalf("progress not reset after submission: %v at %d", s.CompletedSteps(), s.Current())
	}
	reloaded, err := c.Load(ctx, "sess-e2e", false)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Form().ServiceIDs) != 0 || len(reloaded.CompletedSteps()) != 0 {
		t.Fatal("persisted state survived successful submission")
	}
}

func walkToReview(t *testing.T, s *Session) {
	t.Helper()
	for s.Current() < StepReview {
		mustAdvance(t, s, s.Current()+1)
	}
}

func mustAdvance(t *testing.T, s *Session, want int) {
	t.Helper()
	res, err := s.Advance(context.Background())
	if err != nil {
		t.Fatalf("Advance from %d: %v", want-1, err)
	}
	if len(res.FieldErrors) > 0 {
		t.Fatalf("Advance from %d blocked: %v", want-1, res.FieldErrors)
	}
	if res.Step != want {
		t.Fatalf("Advance landed on %d, want %d", res.Step, want)
	}
}
