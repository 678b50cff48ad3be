package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/sealbook/notary-platform/internal/intake"
	"github.com/sealbook/notary-platform/internal/notify"
	"github.com/sealbook/notary-platform/internal/payments"
	"github.com/sealbook/notary-platform/internal/tenancy"
)

type stubCreator struct {
	err  error
	last *Booking
}

func (s *stubCreator) Create(_ context.Context, orgID, sessionID string, form intake.FormState) (*Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.last = &Booking{
		ID:              uuid.New(),
		OrgID:           orgID,
		SessionID:       sessionID,
		ClientEmail:     form.Email,
		ClientName:      form.FirstName + " " + form.LastName,
		ServiceIDs:      form.ServiceIDs,
		AppointmentDate: form.AppointmentDate,
		AppointmentTime: form.AppointmentTime,
		Timezone:        form.Timezone,
		Status:          StatusPendingPayment,
	}
	return s.last, nil
}

type stubCheckout struct {
	url string
	err error
}

func (s *stubCheckout) CreateCheckout(context.Context, payments.CheckoutParams) (*payments.CheckoutSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &payments.CheckoutSession{URL: s.url, ProviderID: "cs_test"}, nil
}

func submittedForm() intake.FormState {
	return intake.FormState{
		ServiceIDs:      []string{"apostille"},
		AppointmentDate: "2025-03-10",
		AppointmentTime: "10:00",
		Timezone:        "UTC-5",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
	}
}

func TestSubmitReturnsCheckoutRedirect(t *testing.T) {
	repo := &stubCreator{}
	email := notify.NewStubEmailSender(nil)
	svc := NewService(repo, &stubCheckout{url: "https://pay.example.com/cs_test"}, notify.NewService(email, nil), nil, 5000, nil)

	ctx := tenancy.WithOrgID(context.Background(), "org-1")
	url, err := svc.Submit(ctx, "sess-1", submittedForm())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if url != "https://pay.example.com/cs_test" {
		t.Fatalf("redirect = %q", url)
	}
	if repo.last == nil || repo.last.OrgID != "org-1" {
		t.Fatalf("booking not created with org scope: %+v", repo.last)
	}
	if len(email.Sent) != 1 {
		t.Fatalf("confirmation emails sent = %d, want 1", len(email.Sent))
	}
}

func TestSubmitFailsWhenPersistenceFails(t *testing.T) {
	svc := NewService(&stubCreator{err: errors.New("db down")}, &stubCheckout{url: "x"}, nil, nil, 5000, nil)
	if _, err := svc.Submit(context.Background(), "sess-1", submittedForm()); err == nil {
		t.Fatal("expected persistence error to surface")
	}
}

func TestSubmitFailsWhenCheckoutFails(t *testing.T) {
	repo := &stubCreator{}
	svc := NewService(repo, &stubCheckout{err: errors.New("processor 503")}, nil, nil, 5000, nil)
	if _, err := svc.Submit(context.Background(), "sess-1", submittedForm()); err == nil {
		t.Fatal("expected checkout error to surface")
	}
}

func TestSubmitSurvivesEmailFailure(t *testing.T) {
	repo := &stubCreator{}
	svc := NewService(repo, &stubCheckout{url: "https://pay.example.com/x"}, notify.NewService(failingSender{}, nil), nil, 5000, nil)
	if _, err := svc.Submit(context.Background(), "sess-1", submittedForm()); err != nil {
		t.Fatalf("email failure must not fail submission: %v", err)
	}
}

type failingSender struct{}

func (failingSender) Send(context.Context, notify.EmailMessage) error {
	return errors.New("smtp down")
}
