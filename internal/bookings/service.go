package bookings

import (
	"context"
	"fmt"

	"github.com/sealbook/notary-platform/internal/intake"
	"github.com/sealbook/notary-platform/internal/notify"
	"github.com/sealbook/notary-platform/internal/observability/metrics"
	"github.com/sealbook/notary-platform/internal/payments"
	"github.com/sealbook/notary-platform/internal/tenancy"
	"github.com/sealbook/notary-platform/pkg/logging"
)

// Creator is the persistence dependency of Service; Repository implements it.
type Creator interface {
	Create(ctx context.Context, orgID, sessionID string, form intake.FormState) (*Booking, error)
}

// Service turns a completed intake into a booking record plus a payment
// redirect. It implements intake.Submitter.
type Service struct {
	repo         Creator
	checkout     payments.CheckoutProvider
	notifier     *notify.Service
	metrics      *metrics.IntakeMetrics
	depositCents int64
	logger       *logging.Logger
}

// NewService wires the submission pipeline. notifier and metrics may be nil.
func NewService(repo Creator, checkout payments.CheckoutProvider, notifier *notify.Service, m *metrics.IntakeMetrics, depositCents int64, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:         repo,
		checkout:     checkout,
		notifier:     notifier,
		metrics:      m,
		depositCents: depositCents,
		logger:       logger,
	}
}

// Submit persists the booking and creates a checkout session. The returned
// URL is the external next step for the client; any failure is reported
// verbatim so the intake flow keeps its state for a retry.
func (s *Service) Submit(ctx context.Context, sessionID string, form intake.FormState) (string, error) {
	orgID, _ := tenancy.OrgIDFromContext(ctx)

	booking, err := s.repo.Create(ctx, orgID, sessionID, form)
	if err != nil {
		s.metrics.ObserveSubmission("persist_failed")
		return "", fmt.Errorf("bookings: create: %w", err)
	}

	sess, err := s.checkout.CreateCheckout(ctx, payments.CheckoutParams{
		BookingID:   booking.ID,
		OrgID:       orgID,
		ClientEmail: booking.ClientEmail,
		AmountCents: s.depositCents,
		Description: "Notary appointment deposit",
	})
	if err != nil {
		s.metrics.ObserveSubmission("checkout_failed")
		return "", fmt.Errorf("bookings: checkout for %s: %w", booking.ID, err)
	}

	// Confirmation email is best-effort; the booking stands without it.
	if s.notifier != nil {
		if err := s.notifier.SendBookingReceived(ctx, notify.BookingReceived{
			To:              booking.ClientEmail,
			ToName:          booking.ClientName,
			AppointmentDate: booking.AppointmentDate,
			AppointmentTime: booking.AppointmentTime,
			Timezone:        booking.Timezone,
		}); err != nil {
			s.logger.Warn("confirmation email failed", "booking_id", booking.ID, "error", err)
		}
	}

	s.metrics.ObserveSubmission("accepted")
	s.logger.Info("booking submitted",
		"booking_id", booking.ID,
		"org_id", orgID,
		"services", len(booking.ServiceIDs),
	)
	return sess.URL, nil
}
