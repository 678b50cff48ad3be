package notify

import (
	"context"
	"fmt"

	"github.com/sealbook/notary-platform/pkg/logging"
)

// BookingReceived describes the confirmation sent right after submission.
// Times are the client's own wall clock, exactly as they picked them.
type BookingReceived struct {
	To              string
	ToName          string
	AppointmentDate string
	AppointmentTime string
	Timezone        string
}

// Service composes and sends client-facing notifications.
type Service struct {
	email  EmailSender
	logger *logging.Logger
}

// NewService creates a notification service; email may be nil to disable.
func NewService(email EmailSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, logger: logger}
}

// SendBookingReceived emails the client that their booking was recorded and
// payment is the next step.
func (s *Service) SendBookingReceived(ctx context.Context, b BookingReceived) error {
	if s == nil || s.email == nil {
		return nil
	}
	if b.To == "" {
		return fmt.Errorf("notify: booking confirmation needs a recipient")
	}

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"We received your notary booking for %s at %s (%s).\n"+
			"Complete the deposit payment to confirm your appointment.\n\n"+
			"You can reply to this email with any questions.\n",
		b.ToName, b.AppointmentDate, b.AppointmentTime, b.Timezone,
	)
	msg := EmailMessage{
		To:      b.To,
		ToName:  b.ToName,
		Subject: "Your notary booking is almost confirmed",
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: booking confirmation: %w", err)
	}
	return nil
}
