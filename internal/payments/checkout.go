// Package payments creates checkout sessions with the external payment
// processor. The processor's internals are out of scope: the platform only
// needs a redirect URL to hand the client after intake submission.
package payments

import (
	"context"

	"github.com/google/uuid"
)

// CheckoutParams carries what the processor needs to build a session.
type CheckoutParams struct {
	BookingID   uuid.UUID
	OrgID       string
	ClientEmail string
	AmountCents int64
	Description string
}

// CheckoutSession is the processor's answer, passed through opaquely.
type CheckoutSession struct {
	URL        string
	ProviderID string
}

// CheckoutProvider creates a hosted checkout session for a booking deposit.
type CheckoutProvider interface {
	CreateCheckout(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
}
