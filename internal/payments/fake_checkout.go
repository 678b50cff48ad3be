package payments

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/sealbook/notary-platform/pkg/logging"
)

// FakeCheckoutService is a dev/demo provider that hands out an internal URL
// so the flow can be exercised without processor credentials. Must be gated
// by configuration (ALLOW_FAKE_PAYMENTS) and never enabled in production.
type FakeCheckoutService struct {
	publicBaseURL string
	logger        *logging.Logger
}

// NewFakeCheckoutService builds the fake provider.
func NewFakeCheckoutService(publicBaseURL string, logger *logging.Logger) *FakeCheckoutService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FakeCheckoutService{
		publicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		logger:        logger,
	}
}

// CreateCheckout implements CheckoutProvider.
func (s *FakeCheckoutService) CreateCheckout(_ context.Context, params CheckoutParams) (*CheckoutSession, error) {
	if params.BookingID == uuid.Nil {
		return nil, fmt.Errorf("payments: fake checkout requires a booking id")
	}
	if !isValidBaseURL(s.publicBaseURL) {
		return nil, fmt.Errorf("payments: fake checkout requires an absolute http(s) PUBLIC_BASE_URL")
	}
	s.logger.Info("fake checkout session issued", "booking_id", params.BookingID)
	return &CheckoutSession{
		URL:        fmt.Sprintf("%s/payments/fake/%s", s.publicBaseURL, params.BookingID),
		ProviderID: "fake:" + params.BookingID.String(),
	}, nil
}

func isValidBaseURL(value string) bool {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	}
	return false
}
