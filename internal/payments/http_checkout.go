package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sealbook/notary-platform/pkg/logging"
)

// HostedCheckoutService talks to the payment processor's checkout-session
// API over HTTP (form-encoded request, JSON response).
type HostedCheckoutService struct {
	secretKey  string
	successURL string
	cancelURL  string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewHostedCheckoutService builds the production checkout client.
func NewHostedCheckoutService(secretKey, baseURL, successURL, cancelURL string, logger *logging.Logger) *HostedCheckoutService {
	if logger == nil {
		logger = logging.Default()
	}
	return &HostedCheckoutService{
		secretKey:  secretKey,
		successURL: successURL,
		cancelURL:  cancelURL,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// WithHTTPClient overrides the HTTP client (tests).
func (s *HostedCheckoutService) WithHTTPClient(c *http.Client) *HostedCheckoutService {
	if c != nil {
		s.httpClient = c
	}
	return s
}

// CreateCheckout implements CheckoutProvider.
func (s *HostedCheckoutService) CreateCheckout(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	if s.secretKey == "" {
		return nil, fmt.Errorf("payments: checkout secret key not configured")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", s.successURL)
	form.Set("cancel_url", s.cancelURL)
	form.Set("client_reference_id", params.BookingID.String())
	form.Set("customer_email", params.ClientEmail)
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.Description)
	form.Set("line_items[0][quantity]", "1")
	form.Set("metadata[org_id]", params.OrgID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("payments: build checkout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments: checkout request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("payments: read checkout response: %w", err)
	}
	if resp.StatusCode >= 400 {
		s.logger.Error("checkout session creation failed",
			"status", resp.StatusCode,
			"booking_id", params.BookingID,
		)
		return nil, fmt.Errorf("payments: checkout returned status %d", resp.StatusCode)
	}

	var payload struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("payments: decode checkout response: %w", err)
	}
	if payload.URL == "" {
		return nil, fmt.Errorf("payments: checkout response missing url")
	}

	s.logger.Info("checkout session created",
		"booking_id", params.BookingID,
		"provider_id", payload.ID,
	)
	return &CheckoutSession{URL: payload.URL, ProviderID: payload.ID}, nil
}
