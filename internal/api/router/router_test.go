package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sealbook/notary-platform/internal/http/handlers"
	"github.com/sealbook/notary-platform/internal/intake"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	controller := intake.NewController(intake.NewMemoryStore(), nil, nil)
	return New(&Config{
		Intake:           handlers.NewIntakeHandler(controller, nil, nil),
		Slots:            handlers.NewSlotsHandler(nil, nil, nil),
		SessionJWTSecret: "secret",
	})
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestIntakeAcceptsAnonymousSessions(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/intake/", nil)
	req.Header.Set(handlers.HeaderSessionID, "sess-1")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSlotsRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/intake/slots?tz=UTC-5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"09:00"`) {
		t.Fatalf("anchor grid missing from body: %s", rec.Body.String())
	}
}

func TestPortalRequiresNotaryToken(t *testing.T) {
	controller := intake.NewController(intake.NewMemoryStore(), nil, nil)
	r := New(&Config{
		Intake:           handlers.NewIntakeHandler(controller, nil, nil),
		Dashboard:        handlers.NewDashboardHandler(nil, nil, nil),
		SessionJWTSecret: "secret",
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portal/appointments", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous portal access: status = %d, want 401", rec.Code)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"email": "c@example.com",
		"role":  "client",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/portal/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("client-role portal access: status = %d, want 403", rec.Code)
	}
}
