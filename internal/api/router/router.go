// Package router assembles the HTTP surface: public intake endpoints,
// authenticated portal endpoints, and operational plumbing.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sealbook/notary-platform/internal/http/handlers"
	httpmiddleware "github.com/sealbook/notary-platform/internal/http/middleware"
	"github.com/sealbook/notary-platform/internal/tenancy"
	"github.com/sealbook/notary-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger *logging.Logger

	Intake    *handlers.IntakeHandler
	Slots     *handlers.SlotsHandler
	Documents *handlers.DocumentsHandler
	Dashboard *handlers.DashboardHandler

	MetricsHandler http.Handler

	// SessionJWTSecret enables session authentication. The intake flow
	// accepts anonymous sessions; the portal requires a notary token.
	SessionJWTSecret string

	CORSAllowedOrigins []string

	// IntakeRateLimit caps intake requests per second per IP; zero
	// disables limiting.
	IntakeRateLimit float64
	IntakeBurst     int
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	r.Use(tenancy.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Client intake flow. Tokens are optional here: anonymous visitors
	// book too, and the flow collects credentials from them at step 4.
	r.Route("/intake", func(in chi.Router) {
		if cfg.IntakeRateLimit > 0 {
			in.Use(httpmiddleware.RateLimit(cfg.IntakeRateLimit, cfg.IntakeBurst))
		}
		in.Use(httpmiddleware.SessionAuth(cfg.SessionJWTSecret, false))

		if cfg.Slots != nil {
			in.Get("/slots", cfg.Slots.GetSlots)
		}
		if cfg.Documents != nil {
			in.Post("/documents", cfg.Documents.CreateUpload)
		}
		if cfg.Intake != nil {
			in.Get("/", cfg.Intake.GetState)
			in.Delete("/", cfg.Intake.Abandon)
			in.Patch("/form", cfg.Intake.UpdateForm)
			in.Post("/advance", cfg.Intake.Advance)
			in.Post("/retreat", cfg.Intake.Retreat)
			in.Post("/jump", cfg.Intake.Jump)
			in.Get("/resolve", cfg.Intake.Resolve)
		}
	})

	// Notary portal.
	if cfg.Dashboard != nil {
		r.Route("/portal", func(p chi.Router) {
			p.Use(httpmiddleware.SessionAuth(cfg.SessionJWTSecret, true))
			p.Use(httpmiddleware.RequireRole("notary"))
			p.Get("/appointments", cfg.Dashboard.ListAppointments)
		})
	}

	return r
}
