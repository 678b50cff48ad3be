package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/sealbook/notary-platform/cmd/mainconfig"
	"github.com/sealbook/notary-platform/internal/api/router"
	"github.com/sealbook/notary-platform/internal/appointments"
	"github.com/sealbook/notary-platform/internal/bookings"
	appconfig "github.com/sealbook/notary-platform/internal/config"
	"github.com/sealbook/notary-platform/internal/documents"
	"github.com/sealbook/notary-platform/internal/http/handlers"
	"github.com/sealbook/notary-platform/internal/intake"
	"github.com/sealbook/notary-platform/internal/notify"
	"github.com/sealbook/notary-platform/internal/observability/metrics"
	"github.com/sealbook/notary-platform/internal/payments"
	"github.com/sealbook/notary-platform/internal/tz"
	"github.com/sealbook/notary-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting notary-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()
	intakeMetrics := metrics.NewIntakeMetrics(nil)

	// Intake progress store: Redis in deployment, memory for local runs.
	var store intake.Store
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		store = intake.NewRedisStore(redis.NewClient(opts))
	} else {
		logger.Warn("REDIS_ADDR not set, intake progress will not survive restarts")
		store = intake.NewMemoryStore()
	}

	// Database: pgx pool for writes, database/sql for the dashboard reads.
	var (
		repo      *bookings.Repository
		dashboard *appointments.Store
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = bookings.NewRepository(pool)

		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		dashboard = appointments.NewStore(db)
	} else {
		logger.Warn("DATABASE_URL not set, submissions and dashboards are disabled")
	}

	// Object storage and email run through one shared AWS config.
	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	var docStore *documents.Store
	if cfg.DocumentsBucket != "" {
		presign := s3.NewPresignClient(s3.NewFromConfig(awsCfg))
		docStore = documents.NewStore(presign, cfg.DocumentsBucket, logger)
	}

	var emailSender notify.EmailSender
	switch {
	case cfg.SendGridAPIKey != "" && cfg.EmailProvider != "ses":
		if sg := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sg != nil {
			emailSender = sg
		}
	case cfg.SESFromEmail != "":
		if ses := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
		}, logger); ses != nil {
			emailSender = ses
		}
	case cfg.Env == "development":
		emailSender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(emailSender, logger)

	var checkout payments.CheckoutProvider
	switch {
	case cfg.CheckoutSecretKey != "":
		checkout = payments.NewHostedCheckoutService(
			cfg.CheckoutSecretKey, cfg.CheckoutBaseURL, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL, logger)
	case cfg.AllowFakePayments:
		checkout = payments.NewFakeCheckoutService(cfg.PublicBaseURL, logger)
	}

	var submitter intake.Submitter
	if repo != nil && checkout != nil {
		submitter = bookings.NewService(repo, checkout, notifier, intakeMetrics, int64(cfg.DepositAmountCents), logger)
	} else {
		logger.Warn("submission pipeline incomplete, final intake step will fail",
			"has_database", repo != nil,
			"has_checkout", checkout != nil,
		)
	}

	var geo tz.GeoResolver
	if cfg.GeoIPBaseURL != "" {
		geo = tz.NewHTTPGeoResolver(cfg.GeoIPBaseURL)
	}
	detector := tz.NewDetector(geo, logger)

	controller := intake.NewController(store, submitter, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		Intake:             handlers.NewIntakeHandler(controller, intakeMetrics, logger),
		Slots:              handlers.NewSlotsHandler(detector, intakeMetrics, logger),
		Documents:          handlers.NewDocumentsHandler(docStore, logger),
		Dashboard:          handlers.NewDashboardHandler(dashboard, detector, logger),
		MetricsHandler:     promhttp.Handler(),
		SessionJWTSecret:   cfg.SessionJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		IntakeRateLimit:    cfg.IntakeRateLimit,
		IntakeBurst:        cfg.IntakeBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
