package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/mediscribe/platform/cmd/mainconfig"
	"github.com/mediscribe/platform/internal/admin"
	"github.com/mediscribe/platform/internal/analysis"
	"github.com/mediscribe/platform/internal/api/router"
	"github.com/mediscribe/platform/internal/booking"
	"github.com/mediscribe/platform/internal/calendar"
	appconfig "github.com/mediscribe/platform/internal/config"
	"github.com/mediscribe/platform/internal/http/handlers"
	"github.com/mediscribe/platform/internal/notify"
	"github.com/mediscribe/platform/internal/observability/metrics"
	"github.com/mediscribe/platform/internal/report"
	"github.com/mediscribe/platform/internal/secrets"
	"github.com/mediscribe/platform/internal/session"
	"github.com/mediscribe/platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting medi-scribe API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	// Secrets are fetched once at startup; a missing secret degrades its
	// feature, not the process.
	accessor := secrets.NewAccessor(secretsmanager.NewFromConfig(awsCfg), logger)
	vault := accessor.LoadBundle(ctx, cfg.AdminPasswordSecret, cfg.MasterCalendarIDSecret)

	kioskMetrics := metrics.NewKioskMetrics(prometheus.DefaultRegisterer)

	// Document collections and report storage.
	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	bookingsRepo := booking.NewDynamoRepository(dynamoClient, cfg.AppointmentsTable, logger)
	reportsRepo := report.NewDynamoRepository(dynamoClient, cfg.ReportsTable, logger)
	uploader := report.NewUploader(s3.NewFromConfig(awsCfg), cfg.ReportsBucket)
	composer := report.NewComposer(cfg.ReportScratchDir, uploader, logger)

	// Generative model boundary.
	model, err := analysis.NewGeminiModelClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID, cfg.ModelTimeout)
	if err != nil {
		logger.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}

	// Hospital calendar. Credentials come from the ambient Google identity;
	// the calendar ID comes from the vault.
	var inserter calendar.EventInserter
	if calendarSvc, err := gcal.NewService(ctx); err != nil {
		logger.Warn("calendar service unavailable, hospital blocking disabled", "error", err)
	} else {
		inserter = calendar.NewGoogleInserter(calendarSvc)
	}
	integrator := calendar.NewIntegrator(inserter, vault.MasterCalendarID, cfg.ClinicLocation, kioskMetrics, logger)

	// Session store: Redis when configured, in-memory otherwise.
	var sessions session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis not available, using in-memory sessions", "error", err)
		} else {
			sessions = session.NewRedisStore(redisClient, cfg.SessionTTL)
		}
	}

	var email notify.EmailSender = notify.NewStubEmailSender(logger)
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		email = sg
	}

	analyzer := analysis.NewService(model, composer, reportsRepo, kioskMetrics, logger)
	bookings := booking.NewService(integrator, bookingsRepo, composer, reportsRepo, email, kioskMetrics, logger)

	kioskHandler := handlers.NewKioskHandler(sessions, analyzer, bookings, cfg.ReportScratchDir, logger)
	adminHandler := admin.NewHandler(vault.AdminPassword, cfg.AdminJWTSecret, cfg.AdminTokenTTL, reportsRepo, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		KioskHandler:       kioskHandler,
		AdminHandler:       adminHandler,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsHandler:     promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
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
