package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"devevent/config"
	_ "devevent/docs"
	"devevent/internal/adapters/email"
	"devevent/internal/database"
	httpdelivery "devevent/internal/delivery/http"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/repository/postgres"
	"devevent/internal/services"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
	serviceTimeout    = 10 * time.Second
)

// @title DevEvent API
// @version 1.0
// @description Event listings and seat bookings for developer events.
// @BasePath /
func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		// Logger isn't configured yet.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := config.NewLogger()

	// The database connects lazily: the manager dials and migrates on the
	// first repository call, not at startup.
	manager := database.NewManager(cfg.DBUrl, logger)
	defer manager.Close()

	eventRepo := postgres.NewEventRepository(manager)
	bookingRepo := postgres.NewBookingRepository(manager)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())

	eventSvc := services.NewEventService(eventRepo, serviceTimeout)
	bookingSvc := services.NewBookingService(bookingRepo, eventRepo, emailSvc, serviceTimeout)

	eventController := controllers.NewEventController(logger, eventSvc)
	bookingController := controllers.NewBookingController(logger, bookingSvc, eventSvc)
	healthController := controllers.NewHealthController(manager)

	mux := httpdelivery.NewRouter(eventController, bookingController, healthController)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.CORS(strings.Split(cfg.CORSAllowedOrigins, ","), handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}

	logger.Info("server stopped")
}
