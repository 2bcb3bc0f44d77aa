// Package app assembles the HTTP service: configuration, logging,
// observability, the mirroring service and the router, plus graceful
// shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Vikash02022000/FinSight/internal/config"
	apperrors "github.com/Vikash02022000/FinSight/internal/errors"
	"github.com/Vikash02022000/FinSight/internal/infrastructure"
	custommw "github.com/Vikash02022000/FinSight/internal/middleware"
	"github.com/Vikash02022000/FinSight/internal/services"
	handlers "github.com/Vikash02022000/FinSight/internal/transport/http"
	"github.com/Vikash02022000/FinSight/pkg/contracts"
)

// Application is the dependency container for the HTTP service.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	MirrorService *services.MirrorService
}

// NewApplication builds the application with all dependencies wired.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", contracts.AppName),
		slog.String("version", contracts.Version))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	var metrics *services.ProcessingMetrics
	if otelProviders.Meter != nil {
		metrics, err = services.NewProcessingMetrics(otelProviders.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to register processing metrics: %w", err)
		}
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		MirrorService: services.NewMirrorService(logger, metrics, cfg.Processing.PreviewRows),
	}
	app.setupRouter()

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

func (app *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(app.Logger))
	r.Use(custommw.Recoverer(app.Logger))
	r.Use(custommw.SecurityHeaders)
	if app.Config.Security.RateLimit.Enabled {
		rl := custommw.NewRateLimiter(app.Config.Security.RateLimit.RPS, app.Config.Security.RateLimit.Burst, app.Logger)
		r.Use(rl.Handler)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	errorHandler := apperrors.NewErrorHandler(app.Logger, false)
	mirrorHandler := handlers.NewMirrorHandler(app.MirrorService, app.Logger, errorHandler, app.Config.Processing.MaxUploadBytes)
	healthHandler := handlers.NewHealthHandler()

	r.Route("/api", func(r chi.Router) {
		r.Mount("/mirror", mirrorHandler.Routes())
		r.Get("/health", healthHandler.HealthCheck)
	})
	if app.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", app.OTelProviders.PrometheusHTTP)
	}

	app.Router = r
}

// Run starts the server and blocks until shutdown completes.
func (app *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("HTTP server listening", slog.String("addr", app.Server.Addr))
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	app.Logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := app.OTelProviders.Shutdown(shutdownCtx); err != nil {
		app.Logger.Warn("OpenTelemetry shutdown failed", slog.String("error", err.Error()))
	}
	infrastructure.CloseLogFile()
	app.Logger.Info("shutdown complete")
	return nil
}
