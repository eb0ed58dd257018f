package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-site/pkg/api"
	"portfolio-site/pkg/config"
	"portfolio-site/pkg/logger"
	"portfolio-site/pkg/services"
	"portfolio-site/pkg/site"
	"portfolio-site/pkg/telemetry"
)

func main() {
	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg)
	if err != nil {
		zlog.Fatal("Error initializing telemetry", zap.Error(err))
	}

	profile, err := site.LoadProfile(cfg.SiteProfile)
	if err != nil {
		zlog.Fatal("Error loading site profile", zap.String("path", cfg.SiteProfile), zap.Error(err))
	}
	page, err := site.Render(profile, api.Endpoints(), time.Now())
	if err != nil {
		zlog.Fatal("Error rendering landing page", zap.Error(err))
	}

	// Initialize services
	intakeService := services.NewIntakeService(zlog)

	switch cfg.Environment {
	case config.EnvProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.EnvTest:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	handlers := api.NewHandlers(intakeService, page, zlog)
	router := api.NewRouter(cfg, handlers, zlog)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		zlog.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment),
			zap.String("page_etag", page.ETag()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Error starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()
	zlog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Error during server shutdown", zap.Error(err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		zlog.Error("Error flushing telemetry", zap.Error(err))
	}
	zlog.Info("Server stopped")
}
