package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"multibank/internal/config"
	"multibank/internal/database"
	"multibank/internal/handlers"
	"multibank/internal/ledger"
	"multibank/internal/middleware"
	"multibank/internal/providers"
	"multibank/internal/repositories"
	"multibank/internal/services"
)

// autopayInterval is how often due auto-transfer rules are checked
const autopayInterval = time.Minute

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Error("failed to open local store", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.Error("failed to migrate local store", "error", err.Error())
		os.Exit(1)
	}

	// Core domain wiring
	ldg := ledger.New(logger)
	gateway := providers.NewGateway(
		cfg.Providers.BaseURLs,
		cfg.Providers.ClientID,
		cfg.Providers.Secret,
		cfg.Providers.Timeout,
		logger,
	)

	transferRepo := repositories.NewTransferRepository(db.DB)
	settingsRepo := repositories.NewSettingsRepository(db.DB)

	metrics := services.NewPrometheusMetrics()
	aggregationService := services.NewAggregationService(gateway, ldg, metrics, logger)
	transferService := services.NewTransferService(ldg, transferRepo, metrics, logger)
	autopayService := services.NewAutopayService(settingsRepo, transferService, metrics, logger)
	sessionService := services.NewSessionService(&cfg.Auth)

	// Initial aggregation pass so the dashboard has data before the first
	// user-triggered refresh. Failures are already reported per provider.
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := aggregationService.Refresh(startupCtx); err != nil {
		logger.Warn("initial aggregation pass failed", "error", err.Error())
	}
	cancel()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomiddleware.Logger())

	authHandler := handlers.NewAuthHandler(sessionService)
	dashboardHandler := handlers.NewDashboardHandler(aggregationService, ldg)
	transferHandler := handlers.NewTransferHandler(transferService, ldg)
	autopayHandler := handlers.NewAutopayHandler(autopayService)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/auth/session", authHandler.CreateSession)

	api := e.Group("/api", middleware.RequireSession(sessionService))
	api.GET("/accounts", dashboardHandler.ListAccounts)
	api.GET("/accounts/total", dashboardHandler.TotalBudget)
	api.GET("/available_balance/:provider", dashboardHandler.AvailableBalance)
	api.POST("/refresh", dashboardHandler.Refresh)
	api.POST("/transfers", transferHandler.CreateTransfer)
	api.GET("/transfers/recent", transferHandler.ListRecentTransfers)
	api.GET("/autopay", autopayHandler.ListRules)
	api.POST("/autopay", autopayHandler.SaveRule)
	api.DELETE("/autopay/:id", autopayHandler.DeleteRule)

	// Scheduled auto-transfers run until shutdown
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	go runAutopayScheduler(schedulerCtx, autopayService, logger)

	go func() {
		logger.Info("starting server", "address", cfg.Server.Address(), "environment", cfg.Server.Environment)
		if err := e.Start(cfg.Server.Address()); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	stopScheduler()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err.Error())
	}
}

// runAutopayScheduler periodically executes due auto-transfer rules
func runAutopayScheduler(ctx context.Context, autopay services.AutopayServiceInterface, logger *slog.Logger) {
	ticker := time.NewTicker(autopayInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			executed, err := autopay.RunDue(now)
			if err != nil {
				logger.Error("autopay run failed", "error", err.Error())
				continue
			}
			if executed > 0 {
				logger.Info("autopay rules executed", "count", executed)
			}
		}
	}
}
