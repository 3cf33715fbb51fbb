package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fxcross/internal/adapters/cache"
	"fxcross/internal/adapters/httpclient"
	"fxcross/internal/adapters/postgres"
	"fxcross/internal/api"
	"fxcross/internal/config"
	"fxcross/internal/platform/db"
	httpserver "fxcross/internal/platform/http"
	"fxcross/internal/rate"
	"fxcross/internal/rate/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	if appCfg.Provider.APIKey == "" {
		return fmt.Errorf("fixer api key is required")
	}
	validator := rate.NewValidator()
	pivot, err := validator.NormalizeCode(appCfg.Provider.BaseCurrency)
	if err != nil {
		return fmt.Errorf("invalid provider base currency %q: %w", appCfg.Provider.BaseCurrency, err)
	}

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, appCfg.DbServer.GetConnectionStr()); err != nil {
		logrus.WithError(err).Error("Failed to apply migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	providerClient := httpclient.NewFixerClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.Provider.BaseURL, "/"),
		appCfg.Provider.APIKey,
	)

	// Repositories
	currencyRepo, err := cache.NewTrackedCurrencyCache(postgres.NewCurrencyRepository(pool), appCfg.Cache.MaxItems)
	if err != nil {
		return err
	}
	defer currencyRepo.Close()
	historyRepo := postgres.NewRateHistoryRepository(pool)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := rate.NewMetrics(registry)

	// Services
	rateCache := rate.NewRateCache()
	refresher := rate.NewRefresher(providerClient, currencyRepo, historyRepo, rateCache, pivot, metrics)
	rateService := rate.NewService(currencyRepo, refresher, rateCache)
	scheduler := rate.NewScheduler(refresher, time.Duration(appCfg.Scheduler.RefreshIntervalSec)*time.Second)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.WithField("pivot", pivot).Info("✅ Scheduler activation successful")

	// Handlers and router
	rateHandler := handler.NewRateHandler(validator, rateService)
	router := api.NewRouter(rateHandler, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
