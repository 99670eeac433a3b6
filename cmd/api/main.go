// Package main provides the entrypoint for the TravelSaathi API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelsaathi/travelsaathi/internal/api"
	"github.com/travelsaathi/travelsaathi/internal/api/middleware"
	"github.com/travelsaathi/travelsaathi/internal/cities"
	"github.com/travelsaathi/travelsaathi/internal/database"
	"github.com/travelsaathi/travelsaathi/internal/geolocate"
	"github.com/travelsaathi/travelsaathi/internal/planner"
	"github.com/travelsaathi/travelsaathi/internal/planner/gemini"
	"github.com/travelsaathi/travelsaathi/internal/resilience"
	"github.com/travelsaathi/travelsaathi/internal/shell"
	"github.com/travelsaathi/travelsaathi/internal/telemetry"
	"github.com/travelsaathi/travelsaathi/internal/web"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = web.Version
	BuildTime = "unknown"
)

// sessionSweepInterval is how often idle front end sessions are collected;
// sessions untouched for sessionMaxAge are dropped.
const (
	sessionSweepInterval = 10 * time.Minute
	sessionMaxAge        = 2 * time.Hour
)

func main() {
	const serviceName = "travelsaathi-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting TravelSaathi API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	providerMetrics, err := telemetry.NewProviderMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}

	// Provider call outcomes feed both the metrics and the health registry
	// behind /v1/ops/status.
	registry := resilience.NewRegistry()
	observer := resilience.MultiObserver{providerMetrics, registry}

	// Initialize the Gemini provider and planning service
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal().Msg("GEMINI_API_KEY is required")
	}

	geminiClient, err := gemini.NewClient(ctx, gemini.ClientConfig{
		APIKey: apiKey,
		Model:  os.Getenv("GEMINI_MODEL"),
		Logger: log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gemini client")
	}

	planService := planner.NewService(planner.ServiceConfig{
		Provider: geminiClient,
		Logger:   log,
		Observer: observer,
	})
	registry.Register(gemini.ProviderName, nil)
	log.Info().Str("provider", planService.ProviderName()).Msg("planning service initialized")

	// Initialize IP geolocation (optional)
	var locator geolocate.Locator
	if os.Getenv("GEOIP_ENABLED") != "false" {
		geoHTTP := resilience.NewClient(resilience.ClientConfig{Name: geolocate.ProviderName})
		registry.Register(geolocate.ProviderName, geoHTTP)
		locator = geolocate.NewClient(geolocate.ClientConfig{
			BaseURL:    os.Getenv("GEOIP_BASE_URL"),
			HTTPClient: geoHTTP,
			Logger:     log,
			Observer:   observer,
		})
		log.Info().Msg("IP geolocation initialized")
	} else {
		log.Info().Msg("IP geolocation disabled, current-location searches fall back to text")
	}

	// Initialize the city suggestion source; readiness follows the database
	// when one is configured.
	var citySource cities.Source = cities.NewStaticSource(nil)
	ready := func(context.Context) error { return nil }

	if os.Getenv("CITIES_SOURCE") == "postgres" {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		citySource = cities.NewPostgresSource(pool)
		ready = pool.Ping
	}

	// Initialize front end sessions and handler
	sessions := shell.NewManager()
	go func() {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			if removed := sessions.Sweep(sessionMaxAge); removed > 0 {
				log.Debug().Int("removed", removed).Msg("swept idle sessions")
			}
		}
	}()

	webHandler, err := web.NewHandler(web.Config{
		Sessions: sessions,
		Planner:  planService,
		Locator:  locator,
		Cities:   citySource,
		Logger:   log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize web handler")
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Planner:     planService,
		Locator:     locator,
		Cities:      citySource,
		Ready:       ready,

		ProviderHealth: registry.AllHealth,

		Web: webHandler.Routes(),
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can run long
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
