// Package api provides the HTTP API for TravelSaathi.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/travelsaathi/travelsaathi/internal/api/handler"
	"github.com/travelsaathi/travelsaathi/internal/api/middleware"
	"github.com/travelsaathi/travelsaathi/internal/cities"
	"github.com/travelsaathi/travelsaathi/internal/geolocate"
	"github.com/travelsaathi/travelsaathi/internal/resilience"
	"github.com/travelsaathi/travelsaathi/internal/shell"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Planner     shell.Planner
	Locator     geolocate.Locator
	Cities      cities.Source
	Ready       func(ctx context.Context) error

	// ProviderHealth supplies the provider breakdown for the status
	// endpoint. Optional.
	ProviderHealth func() []resilience.ProviderHealth

	// Web is the server-rendered front end, mounted at the root. Optional.
	Web http.Handler
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "travelsaathi-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Ready, cfg.ProviderHealth)
	planHandler := handler.NewPlanHandler(cfg.Planner, cfg.Locator, cfg.Logger)
	citiesHandler := handler.NewCitiesHandler(cfg.Cities, cfg.Logger)
	metadataHandler := handler.NewMetadataHandler()

	// Create rate limit middleware for different endpoint categories
	planRateLimit := middleware.RateLimitByIP(middleware.PlanRateLimit)         // 10 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.SecurityHeaders) // Security headers (HSTS, CSP, etc.)
		r.Use(middleware.ContentTypeJSON) // JSON content type

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.StatusCheck)
		})

		// Metadata endpoints (public) - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/enums", metadataHandler.GetEnums)
		})

		// City suggestions - standard rate limiting
		r.With(standardRateLimit).Get("/cities/suggest", citiesHandler.Suggest)

		// Planning endpoint - one model call per request, strict rate limiting
		r.With(planRateLimit).Post("/trips:plan", planHandler.PlanTrip)
	})

	// Server-rendered front end
	if cfg.Web != nil {
		r.Mount("/", cfg.Web)
	}

	return r
}
