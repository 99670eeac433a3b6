package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelsaathi/travelsaathi/internal/resilience"
)

// ServiceConfig holds configuration for the planning service.
type ServiceConfig struct {
	// Provider is the itinerary generation provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Observer records provider call outcomes (optional).
	Observer resilience.Observer
}

// Service turns an origin/destination pair into a validated travel plan with
// a single provider call. Calls are independent: no retries, no caching, no
// concurrency control — overlapping calls are the caller's concern.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	observer resilience.Observer
}

// NewService creates a new planning service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}
}

// PlanTrip requests a multimodal itinerary from origin to destination.
// A non-nil location marks the origin as the traveller's current position.
// Failures are collapsed into ErrGenerationFailed (provider or parse failure)
// or ErrMalformedItinerary (mandatory fields missing); callers treat both the
// same way and no partial plan is ever returned.
func (s *Service) PlanTrip(ctx context.Context, origin, destination string, location *LatLng) (*TravelResponse, error) {
	if destination == "" {
		return nil, ErrMissingDestination
	}

	prompt := BuildPrompt(origin, destination, location)

	s.logger.Debug().
		Str("origin", origin).
		Str("destination", destination).
		Bool("has_location", location != nil).
		Str("provider", s.provider.Name()).
		Msg("requesting itinerary")

	start := time.Now()
	generated, err := s.provider.GenerateItinerary(ctx, prompt)
	if s.observer != nil {
		s.observer.Record(ctx, s.provider.Name(), time.Since(start), err)
	}
	if err != nil {
		s.logger.Error().Err(err).
			Str("origin", origin).
			Str("destination", destination).
			Str("provider", s.provider.Name()).
			Msg("itinerary generation failed")
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	data, err := ParseItinerary(generated.Text)
	if err != nil {
		s.logger.Error().Err(err).
			Str("origin", origin).
			Str("destination", destination).
			Msg("itinerary response did not parse")
		return nil, err
	}

	if err := ValidateTravelData(data); err != nil {
		s.logger.Error().Err(err).
			Str("origin", origin).
			Str("destination", destination).
			Msg("itinerary response failed shape validation")
		return nil, err
	}

	chunks := generated.Chunks
	if chunks == nil {
		chunks = []GroundingChunk{}
	}

	s.logger.Info().
		Str("origin", data.Origin).
		Str("destination", data.Destination).
		Int("route_count", len(data.Routes)).
		Int("chunk_count", len(chunks)).
		Msg("itinerary generated")

	return &TravelResponse{Data: *data, Chunks: chunks}, nil
}

// IsGenerationError reports whether err is any itinerary generation or shape
// failure, i.e. one that should surface as the generic route-not-found
// message.
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGenerationFailed) || errors.Is(err, ErrMalformedItinerary)
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
