package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelsaathi/travelsaathi/internal/api"
	"github.com/travelsaathi/travelsaathi/internal/api/models"
	"github.com/travelsaathi/travelsaathi/internal/cities"
	"github.com/travelsaathi/travelsaathi/internal/geolocate"
	"github.com/travelsaathi/travelsaathi/internal/planner"
	"github.com/travelsaathi/travelsaathi/internal/resilience"
)

// stubPlanner scripts the planning dependency of the router.
type stubPlanner struct {
	resp      *planner.TravelResponse
	err       error
	origins   []string
	locations []*planner.LatLng
}

func (s *stubPlanner) PlanTrip(_ context.Context, origin, _ string, location *planner.LatLng) (*planner.TravelResponse, error) {
	s.origins = append(s.origins, origin)
	s.locations = append(s.locations, location)
	return s.resp, s.err
}

type stubLocator struct {
	pos *geolocate.Position
	err error
}

func (s *stubLocator) Locate(context.Context, string) (*geolocate.Position, error) {
	return s.pos, s.err
}

func (s *stubLocator) Name() string { return "stub" }

func plannedResponse() *planner.TravelResponse {
	return &planner.TravelResponse{
		Data: planner.TravelData{
			Origin:              "New Delhi",
			Destination:         "Jaipur",
			ComprehensiveReport: "Straightforward corridor.",
			ProTips:             []string{"Book early"},
			Routes: []planner.RouteOption{
				{
					ID:              "r1",
					Label:           "Fastest",
					TotalDuration:   "5h",
					EfficiencyScore: 9,
					WhyEfficient:    "Direct train.",
					Segments: []planner.JourneySegment{
						{Mode: planner.ModeTrain, From: "New Delhi", To: "Jaipur", Instructions: "Board the Shatabdi."},
					},
				},
			},
		},
		Chunks: []planner.GroundingChunk{},
	}
}

func newTestRouter(p *stubPlanner, loc *stubLocator) http.Handler {
	logger := zerolog.New(io.Discard)
	cfg := api.RouterConfig{
		Version:   "test",
		BuildTime: "2026-01-01T00:00:00Z",
		Logger:    logger,
		Planner:   p,
		Cities:    cities.NewStaticSource(nil),
	}
	if loc != nil {
		cfg.Locator = loc
	}
	return api.NewRouter(cfg)
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "test", health.Details["version"])
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_ReadinessCheck_NotReady(t *testing.T) {
	logger := zerolog.New(io.Discard)
	router := api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Planner: &stubPlanner{},
		Cities:  cities.NewStaticSource(nil),
		Ready: func(context.Context) error {
			return errors.New("database unreachable")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_StatusCheck(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("gemini", nil)
	registry.Record(context.Background(), "gemini", time.Second, nil)

	logger := zerolog.New(io.Discard)
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Planner:        &stubPlanner{},
		Cities:         cities.NewStaticSource(nil),
		ProviderHealth: registry.AllHealth,
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	err := json.Unmarshal(w.Body.Bytes(), &status)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, status.Status)
	require.Len(t, status.Subsystems, 1)
	assert.Equal(t, "suggestions", status.Subsystems[0].Name)
	require.Len(t, status.Providers, 1)
	assert.Equal(t, "gemini", status.Providers[0].Provider)
	assert.Equal(t, models.HealthStatusOK, status.Providers[0].Status)
	assert.NotNil(t, status.Providers[0].LastSuccessAt)
}

func TestRouter_StatusCheck_DegradedProvider(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("gemini", nil)
	registry.Record(context.Background(), "gemini", time.Second, nil)
	registry.Record(context.Background(), "gemini", time.Second, errors.New("quota exhausted"))

	logger := zerolog.New(io.Discard)
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Planner:        &stubPlanner{},
		Cities:         cities.NewStaticSource(nil),
		ProviderHealth: registry.AllHealth,
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	err := json.Unmarshal(w.Body.Bytes(), &status)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusDegraded, status.Status)
	require.Len(t, status.Providers, 1)
	assert.Equal(t, models.HealthStatusDegraded, status.Providers[0].Status)
	require.NotNil(t, status.Providers[0].Message)
	assert.Equal(t, "quota exhausted", *status.Providers[0].Message)
}

func TestRouter_PlanTrip_Success(t *testing.T) {
	p := &stubPlanner{resp: plannedResponse()}
	router := newTestRouter(p, nil)

	body, _ := json.Marshal(models.PlanTripRequest{
		Origin:      "New Delhi",
		Destination: "Jaipur",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.PlanTripResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "New Delhi", resp.Data.Origin)
	require.Len(t, resp.Data.Routes, 1)
	assert.NotNil(t, resp.Chunks)
	assert.Equal(t, "Destination Reached: Jaipur", resp.Trip.Terminal)
	require.Len(t, resp.Trip.Tabs, 1)
	assert.True(t, resp.Trip.Tabs[0].Active)
}

func TestRouter_PlanTrip_CurrentLocationWithCoordinate(t *testing.T) {
	p := &stubPlanner{resp: plannedResponse()}
	router := newTestRouter(p, nil)

	body, _ := json.Marshal(models.PlanTripRequest{
		Destination:        "Jaipur",
		UseCurrentLocation: true,
		Location:           &planner.LatLng{Latitude: 28.6139, Longitude: 77.2090},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, p.origins, 1)
	assert.Equal(t, "My Current Location", p.origins[0])
	require.NotNil(t, p.locations[0])
	assert.InDelta(t, 28.6139, p.locations[0].Latitude, 1e-9)
}

func TestRouter_PlanTrip_CurrentLocationServerResolved(t *testing.T) {
	p := &stubPlanner{resp: plannedResponse()}
	loc := &stubLocator{pos: &geolocate.Position{Latitude: 19.076, Longitude: 72.8777}}
	router := newTestRouter(p, loc)

	body, _ := json.Marshal(models.PlanTripRequest{
		Destination:        "Goa",
		UseCurrentLocation: true,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, p.origins, 1)
	assert.Equal(t, "My Current Location", p.origins[0])
	require.NotNil(t, p.locations[0])
	assert.InDelta(t, 19.076, p.locations[0].Latitude, 1e-9)
}

func TestRouter_PlanTrip_ValidationError(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, nil)

	body, _ := json.Marshal(models.PlanTripRequest{Origin: "Pune"})
	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)

	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "destination", problem.Errors[0].Field)
	assert.NotEmpty(t, problem.TraceID)
}

func TestRouter_PlanTrip_InvalidJSON(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Generation and shape failures surface identically: a 502 with the standard
// user-facing message, never a partial itinerary.
func TestRouter_PlanTrip_GenerationFailure(t *testing.T) {
	for name, planErr := range map[string]error{
		"provider failure":    planner.ErrGenerationFailed,
		"malformed itinerary": planner.ErrMalformedItinerary,
	} {
		t.Run(name, func(t *testing.T) {
			p := &stubPlanner{err: planErr}
			router := newTestRouter(p, nil)

			body, _ := json.Marshal(models.PlanTripRequest{
				Origin:      "New Delhi",
				Destination: "Atlantis",
			})
			req := httptest.NewRequest(http.MethodPost, "/v1/trips:plan", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadGateway, w.Code)

			var problem models.Problem
			err := json.Unmarshal(w.Body.Bytes(), &problem)
			require.NoError(t, err)

			assert.Equal(t, models.ProblemTypeGeneration, problem.Type)
			assert.Contains(t, problem.Detail, "couldn't map this route")
		})
	}
}

func TestRouter_CitySuggest(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/cities/suggest?q=mum", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.CitySuggestions
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "mum", resp.Query)
	assert.Equal(t, []string{"Mumbai"}, resp.Items)
}

func TestRouter_CitySuggest_NoMatch(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/cities/suggest?q=Paris", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.CitySuggestions
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}

func TestRouter_GetEnums(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/metadata/enums", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var enums models.Enums
	err := json.Unmarshal(w.Body.Bytes(), &enums)
	require.NoError(t, err)

	require.Len(t, enums.Modes, 7)
	assert.Equal(t, planner.ModeBus, enums.Modes[0].Mode)
	assert.Equal(t, "fa-bus", enums.Modes[0].Icon)
}

func TestRouter_RequestID_Generated(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	requestID := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID)
	assert.Contains(t, requestID, "req_")
}

func TestRouter_RequestID_Preserved(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	req.Header.Set("X-Request-Id", "custom_request_id")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "custom_request_id", w.Header().Get("X-Request-Id"))
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(&stubPlanner{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/nonexistent", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
