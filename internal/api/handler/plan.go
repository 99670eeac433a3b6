package handler

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/travelsaathi/travelsaathi/internal/api/middleware"
	"github.com/travelsaathi/travelsaathi/internal/api/models"
	"github.com/travelsaathi/travelsaathi/internal/api/response"
	"github.com/travelsaathi/travelsaathi/internal/geolocate"
	"github.com/travelsaathi/travelsaathi/internal/planner"
	"github.com/travelsaathi/travelsaathi/internal/shell"
	"github.com/travelsaathi/travelsaathi/internal/view"
)

// GenerationFailureDetail is the user-facing message for failed or malformed
// itinerary generation.
const GenerationFailureDetail = "We couldn't map this route. Please check if the locations are in India and try again."

// PlanHandler handles the trip planning endpoint.
type PlanHandler struct {
	planner shell.Planner
	locator geolocate.Locator
	log     zerolog.Logger
}

// NewPlanHandler creates a new PlanHandler. The locator may be nil, in which
// case current-location searches fall back to the typed origin.
func NewPlanHandler(p shell.Planner, locator geolocate.Locator, log zerolog.Logger) *PlanHandler {
	return &PlanHandler{
		planner: p,
		locator: locator,
		log:     log,
	}
}

// PlanTrip handles POST /v1/trips:plan.
func (h *PlanHandler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var req models.PlanTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "request body is not valid JSON", nil)
		return
	}

	form := shell.Form{
		Origin:             req.Origin,
		Destination:        req.Destination,
		UseCurrentLocation: req.UseCurrentLocation,
	}
	if fieldErrors := validateForm(form); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	var (
		resp *planner.TravelResponse
		err  error
	)
	if req.UseCurrentLocation && req.Location != nil {
		// Caller already resolved a coordinate; skip the server-side lookup.
		resp, err = h.planner.PlanTrip(r.Context(), shell.CurrentLocationOrigin, req.Destination, req.Location)
	} else {
		resp, err = form.Submit(r.Context(), h.planner, h.locator, clientAddr(r), h.log)
	}
	if err != nil {
		if planner.IsGenerationError(err) {
			h.log.Warn().Err(err).
				Str("request_id", middleware.GetRequestID(r.Context())).
				Msg("itinerary generation failed")
			response.GenerationFailed(w, r, GenerationFailureDetail)
			return
		}
		response.InternalError(w, r, "failed to plan trip")
		return
	}

	response.JSON(w, r, http.StatusOK, models.PlanTripResponse{
		Data:   resp.Data,
		Chunks: resp.Chunks,
		Trip:   view.BuildTrip(resp, ""),
	})
}

func validateForm(form shell.Form) []models.FieldError {
	err := form.Validate()
	switch {
	case errors.Is(err, shell.ErrDestinationRequired):
		return []models.FieldError{{Field: "destination", Message: "required", Code: "REQUIRED"}}
	case errors.Is(err, shell.ErrOriginRequired):
		return []models.FieldError{{Field: "origin", Message: "required unless useCurrentLocation is set", Code: "REQUIRED"}}
	}
	return nil
}

// clientAddr returns the request's client IP without the port. RealIP
// middleware has already folded X-Forwarded-For into RemoteAddr.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
