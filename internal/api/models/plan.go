package models

import (
	"github.com/travelsaathi/travelsaathi/internal/planner"
	"github.com/travelsaathi/travelsaathi/internal/view"
)

// PlanTripRequest is the body of POST /v1/trips:plan.
type PlanTripRequest struct {
	Origin             string `json:"origin"`
	Destination        string `json:"destination" validate:"required"`
	UseCurrentLocation bool   `json:"useCurrentLocation"`

	// Location optionally carries a caller-resolved coordinate. When absent
	// and UseCurrentLocation is set, the server resolves the client address.
	Location *planner.LatLng `json:"location,omitempty"`
}

// PlanTripResponse is the body of a successful plan call: the validated plan
// with its citations, plus the prebuilt display model for the default route.
type PlanTripResponse struct {
	Data   planner.TravelData       `json:"data"`
	Chunks []planner.GroundingChunk `json:"chunks"`
	Trip   view.Trip                `json:"trip"`
}

// CitySuggestions is the body of GET /v1/cities/suggest.
type CitySuggestions struct {
	Query string   `json:"query"`
	Items []string `json:"items"`
}
