// Package planner builds itinerary requests for the Gemini planning model and
// validates the structured travel plans it returns.
package planner

import (
	"context"
	"errors"
)

// Sentinel errors for planning operations.
var (
	// ErrGenerationFailed indicates the AI call failed outright or returned
	// text that does not parse as an itinerary.
	ErrGenerationFailed = errors.New("itinerary generation failed")
	// ErrMalformedItinerary indicates the response parsed but is missing
	// mandatory fields. Treated the same as ErrGenerationFailed by callers.
	ErrMalformedItinerary = errors.New("itinerary is missing mandatory fields")
	// ErrMissingDestination indicates no destination was supplied.
	ErrMissingDestination = errors.New("destination is required")
)

// TransportMode is the closed set of transport modes the planner may use.
// The same values are sent to the model as a schema enum constraint.
type TransportMode string

const (
	ModeBus    TransportMode = "Bus"
	ModeCab    TransportMode = "Cab"
	ModeTrain  TransportMode = "Train"
	ModeFlight TransportMode = "Flight"
	ModeMetro  TransportMode = "Metro"
	ModeAuto   TransportMode = "Auto"
	ModeWalk   TransportMode = "Walk"
)

// Modes lists every transport mode in declaration order.
func Modes() []TransportMode {
	return []TransportMode{ModeBus, ModeCab, ModeTrain, ModeFlight, ModeMetro, ModeAuto, ModeWalk}
}

// Valid reports whether m is one of the known transport modes.
func (m TransportMode) Valid() bool {
	switch m {
	case ModeBus, ModeCab, ModeTrain, ModeFlight, ModeMetro, ModeAuto, ModeWalk:
		return true
	}
	return false
}

// LatLng is a geographic coordinate supplied as informational context with a
// current-location search.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// JourneySegment is one single-mode leg of a route. Duration and cost are
// human-readable localized strings ("45 min", "₹150"), never numbers.
type JourneySegment struct {
	Mode            TransportMode `json:"mode" validate:"required"`
	From            string        `json:"from" validate:"required"`
	To              string        `json:"to" validate:"required"`
	Duration        string        `json:"duration,omitempty"`
	Cost            string        `json:"cost,omitempty"`
	Instructions    string        `json:"instructions" validate:"required"`
	TransferDetails string        `json:"transferDetails,omitempty"`
}

// RouteOption is one complete candidate itinerary from origin to destination.
// Segments are ordered from origin to destination.
type RouteOption struct {
	ID              string           `json:"id" validate:"required"`
	Label           string           `json:"label" validate:"required"`
	TotalDuration   string           `json:"totalDuration" validate:"required"`
	TotalCost       string           `json:"totalCost,omitempty"`
	Segments        []JourneySegment `json:"segments" validate:"required,min=1,dive"`
	Summary         string           `json:"summary,omitempty"`
	EfficiencyScore float64          `json:"efficiencyScore"`
	WhyEfficient    string           `json:"whyEfficient" validate:"required"`
}

// TravelData is the full plan returned by the model. Routes are in
// producer rank order; the first is the default selection.
type TravelData struct {
	Origin              string        `json:"origin" validate:"required"`
	Destination         string        `json:"destination" validate:"required"`
	Routes              []RouteOption `json:"routes" validate:"required,min=1,dive"`
	ComprehensiveReport string        `json:"comprehensiveReport" validate:"required"`
	ProTips             []string      `json:"proTips"`
	DestinationWeather  string        `json:"destinationWeatherInfo,omitempty"`
}

// MapsReference is a Google Maps citation attached to a grounding chunk.
type MapsReference struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// WebReference is a web citation attached to a grounding chunk.
type WebReference struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// GroundingChunk is a citation record supporting the generated plan. It is
// preserved end-to-end but not interpreted.
type GroundingChunk struct {
	Maps *MapsReference `json:"maps,omitempty"`
	Web  *WebReference  `json:"web,omitempty"`
}

// TravelResponse is the envelope returned to callers: the validated plan plus
// whatever citations the model supplied (possibly none).
type TravelResponse struct {
	Data   TravelData       `json:"data"`
	Chunks []GroundingChunk `json:"chunks"`
}

// GeneratedItinerary is the raw output of one model invocation before parsing.
type GeneratedItinerary struct {
	Text   string
	Chunks []GroundingChunk
}

// Provider generates itineraries. Implementations make exactly one model call
// per invocation; the service performs no retries.
type Provider interface {
	// GenerateItinerary submits the prompt with the structured-output schema
	// and returns the raw response text plus citation metadata.
	GenerateItinerary(ctx context.Context, prompt string) (*GeneratedItinerary, error)
	// Name returns the provider identifier for logging.
	Name() string
}
