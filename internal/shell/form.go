// Package shell owns the request lifecycle of the travel app: the search
// form, the per-session state machine, and the session registry.
package shell

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/travelsaathi/travelsaathi/internal/geolocate"
	"github.com/travelsaathi/travelsaathi/internal/planner"
)

// CurrentLocationOrigin is the origin label used when a search starts from
// the caller's resolved position.
const CurrentLocationOrigin = "My Current Location"

// Validation errors for form submission.
var (
	ErrDestinationRequired = errors.New("destination is required")
	ErrOriginRequired      = errors.New("origin is required unless using current location")
)

// Planner is the planning dependency of the form.
type Planner interface {
	PlanTrip(ctx context.Context, origin, destination string, location *planner.LatLng) (*planner.TravelResponse, error)
}

// Form holds the search input state.
type Form struct {
	Origin             string
	Destination        string
	UseCurrentLocation bool
}

// Swap exchanges origin and destination. The current-location flag is
// untouched, so swapping twice restores the form exactly.
func (f *Form) Swap() {
	f.Origin, f.Destination = f.Destination, f.Origin
}

// Validate checks required fields: destination always, origin only when the
// current-location flag is unset.
func (f Form) Validate() error {
	if f.Destination == "" {
		return ErrDestinationRequired
	}
	if !f.UseCurrentLocation && f.Origin == "" {
		return ErrOriginRequired
	}
	return nil
}

// Submit resolves the form into a single PlanTrip invocation.
//
// With the current-location flag set, the locator is consulted first; on
// success the plan starts from CurrentLocationOrigin with the coordinate as
// context. Locator failure is not an error: the search silently degrades to
// the raw origin text (possibly empty) with no coordinate, and still
// proceeds. Without the flag, the typed origin is used directly.
func (f Form) Submit(ctx context.Context, p Planner, locator geolocate.Locator, clientAddr string, log zerolog.Logger) (*planner.TravelResponse, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if f.UseCurrentLocation && locator != nil {
		pos, err := locator.Locate(ctx, clientAddr)
		if err == nil {
			return p.PlanTrip(ctx, CurrentLocationOrigin, f.Destination, &planner.LatLng{
				Latitude:  pos.Latitude,
				Longitude: pos.Longitude,
			})
		}

		log.Debug().Err(err).
			Str("locator", locator.Name()).
			Msg("geolocation failed, falling back to text search")
	}

	return p.PlanTrip(ctx, f.Origin, f.Destination, nil)
}
