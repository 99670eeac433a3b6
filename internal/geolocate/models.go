// Package geolocate resolves a caller's approximate position. Resolution is
// best-effort: failures degrade a current-location search to a text-only one
// and are never surfaced to the user.
package geolocate

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the caller's position could not be resolved.
var ErrUnavailable = errors.New("location unavailable")

// Position is a resolved latitude/longitude pair.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator resolves the position for a client address.
type Locator interface {
	// Locate returns the approximate position of the given client IP.
	// An empty addr asks the provider to locate the requesting host.
	Locate(ctx context.Context, addr string) (*Position, error)
	// Name returns the provider identifier for logging.
	Name() string
}
