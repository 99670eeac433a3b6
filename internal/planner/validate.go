package planner

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateTravelData checks that a parsed payload carries every mandatory
// field before it is allowed to become domain data. The requested response
// schema nominally guarantees these fields, but the text is externally
// generated, so the check fails closed rather than letting a partially
// populated plan reach rendering.
func ValidateTravelData(data *TravelData) error {
	if data == nil {
		return fmt.Errorf("%w: no payload", ErrMalformedItinerary)
	}

	if err := validate.Struct(data); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedItinerary, err)
	}

	// proTips is schema-required but may be empty; only absence is a violation.
	if data.ProTips == nil {
		return fmt.Errorf("%w: proTips missing", ErrMalformedItinerary)
	}

	for _, route := range data.Routes {
		for _, seg := range route.Segments {
			if !seg.Mode.Valid() {
				return fmt.Errorf("%w: route %s has unknown mode %q", ErrMalformedItinerary, route.ID, seg.Mode)
			}
		}
	}

	return nil
}
