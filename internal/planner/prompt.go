package planner

import "fmt"

// BuildPrompt composes the natural-language planning instruction for one
// origin/destination pair. When location is non-nil the origin is treated as
// the traveller's current position; the coordinate is appended as context for
// the model and is not otherwise validated.
func BuildPrompt(origin, destination string, location *LatLng) string {
	prompt := fmt.Sprintf(`You are TravelSaathi, a world-class Indian travel expert and logistics architect. Plan a journey from %q to %q.

Your goal is to provide "Completely detailed and efficient guidance".

For each route option:
1. Specify EXACTLY where the user needs to change vehicles (e.g., "Get off at Gate 2 of ISBT Kashmiri Gate and walk to the local bus stand on the left").
2. Compare efficiency: Explain which route saves time vs. which saves money.
3. Availability: Confirm if Cabs (Ola/Uber), Autos, or local RTC buses are reliably available at transfer points.
4. Local Nuances: Mention specific train names (Vande Bharat, Rajdhani, Shatabdi) or specific bus types (Electric AC, Sleeper, Volvo).

Provide a 'comprehensiveReport' that summarizes the best overall strategy for this trip considering the current climate and typical Indian transit delays.`, origin, destination)

	if location != nil {
		prompt += fmt.Sprintf("\n\nThe traveller is currently at latitude %.6f, longitude %.6f; treat the origin as their current location.",
			location.Latitude, location.Longitude)
	}

	return prompt
}
