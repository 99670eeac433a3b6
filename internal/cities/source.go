// Package cities provides the suggestion data source for the search form.
// The source is injectable so the static list can be replaced with a
// server-provided one without touching the form logic.
package cities

import (
	"context"
	"strings"
)

// Source supplies candidate city names for autocomplete.
type Source interface {
	// Suggest returns the cities matching query by case-insensitive
	// substring, in source order. An empty query matches everything.
	Suggest(ctx context.Context, query string) ([]string, error)
}

// DefaultCities is the built-in list of popular Indian cities.
func DefaultCities() []string {
	return []string{
		"New Delhi", "Mumbai", "Bangalore", "Hyderabad", "Chennai",
		"Kolkata", "Pune", "Ahmedabad", "Jaipur", "Lucknow", "Goa",
	}
}

// StaticSource serves suggestions from a fixed in-memory list.
type StaticSource struct {
	cities []string
}

// NewStaticSource creates a source over the given list. A nil list falls
// back to DefaultCities.
func NewStaticSource(cities []string) *StaticSource {
	if cities == nil {
		cities = DefaultCities()
	}
	return &StaticSource{cities: cities}
}

// Suggest implements Source.
func (s *StaticSource) Suggest(_ context.Context, query string) ([]string, error) {
	return Filter(s.cities, query), nil
}

// Filter returns the names containing query, compared case-insensitively,
// preserving input order.
func Filter(names []string, query string) []string {
	q := strings.ToLower(query)
	matched := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), q) {
			matched = append(matched, name)
		}
	}
	return matched
}
