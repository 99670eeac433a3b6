package models

import "github.com/travelsaathi/travelsaathi/internal/planner"

// Enums represents the enum values used by the API.
type Enums struct {
	Modes []ModeInfo `json:"modes"`
}

// ModeInfo describes one transport mode and its presentation hints.
type ModeInfo struct {
	Mode  planner.TransportMode `json:"mode"`
	Icon  string                `json:"icon"`
	Style string                `json:"style"`
}
