// Package view builds the display model for a planned trip: the route tab
// strip, the active route's segment timeline, and the sidebar panels. It is
// purely a projection of held data, so switching routes never touches the
// planner.
package view

import (
	"github.com/travelsaathi/travelsaathi/internal/planner"
)

// Placeholder is rendered where an optional duration or cost is absent.
const Placeholder = "—"

// Icon returns the Font Awesome icon class for a transport mode.
func Icon(mode planner.TransportMode) string {
	switch mode {
	case planner.ModeBus:
		return "fa-bus"
	case planner.ModeCab:
		return "fa-car"
	case planner.ModeTrain:
		return "fa-train"
	case planner.ModeFlight:
		return "fa-plane"
	case planner.ModeMetro:
		return "fa-subway"
	case planner.ModeAuto:
		return "fa-taxi"
	case planner.ModeWalk:
		return "fa-walking"
	}
	return "fa-route"
}

// Style returns the color classes for a transport mode's timeline badge.
func Style(mode planner.TransportMode) string {
	switch mode {
	case planner.ModeBus:
		return "bg-blue-100 text-blue-600"
	case planner.ModeCab:
		return "bg-yellow-100 text-yellow-700"
	case planner.ModeTrain:
		return "bg-indigo-100 text-indigo-600"
	case planner.ModeFlight:
		return "bg-sky-100 text-sky-600"
	case planner.ModeMetro:
		return "bg-purple-100 text-purple-600"
	case planner.ModeAuto:
		return "bg-emerald-100 text-emerald-600"
	}
	return "bg-slate-100 text-slate-600"
}

// Segment is one rendered step of the active route.
type Segment struct {
	Mode            planner.TransportMode `json:"mode"`
	Icon            string                `json:"icon"`
	Style           string                `json:"style"`
	From            string                `json:"from"`
	To              string                `json:"to"`
	Instructions    string                `json:"instructions"`
	Duration        string                `json:"duration"`
	Cost            string                `json:"cost"`
	TransferDetails string                `json:"transferDetails,omitempty"`
}

// RouteTab is one entry in the route comparison strip.
type RouteTab struct {
	ID              string  `json:"id"`
	Label           string  `json:"label"`
	TotalDuration   string  `json:"totalDuration"`
	TotalCost       string  `json:"totalCost"`
	EfficiencyScore float64 `json:"efficiencyScore"`
	Active          bool    `json:"active"`
}

// Tip is a numbered pro-traveler tip.
type Tip struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Source is a grounding reference shown under the itinerary.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Trip is the full display model for a successful search.
type Trip struct {
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Report       string    `json:"report"`
	Tabs         []RouteTab `json:"tabs"`
	WhyEfficient string    `json:"whyEfficient"`
	Segments     []Segment `json:"segments"`
	Terminal     string    `json:"terminal"`
	Tips         []Tip     `json:"tips"`
	Weather      string    `json:"weather,omitempty"`
	Sources      []Source  `json:"sources,omitempty"`
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

func activeRoute(routes []planner.RouteOption, activeID string) planner.RouteOption {
	for _, r := range routes {
		if r.ID == activeID {
			return r
		}
	}
	return routes[0]
}

// BuildTrip projects a travel response onto the display model, with the
// route identified by activeID expanded. An unknown or empty activeID falls
// back to the first route.
func BuildTrip(resp *planner.TravelResponse, activeID string) Trip {
	data := resp.Data
	route := activeRoute(data.Routes, activeID)

	tabs := make([]RouteTab, 0, len(data.Routes))
	for _, r := range data.Routes {
		tabs = append(tabs, RouteTab{
			ID:              r.ID,
			Label:           r.Label,
			TotalDuration:   r.TotalDuration,
			TotalCost:       orPlaceholder(r.TotalCost),
			EfficiencyScore: r.EfficiencyScore,
			Active:          r.ID == route.ID,
		})
	}

	segments := make([]Segment, 0, len(route.Segments))
	for _, seg := range route.Segments {
		segments = append(segments, Segment{
			Mode:            seg.Mode,
			Icon:            Icon(seg.Mode),
			Style:           Style(seg.Mode),
			From:            seg.From,
			To:              seg.To,
			Instructions:    seg.Instructions,
			Duration:        orPlaceholder(seg.Duration),
			Cost:            orPlaceholder(seg.Cost),
			TransferDetails: seg.TransferDetails,
		})
	}

	tips := make([]Tip, 0, len(data.ProTips))
	for i, tip := range data.ProTips {
		tips = append(tips, Tip{Number: i + 1, Text: tip})
	}

	sources := make([]Source, 0, len(resp.Chunks))
	for _, chunk := range resp.Chunks {
		switch {
		case chunk.Maps != nil && chunk.Maps.URI != "":
			sources = append(sources, Source{Title: chunk.Maps.Title, URI: chunk.Maps.URI})
		case chunk.Web != nil && chunk.Web.URI != "":
			sources = append(sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}

	return Trip{
		Origin:       data.Origin,
		Destination:  data.Destination,
		Report:       data.ComprehensiveReport,
		Tabs:         tabs,
		WhyEfficient: route.WhyEfficient,
		Segments:     segments,
		Terminal:     "Destination Reached: " + data.Destination,
		Tips:         tips,
		Weather:      data.DestinationWeather,
		Sources:      sources,
	}
}
