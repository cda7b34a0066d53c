// Package render defines what a replay hands to whatever draws it: the
// colored route once, a labelled view per fix, and marker positions per frame.
package render

import (
	"github.com/NERVsystems/tripreplay/pkg/geo"
	"github.com/NERVsystems/tripreplay/pkg/trip"
)

// PositionView is everything a map screen shows for the current fix.
type PositionView struct {
	Index      int            `json:"index"`
	Total      int            `json:"total"`
	Fraction   float64        `json:"fraction"`
	Event      trip.EventType `json:"event"`
	Color      trip.Color     `json:"color"`
	TimeLabel  string         `json:"time_label"`
	SpeedLabel string         `json:"speed_label"`
	Bearing    float64        `json:"bearing"`
	HasBearing bool           `json:"has_bearing"`
	Record     trip.Record    `json:"record"`
}

// Renderer draws a replay. Calls arrive from the scheduling loop, one at a
// time, so implementations must not block for long.
type Renderer interface {
	// Route is called once with every segment of the trip and the initial
	// region to show.
	Route(segments []trip.Segment, region geo.BoundingBox)

	// Position is called each time the playback cursor moves.
	Position(view PositionView)

	// Marker is called for every animation frame.
	Marker(loc geo.Location)
}

// Multi fans every call out to each renderer in order.
type Multi []Renderer

// Route implements Renderer.
func (m Multi) Route(segments []trip.Segment, region geo.BoundingBox) {
	for _, r := range m {
		r.Route(segments, region)
	}
}

// Position implements Renderer.
func (m Multi) Position(view PositionView) {
	for _, r := range m {
		r.Position(view)
	}
}

// Marker implements Renderer.
func (m Multi) Marker(loc geo.Location) {
	for _, r := range m {
		r.Marker(loc)
	}
}
