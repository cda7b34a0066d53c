// Package trip holds the recorded vehicle positions a replay runs over:
// the record type, the sources that load them, and the colored route
// segments derived from them.
package trip

import (
	"strings"
	"time"

	"github.com/NERVsystems/tripreplay/pkg/geo"
)

// EventType classifies what the vehicle was doing at a fix.
type EventType string

const (
	EventDriving EventType = "driving"
	EventIdling  EventType = "idling"
	EventParking EventType = "parking"
	EventUnknown EventType = "unknown"
)

// ParseEventType maps a raw event string to an EventType, ignoring case and
// surrounding whitespace. Unrecognized values map to EventUnknown.
func ParseEventType(s string) EventType {
	switch EventType(strings.ToLower(strings.TrimSpace(s))) {
	case EventDriving:
		return EventDriving
	case EventIdling:
		return EventIdling
	case EventParking:
		return EventParking
	default:
		return EventUnknown
	}
}

// Color is a hex RGB color used for markers and route segments.
type Color string

// Palette used by renderers.
const (
	ColorBlue  Color = "#165BAA"
	ColorGreen Color = "#009A46"
	ColorGrey  Color = "#D3D3D3"
)

// Color returns the display color for the event type.
func (e EventType) Color() Color {
	switch e {
	case EventDriving:
		return ColorBlue
	case EventIdling:
		return ColorGreen
	default:
		return ColorGrey
	}
}

// ColorFor returns the display color for a raw event string, case-insensitively.
func ColorFor(event string) Color {
	return ParseEventType(event).Color()
}

// Record is a single point-in-time vehicle state. Records are never modified
// after loading; a trip is an ordered slice of them and the slice index is
// the only way to address one.
type Record struct {
	Event    string       `json:"event"`
	Time     time.Time    `json:"time"`
	Location geo.Location `json:"location"`
	Course   float64      `json:"course"`
	Speed    *float64     `json:"speed,omitempty"`
}

// EventType returns the parsed event classification.
func (r Record) EventType() EventType {
	return ParseEventType(r.Event)
}

// SpeedOrZero returns the recorded speed, or 0 when none was recorded.
func (r Record) SpeedOrZero() float64 {
	if r.Speed == nil {
		return 0
	}
	return *r.Speed
}
