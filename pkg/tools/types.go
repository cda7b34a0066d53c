package tools

import (
	"github.com/NERVsystems/tripreplay/pkg/geo"
	"github.com/NERVsystems/tripreplay/pkg/replay"
	"github.com/NERVsystems/tripreplay/pkg/trip"
	"github.com/paulmach/orb/geojson"
)

// StatusOutput is returned by replay_status, toggle_playback and the seek tools.
type StatusOutput struct {
	replay.Snapshot
	Moved bool `json:"moved"`
}

// PositionOutput is returned by current_position.
type PositionOutput struct {
	Index      int              `json:"index"`
	Total      int              `json:"total"`
	Event      trip.EventType   `json:"event"`
	Color      trip.Color       `json:"color"`
	TimeLabel  string           `json:"time_label"`
	SpeedLabel string           `json:"speed_label"`
	Bearing    *float64         `json:"bearing,omitempty"`
	Marker     geo.Location     `json:"marker"`
	Feature    *geojson.Feature `json:"feature"`
}

// RouteSegmentsOutput is returned by route_segments.
type RouteSegmentsOutput struct {
	Segments int             `json:"segments"`
	Runs     []trip.Run      `json:"runs"`
	Region   geo.BoundingBox `json:"region"`
	Bounds   geo.BoundingBox `json:"bounds"`
}
