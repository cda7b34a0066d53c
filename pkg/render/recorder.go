package render

import (
	"sync"

	"github.com/NERVsystems/tripreplay/pkg/geo"
	"github.com/NERVsystems/tripreplay/pkg/trip"
)

// Recorder keeps every call it receives. It is meant for tests and for
// inspecting the last rendered state.
type Recorder struct {
	mu        sync.Mutex
	segments  []trip.Segment
	region    geo.BoundingBox
	positions []PositionView
	markers   []geo.Location
}

// Route implements Renderer.
func (r *Recorder) Route(segments []trip.Segment, region geo.BoundingBox) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = append([]trip.Segment(nil), segments...)
	r.region = region
}

// Position implements Renderer.
func (r *Recorder) Position(view PositionView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions = append(r.positions, view)
}

// Marker implements Renderer.
func (r *Recorder) Marker(loc geo.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers = append(r.markers, loc)
}

// Segments returns the last route drawn and its region.
func (r *Recorder) Segments() ([]trip.Segment, geo.BoundingBox) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]trip.Segment(nil), r.segments...), r.region
}

// Positions returns every position view received.
func (r *Recorder) Positions() []PositionView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]PositionView(nil), r.positions...)
}

// Markers returns every marker position received.
func (r *Recorder) Markers() []geo.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]geo.Location(nil), r.markers...)
}

// Reset forgets positions and markers, keeping the route.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions = nil
	r.markers = nil
}
