// Package replay wires a loaded trip to a playback controller, a marker
// animator and a renderer.
//
// A Session must only be used from the scheduler's loop. Callers on other
// goroutines go through schedule.Loop.Post or Loop.Do.
package replay

import (
	"errors"
	"log/slog"
	"time"

	"github.com/NERVsystems/tripreplay/pkg/animate"
	"github.com/NERVsystems/tripreplay/pkg/geo"
	"github.com/NERVsystems/tripreplay/pkg/playback"
	"github.com/NERVsystems/tripreplay/pkg/render"
	"github.com/NERVsystems/tripreplay/pkg/schedule"
	"github.com/NERVsystems/tripreplay/pkg/trip"
)

// DefaultRegionMeters is the span of the map region shown around the first fix.
const DefaultRegionMeters = 500

// ErrEmptyTrip is returned by Start when there is nothing to replay.
var ErrEmptyTrip = errors.New("trip has no records")

// Snapshot is the externally visible session state.
type Snapshot struct {
	State     string              `json:"state"`
	Index     int                 `json:"index"`
	Total     int                 `json:"total"`
	Fraction  float64             `json:"fraction"`
	Position  render.PositionView `json:"position"`
	Marker    geo.Location        `json:"marker"`
	Animating bool                `json:"animating"`
	Finished  bool                `json:"finished"`
}

// Session is one replay of one trip.
type Session struct {
	sched    schedule.Scheduler
	renderer render.Renderer
	logger   *slog.Logger

	tickInterval time.Duration
	animation    time.Duration
	seekWindow   time.Duration
	regionMeters float64
	zone         *time.Location

	records  []trip.Record
	segments []trip.Segment
	region   geo.BoundingBox

	ctrl     *playback.Controller
	anim     *animate.Animator
	throttle *playback.Throttle
	subs     []playback.Subscription

	started    bool
	pausing    bool
	view       render.PositionView
	prev       geo.Location
	hasPrev    bool
	bearing    float64
	hasBearing bool

	done     chan struct{}
	finished bool
}

// Option configures a Session.
type Option func(*Session)

// WithTickInterval sets how often playback advances.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// WithAnimationDuration sets how long the marker takes to reach each fix.
// Zero makes the marker jump.
func WithAnimationDuration(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.animation = d
		}
	}
}

// WithSeekWindow sets the minimum spacing of slider seeks.
func WithSeekWindow(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.seekWindow = d
		}
	}
}

// WithRegionMeters sets the span of the initial map region.
func WithRegionMeters(m float64) Option {
	return func(s *Session) {
		if m > 0 {
			s.regionMeters = m
		}
	}
}

// WithTimeZone sets the zone used for time labels.
func WithTimeZone(loc *time.Location) Option {
	return func(s *Session) {
		if loc != nil {
			s.zone = loc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession builds a stopped session. Nothing is drawn until Start.
func NewSession(records []trip.Record, sched schedule.Scheduler, renderer render.Renderer, opts ...Option) *Session {
	s := &Session{
		sched:        sched,
		renderer:     renderer,
		logger:       slog.Default(),
		tickInterval: playback.DefaultTickInterval,
		animation:    animate.DefaultDuration,
		seekWindow:   playback.DefaultSeekWindow,
		regionMeters: DefaultRegionMeters,
		zone:         time.Local,
		records:      records,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "replay")

	s.ctrl = playback.New(records, sched,
		playback.WithTickInterval(s.tickInterval),
		playback.WithLogger(s.logger))
	s.anim = animate.New(sched, renderer.Marker, animate.WithLogger(s.logger))
	s.throttle = playback.NewThrottle(sched, s.seekWindow, func(f float64) {
		s.ctrl.SeekFraction(f)
	})
	s.segments = trip.Segments(records)
	return s
}

// Start draws the route, places the marker on the first fix and begins
// listening to the controller.
func (s *Session) Start() error {
	if s.started {
		return nil
	}
	if len(s.records) == 0 {
		return ErrEmptyTrip
	}
	s.started = true

	first := s.records[0]
	s.region = geo.Region(first.Location, s.regionMeters)
	s.renderer.Route(s.segments, s.region)

	s.anim.SetPosition(first.Location)
	s.prev, s.hasPrev = first.Location, true
	s.view = s.buildView(0, first)
	s.renderer.Position(s.view)

	s.subs = append(s.subs,
		s.ctrl.Subscribe(s.onUpdate),
		s.ctrl.SubscribeState(s.onState))

	s.logger.Info("replay ready",
		"records", len(s.records),
		"segments", len(s.segments),
		"start", first.Time.Format(time.RFC3339),
		"end", s.records[len(s.records)-1].Time.Format(time.RFC3339))
	return nil
}

// Stop cancels playback, animation and any held seek, and detaches from the
// controller. The session can not be restarted.
func (s *Session) Stop() {
	s.pausing = true
	s.ctrl.Pause()
	s.pausing = false
	s.anim.Stop()
	s.throttle.Stop()
	for _, id := range s.subs {
		s.ctrl.Unsubscribe(id)
	}
	s.subs = nil
}

// TogglePlay starts or pauses playback.
func (s *Session) TogglePlay() {
	if s.ctrl.IsPlaying() {
		s.pausing = true
		s.ctrl.Pause()
		s.pausing = false
		return
	}
	s.ctrl.Play()
}

// Slide takes a scrub slider value in [0, 1]. Values are throttled before
// they seek.
func (s *Session) Slide(fraction float64) {
	s.throttle.Submit(fraction)
}

// SeekIndex moves straight to index, reporting whether it was in range.
func (s *Session) SeekIndex(index int) bool {
	return s.ctrl.Seek(index)
}

// SeekFraction moves straight to the record at fraction, bypassing the slider
// throttle.
func (s *Session) SeekFraction(fraction float64) bool {
	return s.ctrl.SeekFraction(fraction)
}

// Done is closed when playback reaches the last record and stops by itself.
func (s *Session) Done() <-chan struct{} { return s.done }

// Segments returns the colored route segments.
func (s *Session) Segments() []trip.Segment { return s.segments }

// Region returns the initial map region. It is zero before Start.
func (s *Session) Region() geo.BoundingBox { return s.region }

// Records returns the trip.
func (s *Session) Records() []trip.Record { return s.records }

// Playing reports whether playback is running.
func (s *Session) Playing() bool { return s.ctrl.IsPlaying() }

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:     s.ctrl.State().String(),
		Index:     s.ctrl.Index(),
		Total:     s.ctrl.Len(),
		Fraction:  s.ctrl.Fraction(),
		Position:  s.view,
		Marker:    s.anim.Position(),
		Animating: s.anim.Animating(),
		Finished:  s.finished,
	}
}

func (s *Session) onUpdate(u playback.Update) {
	to := u.Record.Location
	// Bearing is measured from the previously displayed fix. A fix that did
	// not move keeps the last heading.
	if s.hasPrev && s.prev != to {
		s.bearing = geo.Bearing(s.prev, to)
		s.hasBearing = true
	}
	s.prev, s.hasPrev = to, true

	s.view = s.buildView(u.Index, u.Record)
	s.renderer.Position(s.view)
	s.anim.AnimateTo(to, s.animation)
}

func (s *Session) onState(state playback.State) {
	s.logger.Debug("playback state changed", "state", state.String(), "index", s.ctrl.Index())
	if state != playback.Stopped || s.pausing || s.finished {
		return
	}
	if s.ctrl.Index() == s.ctrl.Len()-1 {
		s.finished = true
		s.logger.Info("replay finished", "records", s.ctrl.Len())
		close(s.done)
	}
}

func (s *Session) buildView(index int, r trip.Record) render.PositionView {
	return render.PositionView{
		Index:      index,
		Total:      len(s.records),
		Fraction:   float64(index) / float64(len(s.records)),
		Event:      r.EventType(),
		Color:      r.EventType().Color(),
		TimeLabel:  r.TimeLabel(s.zone),
		SpeedLabel: r.SpeedLabel(),
		Bearing:    s.bearing,
		HasBearing: s.hasBearing,
		Record:     r,
	}
}
