// Package animate moves a map marker smoothly between fixes by linear
// interpolation at display cadence.
package animate

import (
	"log/slog"
	"time"

	"github.com/NERVsystems/tripreplay/pkg/geo"
	"github.com/NERVsystems/tripreplay/pkg/schedule"
)

// DefaultDuration is the time the marker takes to reach a new fix. It
// matches the playback tick so the marker is always moving during playback.
const DefaultDuration = time.Second

// Animation is one marker move from From to To starting at Start.
type Animation struct {
	From     geo.Location
	To       geo.Location
	Start    time.Time
	Duration time.Duration
}

// At returns the marker position at now and whether the move is complete.
// A complete move always reports exactly To.
func (a Animation) At(now time.Time) (geo.Location, bool) {
	if a.Duration <= 0 {
		return a.To, true
	}
	fraction := geo.Clamp(float64(now.Sub(a.Start)) / float64(a.Duration))
	return geo.Lerp(a.From, a.To, fraction), fraction >= 1
}

// Animator owns the marker position. At most one animation is live; a new
// AnimateTo supersedes the previous one before it can apply another frame.
// Like the playback controller it must only be used from the scheduler loop.
type Animator struct {
	sched    schedule.Scheduler
	onFrame  func(geo.Location)
	logger   *slog.Logger
	position geo.Location

	current    *Animation
	cancel     schedule.Cancel
	generation uint64
}

// Option configures an Animator.
type Option func(*Animator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Animator) {
		a.logger = logger
	}
}

// New creates an animator that reports every marker position to onFrame.
func New(sched schedule.Scheduler, onFrame func(geo.Location), opts ...Option) *Animator {
	a := &Animator{
		sched:   sched,
		onFrame: onFrame,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Position returns the current marker position.
func (a *Animator) Position() geo.Location { return a.position }

// Animating reports whether a move is in flight.
func (a *Animator) Animating() bool { return a.current != nil }

// SetPosition stops any move and places the marker at loc.
func (a *Animator) SetPosition(loc geo.Location) {
	a.Stop()
	a.set(loc)
}

// Stop abandons the move in flight, leaving the marker where it is.
func (a *Animator) Stop() {
	a.generation++
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.current = nil
}

// AnimateTo moves the marker from its current position to target over
// duration. A non-positive duration jumps straight to target.
func (a *Animator) AnimateTo(target geo.Location, duration time.Duration) {
	a.Stop()

	if duration <= 0 {
		a.set(target)
		return
	}

	anim := &Animation{
		From:     a.position,
		To:       target,
		Start:    a.sched.Now(),
		Duration: duration,
	}
	a.current = anim
	gen := a.generation
	a.cancel = a.sched.EachFrame(func(now time.Time) {
		if gen != a.generation {
			return
		}
		pos, done := anim.At(now)
		a.set(pos)
		if done {
			a.logger.Debug("marker animation finished", "target", target.String())
			a.Stop()
		}
	})
}

func (a *Animator) set(loc geo.Location) {
	a.position = loc
	if a.onFrame != nil {
		a.onFrame(loc)
	}
}
