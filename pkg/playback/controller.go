// Package playback drives a cursor over a recorded trip: play, pause, seek
// and a fixed-interval tick that advances one record at a time.
//
// A Controller is not safe for concurrent use. All calls, and all callbacks
// it registers, belong on the scheduler's loop.
package playback

import (
	"log/slog"
	"math"
	"time"

	"github.com/NERVsystems/tripreplay/pkg/schedule"
	"github.com/NERVsystems/tripreplay/pkg/trip"
)

// DefaultTickInterval is how often a playing controller advances.
const DefaultTickInterval = time.Second

// State is the playback state.
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	default:
		return "stopped"
	}
}

// Update is published each time the cursor moves.
type Update struct {
	Index  int
	Total  int
	Record trip.Record
}

// Subscription identifies a registered listener.
type Subscription uint64

type positionListener struct {
	id Subscription
	fn func(Update)
}

type stateListener struct {
	id Subscription
	fn func(State)
}

// Controller holds the trip, the cursor and the play/pause state. While
// playing, exactly one repeating tick is registered with the scheduler.
type Controller struct {
	records  []trip.Record
	index    int
	tick     schedule.Cancel
	interval time.Duration
	sched    schedule.Scheduler
	logger   *slog.Logger

	nextID         Subscription
	listeners      []positionListener
	stateListeners []stateListener
}

// Option configures a Controller.
type Option func(*Controller)

// WithTickInterval sets the playback tick interval.
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a stopped controller positioned at index 0.
func New(records []trip.Record, sched schedule.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		records:  records,
		interval: DefaultTickInterval,
		sched:    sched,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn to receive every cursor move, in order.
func (c *Controller) Subscribe(fn func(Update)) Subscription {
	c.nextID++
	c.listeners = append(c.listeners, positionListener{id: c.nextID, fn: fn})
	return c.nextID
}

// SubscribeState registers fn to receive play/pause transitions.
func (c *Controller) SubscribeState(fn func(State)) Subscription {
	c.nextID++
	c.stateListeners = append(c.stateListeners, stateListener{id: c.nextID, fn: fn})
	return c.nextID
}

// Unsubscribe removes a listener registered with Subscribe or SubscribeState.
func (c *Controller) Unsubscribe(id Subscription) {
	for i, l := range c.listeners {
		if l.id == id {
			c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
			return
		}
	}
	for i, l := range c.stateListeners {
		if l.id == id {
			c.stateListeners = append(c.stateListeners[:i:i], c.stateListeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of records.
func (c *Controller) Len() int { return len(c.records) }

// Index returns the cursor position.
func (c *Controller) Index() int { return c.index }

// Records returns the trip. Callers must not modify it.
func (c *Controller) Records() []trip.Record { return c.records }

// Current returns the record under the cursor; ok is false for an empty trip.
func (c *Controller) Current() (trip.Record, bool) {
	if len(c.records) == 0 {
		return trip.Record{}, false
	}
	return c.records[c.index], true
}

// State returns the playback state.
func (c *Controller) State() State {
	if c.tick != nil {
		return Playing
	}
	return Stopped
}

// IsPlaying reports whether the tick is active.
func (c *Controller) IsPlaying() bool { return c.tick != nil }

// Fraction returns index/len, the slider position for the cursor.
func (c *Controller) Fraction() float64 {
	if len(c.records) == 0 {
		return 0
	}
	return float64(c.index) / float64(len(c.records))
}

// TogglePlay switches between Playing and Stopped.
func (c *Controller) TogglePlay() {
	if c.IsPlaying() {
		c.Pause()
	} else {
		c.Play()
	}
}

// Play starts the tick. It is a no-op when already playing or when the trip
// is empty. Playing from the last record stops again on the first tick.
func (c *Controller) Play() {
	if c.tick != nil || len(c.records) == 0 {
		return
	}
	c.tick = c.sched.Every(c.interval, c.Advance)
	c.logger.Debug("playback started", "index", c.index, "interval", c.interval)
	c.publishState(Playing)
}

// Pause cancels the tick. It is a no-op when already stopped.
func (c *Controller) Pause() {
	if c.tick == nil {
		return
	}
	c.tick()
	c.tick = nil
	c.logger.Debug("playback stopped", "index", c.index)
	c.publishState(Stopped)
}

// Advance moves to the next record and publishes it. At the last record it
// stops playback instead and publishes nothing.
func (c *Controller) Advance() {
	if c.index+1 < len(c.records) {
		c.index++
		c.publish()
		return
	}
	c.Pause()
}

// Seek moves the cursor to index and publishes the record there. An index
// outside the trip is ignored. Seeking does not reset the tick phase.
func (c *Controller) Seek(index int) bool {
	if index < 0 || index >= len(c.records) {
		c.logger.Debug("seek out of range ignored", "index", index, "len", len(c.records))
		return false
	}
	c.index = index
	c.publish()
	return true
}

// SeekFraction maps f in [0, 1] to min(floor(f*len), len-1) and seeks there.
// NaN, infinite and negative fractions are ignored.
func (c *Controller) SeekFraction(f float64) bool {
	if len(c.records) == 0 || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return false
	}
	index := len(c.records) - 1
	if scaled := f * float64(len(c.records)); scaled < float64(index) {
		index = int(math.Floor(scaled))
	}
	return c.Seek(index)
}

func (c *Controller) publish() {
	u := Update{Index: c.index, Total: len(c.records), Record: c.records[c.index]}
	listeners := append([]positionListener(nil), c.listeners...)
	for _, l := range listeners {
		l.fn(u)
	}
}

func (c *Controller) publishState(s State) {
	listeners := append([]stateListener(nil), c.stateListeners...)
	for _, l := range listeners {
		l.fn(s)
	}
}
