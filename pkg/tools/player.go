package tools

import (
	"context"

	"github.com/NERVsystems/tripreplay/pkg/geo"
	"github.com/NERVsystems/tripreplay/pkg/replay"
	"github.com/NERVsystems/tripreplay/pkg/trip"
)

// Player is what the tools need from a running replay. Every method is safe
// to call from MCP handler goroutines.
type Player interface {
	Status(ctx context.Context) (replay.Snapshot, error)
	TogglePlay(ctx context.Context) (replay.Snapshot, error)
	SeekIndex(ctx context.Context, index int) (replay.Snapshot, bool, error)
	SeekFraction(ctx context.Context, fraction float64) (replay.Snapshot, bool, error)
	Route(ctx context.Context) (Route, error)
}

// Route is the static description of the replayed trip.
type Route struct {
	Records  []trip.Record
	Segments []trip.Segment
	Region   geo.BoundingBox
}

// Runner runs fn on the goroutine that owns the session and waits for it.
// schedule.Loop satisfies it.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// SessionPlayer is a Player backed by a replay.Session on a loop.
type SessionPlayer struct {
	run     Runner
	session *replay.Session
}

// NewSessionPlayer returns a Player for s.
func NewSessionPlayer(run Runner, s *replay.Session) *SessionPlayer {
	return &SessionPlayer{run: run, session: s}
}

// Status implements Player.
func (p *SessionPlayer) Status(ctx context.Context) (replay.Snapshot, error) {
	var snap replay.Snapshot
	err := p.run.Do(ctx, func() { snap = p.session.Snapshot() })
	return snap, err
}

// TogglePlay implements Player.
func (p *SessionPlayer) TogglePlay(ctx context.Context) (replay.Snapshot, error) {
	var snap replay.Snapshot
	err := p.run.Do(ctx, func() {
		p.session.TogglePlay()
		snap = p.session.Snapshot()
	})
	return snap, err
}

// SeekIndex implements Player.
func (p *SessionPlayer) SeekIndex(ctx context.Context, index int) (replay.Snapshot, bool, error) {
	var snap replay.Snapshot
	var moved bool
	err := p.run.Do(ctx, func() {
		moved = p.session.SeekIndex(index)
		snap = p.session.Snapshot()
	})
	return snap, moved, err
}

// SeekFraction implements Player.
func (p *SessionPlayer) SeekFraction(ctx context.Context, fraction float64) (replay.Snapshot, bool, error) {
	var snap replay.Snapshot
	var moved bool
	err := p.run.Do(ctx, func() {
		moved = p.session.SeekFraction(fraction)
		snap = p.session.Snapshot()
	})
	return snap, moved, err
}

// Route implements Player. The route never changes once the session has
// started, but the region is only known after Start.
func (p *SessionPlayer) Route(ctx context.Context) (Route, error) {
	var r Route
	err := p.run.Do(ctx, func() {
		r = Route{
			Records:  p.session.Records(),
			Segments: p.session.Segments(),
			Region:   p.session.Region(),
		}
	})
	return r, err
}
