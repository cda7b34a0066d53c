package replay

import (
	"testing"
	"time"
)

// queue collects posted work so a test can run it later, as the loop would.
type queue struct {
	fns    []func()
	closed bool
}

func (q *queue) Post(fn func()) bool {
	if q.closed {
		return false
	}
	q.fns = append(q.fns, fn)
	return true
}

func (q *queue) drain() {
	for len(q.fns) > 0 {
		fn := q.fns[0]
		q.fns = q.fns[1:]
		fn()
	}
}

func TestControlsPostToLoop(t *testing.T) {
	s, sched, rec := newSession(t, threeFixes())
	rec.Reset()
	q := &queue{}
	c := NewControls(q, s)

	c.SeekIndex(2)
	c.TogglePlay()
	c.Slide(0)
	if len(rec.Positions()) != 0 || s.Playing() {
		t.Fatal("controls ran input before the loop did")
	}

	q.drain()
	if !s.Playing() {
		t.Error("toggle not applied")
	}
	positions := rec.Positions()
	if len(positions) != 2 || positions[0].Index != 2 || positions[1].Index != 0 {
		t.Errorf("positions = %+v, want seek to 2 then slide to 0", positions)
	}

	q.closed = true
	c.TogglePlay()
	q.drain()
	sched.Advance(time.Second)
	if !s.Playing() {
		t.Error("input applied after the loop closed")
	}
}
