package schedule

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by a virtual clock. Callbacks run on the
// goroutine calling Advance, in due-time order, ties broken by registration
// order. It is not safe for concurrent use.
type Manual struct {
	now           time.Time
	frameInterval time.Duration
	seq           int
	timers        []*manualTimer
}

type manualTimer struct {
	seq       int
	due       time.Time
	interval  time.Duration // zero for one-shot timers
	fn        func(now time.Time)
	cancelled bool
}

// NewManual returns a manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start, frameInterval: DefaultFrameInterval}
}

// SetFrameInterval changes the cadence used by later EachFrame registrations.
func (m *Manual) SetFrameInterval(d time.Duration) {
	if d > 0 {
		m.frameInterval = d
	}
}

// Now implements Scheduler.
func (m *Manual) Now() time.Time {
	return m.now
}

// Every implements Scheduler.
func (m *Manual) Every(interval time.Duration, fn func()) Cancel {
	return m.add(interval, interval, func(time.Time) { fn() })
}

// After implements Scheduler.
func (m *Manual) After(delay time.Duration, fn func()) Cancel {
	return m.add(delay, 0, func(time.Time) { fn() })
}

// EachFrame implements Scheduler.
func (m *Manual) EachFrame(fn func(now time.Time)) Cancel {
	return m.add(m.frameInterval, m.frameInterval, fn)
}

func (m *Manual) add(delay, interval time.Duration, fn func(time.Time)) Cancel {
	if delay < 0 {
		delay = 0
	}
	m.seq++
	t := &manualTimer{seq: m.seq, due: m.now.Add(delay), interval: interval, fn: fn}
	m.timers = append(m.timers, t)
	return func() { t.cancelled = true }
}

// Pending returns the number of live registrations.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every callback that comes due
// along the way at its due time.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.now = t.due
		if t.interval > 0 {
			t.due = t.due.Add(t.interval)
		} else {
			t.cancelled = true
		}
		t.fn(m.now)
	}
	m.now = target
}

// next returns the earliest live timer due at or before target.
func (m *Manual) next(target time.Time) *manualTimer {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.timers = live

	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due.Equal(m.timers[j].due) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].due.Before(m.timers[j].due)
	})
	if len(m.timers) == 0 || m.timers[0].due.After(target) {
		return nil
	}
	return m.timers[0]
}
