package playback

import (
	"time"

	"github.com/NERVsystems/tripreplay/pkg/schedule"
	"golang.org/x/time/rate"
)

// DefaultSeekWindow is the minimum spacing between applied slider seeks.
const DefaultSeekWindow = 200 * time.Millisecond

// Throttle rate-limits a continuous input such as a scrub slider. Repeated
// identical values are dropped; a value that arrives too soon is held and
// applied once the window allows, replaced by any newer value meanwhile.
// The last value submitted is therefore always applied eventually.
type Throttle struct {
	sched   schedule.Scheduler
	limiter *rate.Limiter
	apply   func(float64)

	last    float64
	hasLast bool
	pending float64
	timer   schedule.Cancel
}

// NewThrottle returns a throttle passing at most one value per window to apply.
func NewThrottle(sched schedule.Scheduler, window time.Duration, apply func(float64)) *Throttle {
	return &Throttle{
		sched:   sched,
		limiter: rate.NewLimiter(rate.Every(window), 1),
		apply:   apply,
	}
}

// Submit offers a new value.
func (t *Throttle) Submit(v float64) {
	if t.hasLast && v == t.last {
		return
	}
	t.last, t.hasLast = v, true

	if t.timer != nil {
		t.pending = v
		return
	}

	now := t.sched.Now()
	delay := t.limiter.ReserveN(now, 1).DelayFrom(now)
	if delay <= 0 {
		t.apply(v)
		return
	}
	t.pending = v
	t.timer = t.sched.After(delay, func() {
		t.timer = nil
		t.apply(t.pending)
	})
}

// Stop drops any held value.
func (t *Throttle) Stop() {
	if t.timer != nil {
		t.timer()
		t.timer = nil
	}
}
