package schedule

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is returned when work is submitted to a loop that has stopped.
var ErrClosed = errors.New("schedule: loop closed")

// Loop is a Scheduler backed by one goroutine. Timer goroutines only post to
// the loop; the callbacks themselves always execute inside Run.
type Loop struct {
	tasks         chan func()
	done          chan struct{}
	closeOnce     sync.Once
	frameInterval time.Duration
	logger        *slog.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithFrameInterval sets the per-frame cadence.
func WithFrameInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.frameInterval = d
		}
	}
}

// WithLoopLogger sets the logger.
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// NewLoop creates a loop. Nothing runs until Run is called.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		tasks:         make(chan func(), 256),
		done:          make(chan struct{}),
		frameInterval: DefaultFrameInterval,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes posted work until ctx is cancelled. It returns ctx.Err().
// Pending work is dropped and later posts fail with ErrClosed.
func (l *Loop) Run(ctx context.Context) error {
	defer l.closeOnce.Do(func() { close(l.done) })

	l.logger.Debug("scheduling loop started", "frame_interval", l.frameInterval)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("scheduling loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Post queues fn to run on the loop. It reports false if the loop is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish. If ctx ends before fn
// has started, fn never runs and ctx.Err() is returned. Once fn has started,
// Do waits for it regardless of ctx.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	var claimed atomic.Bool
	finished := make(chan struct{})
	if !l.Post(func() {
		if !claimed.CompareAndSwap(false, true) {
			return
		}
		defer close(finished)
		fn()
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		if claimed.CompareAndSwap(false, true) {
			return ErrClosed
		}
	case <-ctx.Done():
		if claimed.CompareAndSwap(false, true) {
			return ctx.Err()
		}
	}
	<-finished
	return nil
}

// Now returns the wall clock.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Every implements Scheduler.
func (l *Loop) Every(interval time.Duration, fn func()) Cancel {
	return l.repeat(interval, func(time.Time) { fn() })
}

// EachFrame implements Scheduler.
func (l *Loop) EachFrame(fn func(now time.Time)) Cancel {
	return l.repeat(l.frameInterval, fn)
}

// After implements Scheduler.
func (l *Loop) After(delay time.Duration, fn func()) Cancel {
	reg := newRegistration()
	timer := time.AfterFunc(delay, func() {
		l.Post(func() {
			if reg.active() {
				reg.cancel()
				fn()
			}
		})
	})
	return func() {
		reg.cancel()
		timer.Stop()
	}
}

func (l *Loop) repeat(interval time.Duration, fn func(now time.Time)) Cancel {
	reg := newRegistration()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				l.Post(func() {
					if reg.active() {
						fn(now)
					}
				})
			case <-reg.stopped:
				return
			case <-l.done:
				return
			}
		}
	}()
	return reg.cancel
}

// registration is the cancellation state shared between a timer goroutine
// and the callbacks it posts.
type registration struct {
	cancelled atomic.Bool
	stopped   chan struct{}
	once      sync.Once
}

func newRegistration() *registration {
	return &registration{stopped: make(chan struct{})}
}

func (r *registration) active() bool {
	return !r.cancelled.Load()
}

func (r *registration) cancel() {
	r.cancelled.Store(true)
	r.once.Do(func() { close(r.stopped) })
}
