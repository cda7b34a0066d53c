// Package schedule provides the single cooperative loop every piece of replay
// state is mutated on, and a manual scheduler with a virtual clock for tests.
//
// Callbacks registered through a Scheduler never run concurrently with each
// other, and a callback whose Cancel has returned never runs again.
package schedule

import "time"

// DefaultFrameInterval is the display cadence used for per-frame callbacks.
const DefaultFrameInterval = time.Second / 60

// Cancel stops a registration. It is idempotent.
type Cancel func()

// Scheduler runs callbacks on a single logical thread.
type Scheduler interface {
	// Now returns the scheduler's current time.
	Now() time.Time

	// Every runs fn every interval until cancelled.
	Every(interval time.Duration, fn func()) Cancel

	// After runs fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) Cancel

	// EachFrame runs fn at display cadence until cancelled.
	EachFrame(fn func(now time.Time)) Cancel
}
