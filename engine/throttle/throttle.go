// Package throttle implements a trailing-edge rate limiter on top of the cooperative scheduler.
//
// The first call after a quiet period arms a single timer one window away. Calls arriving
// before it fires only replace the payload, so the effect always sees the freshest value and
// runs at most once per window. A burst shorter than the window yields exactly one effect.
package throttle

import (
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/scheduler"
)

// Throttle coalesces calls into one delayed effect carrying the most recent payload.
// It is not safe for concurrent use; like the scheduler it lives on the frame goroutine.
type Throttle[T any] struct {
	sched  scheduler.Scheduler
	window time.Duration
	effect func(T)

	pending bool
	handle  scheduler.Handle
	latest  T

	calls   uint64
	effects uint64
}

// New creates a Throttle.
//
// Parameters:
//   - sched: scheduler used for the trailing timer
//   - window: minimum spacing between effects (<= 0 fires on the next tick)
//   - effect: called with the latest payload
//
// Returns:
//   - *Throttle[T]: the throttle
func New[T any](sched scheduler.Scheduler, window time.Duration, effect func(T)) *Throttle[T] {
	if sched == nil {
		panic("throttle: New requires a non-nil Scheduler")
	}
	if window < 0 {
		window = 0
	}
	return &Throttle[T]{sched: sched, window: window, effect: effect}
}

// Call records v as the latest payload and arms the trailing timer if none is pending.
//
// Parameters:
//   - v: the payload
func (t *Throttle[T]) Call(v T) {
	t.calls++
	t.latest = v
	if t.pending {
		return
	}
	t.pending = true
	t.handle = t.sched.After(t.window, t.fire)
}

func (t *Throttle[T]) fire() {
	if !t.pending {
		return
	}
	t.pending = false
	t.handle = 0
	v := t.latest
	var zero T
	t.latest = zero
	t.effects++
	if t.effect != nil {
		t.effect(v)
	}
}

// Pending reports whether an effect is scheduled.
func (t *Throttle[T]) Pending() bool {
	return t.pending
}

// Cancel drops a pending effect without running it.
//
// Returns:
//   - bool: true if an effect was pending
func (t *Throttle[T]) Cancel() bool {
	if !t.pending {
		return false
	}
	t.sched.Cancel(t.handle)
	t.pending = false
	t.handle = 0
	var zero T
	t.latest = zero
	return true
}

// Stats returns how many calls were received and how many effects ran.
func (t *Throttle[T]) Stats() (calls, effects uint64) {
	return t.calls, t.effects
}
