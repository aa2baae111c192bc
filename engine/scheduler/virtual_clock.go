package scheduler

import "time"

// DefaultFrame is the frame interval used by VirtualClock when none is given (60 Hz).
const DefaultFrame = time.Second / 60

// VirtualClock drives a Scheduler with simulated frame times for deterministic tests and
// headless runs.
type VirtualClock struct {
	sched Scheduler
	frame time.Duration
}

// NewVirtualClock creates a clock that advances sched in steps of frame.
//
// Parameters:
//   - sched: the scheduler to drive
//   - frame: simulated frame interval (<= 0 uses DefaultFrame)
//
// Returns:
//   - *VirtualClock: the clock
func NewVirtualClock(sched Scheduler, frame time.Duration) *VirtualClock {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &VirtualClock{sched: sched, frame: frame}
}

// Now returns the scheduler's current time.
func (c *VirtualClock) Now() time.Time {
	return c.sched.Now()
}

// Step advances by exactly one frame and ticks once.
//
// Returns:
//   - int: callbacks run during the tick
func (c *VirtualClock) Step() int {
	return c.sched.Tick(c.sched.Now().Add(c.frame))
}

// Advance moves time forward by d, ticking once per frame plus a final partial frame.
//
// Parameters:
//   - d: total simulated time
//
// Returns:
//   - int: callbacks run across all ticks
func (c *VirtualClock) Advance(d time.Duration) int {
	end := c.sched.Now().Add(d)
	ran := 0
	for {
		next := c.sched.Now().Add(c.frame)
		if next.After(end) {
			break
		}
		ran += c.sched.Tick(next)
	}
	if c.sched.Now().Before(end) {
		ran += c.sched.Tick(end)
	}
	return ran
}

// Jump ticks once at Now()+d without intermediate frames.
//
// Parameters:
//   - d: simulated time to skip
//
// Returns:
//   - int: callbacks run during the tick
func (c *VirtualClock) Jump(d time.Duration) int {
	return c.sched.Tick(c.sched.Now().Add(d))
}
