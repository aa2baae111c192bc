package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle never refers to a timer.
type Handle uint64

// Scheduler runs callbacks cooperatively. Nothing fires on its own: the owner calls Tick with
// the current time once per frame and every due callback runs on the caller's goroutine.
// Production code feeds real frame times; tests feed a VirtualClock.
type Scheduler interface {
	// Now returns the time passed to the most recent Tick (or the start time before any tick).
	//
	// Returns:
	//   - time.Time: the scheduler's current time
	Now() time.Time

	// After schedules fn to run on the first Tick at or after Now()+d.
	//
	// Parameters:
	//   - d: delay relative to Now()
	//   - fn: the callback
	//
	// Returns:
	//   - Handle: identifies the timer for Cancel
	After(d time.Duration, fn func()) Handle

	// NextFrame schedules fn to run on the next Tick regardless of its time.
	//
	// Parameters:
	//   - fn: the callback
	//
	// Returns:
	//   - Handle: identifies the timer for Cancel
	NextFrame(fn func()) Handle

	// Cancel removes a pending callback. Cancelling an unknown or already fired handle is a no-op.
	//
	// Parameters:
	//   - h: the handle returned by After or NextFrame
	//
	// Returns:
	//   - bool: true if a pending callback was removed
	Cancel(h Handle) bool

	// Tick advances the clock to now and runs every callback that is due, ordered by deadline
	// and then by scheduling order. Callbacks scheduled while the tick runs wait for the next Tick.
	// A now earlier than Now() is treated as Now().
	//
	// Parameters:
	//   - now: the current frame time
	//
	// Returns:
	//   - int: the number of callbacks that ran
	Tick(now time.Time) int

	// Pending returns the number of scheduled callbacks.
	Pending() int
}

type timer struct {
	handle   Handle
	deadline time.Time
	fn       func()
}

type schedulerImpl struct {
	mu     *sync.Mutex
	now    time.Time
	next   Handle
	timers map[Handle]*timer
}

var _ Scheduler = &schedulerImpl{}

// NewScheduler creates a Scheduler whose clock starts at the Unix epoch unless WithStart is given.
//
// Parameters:
//   - options: functional options to configure the scheduler
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler(options ...SchedulerBuilderOption) Scheduler {
	s := &schedulerImpl{
		mu:     &sync.Mutex{},
		now:    time.Unix(0, 0).UTC(),
		timers: make(map[Handle]*timer),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *schedulerImpl) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *schedulerImpl) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(s.now.Add(d), fn)
}

func (s *schedulerImpl) NextFrame(fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A zero deadline is due on any tick.
	return s.add(time.Time{}, fn)
}

// add registers a timer. Caller must hold the mutex.
func (s *schedulerImpl) add(deadline time.Time, fn func()) Handle {
	if fn == nil {
		return 0
	}
	s.next++
	h := s.next
	s.timers[h] = &timer{handle: h, deadline: deadline, fn: fn}
	return h
}

func (s *schedulerImpl) Cancel(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timers[h]; !ok {
		return false
	}
	delete(s.timers, h)
	return true
}

func (s *schedulerImpl) Tick(now time.Time) int {
	s.mu.Lock()
	if now.After(s.now) {
		s.now = now
	}
	// Only timers armed before this tick started are eligible.
	seq := s.next
	due := make([]*timer, 0, len(s.timers))
	for _, t := range s.timers {
		if t.handle <= seq && !t.deadline.After(s.now) {
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if !due[i].deadline.Equal(due[j].deadline) {
			return due[i].deadline.Before(due[j].deadline)
		}
		return due[i].handle < due[j].handle
	})

	ran := 0
	for _, t := range due {
		s.mu.Lock()
		// An earlier callback in this tick may have cancelled it.
		_, alive := s.timers[t.handle]
		if alive {
			delete(s.timers, t.handle)
		}
		s.mu.Unlock()
		if !alive {
			continue
		}
		t.fn()
		ran++
	}

	return ran
}

func (s *schedulerImpl) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
