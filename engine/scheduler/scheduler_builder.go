package scheduler

import "time"

// SchedulerBuilderOption is a functional option for configuring a Scheduler.
type SchedulerBuilderOption func(*schedulerImpl)

// WithStart sets the scheduler's initial clock value.
//
// Parameters:
//   - start: the time reported by Now() before the first Tick
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithStart(start time.Time) SchedulerBuilderOption {
	return func(s *schedulerImpl) {
		s.now = start
	}
}
