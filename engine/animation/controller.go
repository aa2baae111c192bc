package animation

import (
	"errors"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/scheduler"
	"go.uber.org/zap"
)

var (
	// ErrCameraDisposed is reported when the driven camera is released before or during a task.
	ErrCameraDisposed = errors.New("camera disposed")
	// ErrStopped is returned by Start after Stop.
	ErrStopped = errors.New("animation controller stopped")
)

// Controller drives a camera through one Task at a time. Starting a new task supersedes the
// running one: the old task's callbacks are dropped and never fire. Ticking happens on
// scheduler frames; each frame callback re-arms itself only while a task is running and the
// controller has not been stopped.
type Controller interface {
	// Start begins task, superseding any running task.
	//
	// Parameters:
	//   - task: the transition to run
	//   - onComplete: called once when the camera reaches task.Target (may be nil)
	//   - onFail: called once if the task is aborted by camera disposal (may be nil)
	//
	// Returns:
	//   - error: ErrStopped after Stop, ErrCameraDisposed if the camera is already disposed
	Start(task Task, onComplete func(), onFail func(error)) error

	// Tick samples the running task at now and moves the camera. Completes the task when
	// progress reaches 1.
	//
	// Parameters:
	//   - now: the sample time
	Tick(now time.Time)

	// Current returns the running task's interpolated orbit at now.
	//
	// Parameters:
	//   - now: the sample time
	//
	// Returns:
	//   - camera.OrbitState: the interpolated orbit
	//   - bool: false if no task is running
	Current(now time.Time) (camera.OrbitState, bool)

	// Task returns the running task.
	//
	// Returns:
	//   - Task: the running task
	//   - bool: false if no task is running
	Task() (Task, bool)

	// Active reports whether a task is running.
	Active() bool

	// Cancel drops the running task without calling its callbacks. The camera stays where it is.
	Cancel()

	// Stop cancels any task and disarms the frame callback permanently.
	Stop()
}

type controllerImpl struct {
	cam    camera.Camera
	sched  scheduler.Scheduler
	logger *zap.Logger

	task       *Task
	onComplete func()
	onFail     func(error)

	frame   scheduler.Handle
	stopped bool
}

var _ Controller = &controllerImpl{}

// NewController creates a Controller for cam ticked by sched. Both are required.
//
// Parameters:
//   - cam: the camera to drive
//   - sched: the scheduler providing frame callbacks
//   - options: functional options to further configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(cam camera.Camera, sched scheduler.Scheduler, options ...ControllerBuilderOption) Controller {
	if cam == nil {
		panic("animation: NewController requires a non-nil Camera")
	}
	if sched == nil {
		panic("animation: NewController requires a non-nil Scheduler")
	}
	c := &controllerImpl{
		cam:    cam,
		sched:  sched,
		logger: zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controllerImpl) Start(task Task, onComplete func(), onFail func(error)) error {
	if c.stopped {
		return ErrStopped
	}
	if c.cam.IsDisposed() {
		return ErrCameraDisposed
	}
	if c.task != nil {
		c.logger.Debug("superseding animation",
			zap.Stringer("from", c.task.Target),
			zap.Stringer("to", task.Target),
		)
	}
	c.task = &task
	c.onComplete = onComplete
	c.onFail = onFail
	c.arm()
	return nil
}

// arm schedules the next frame callback unless one is already pending.
func (c *controllerImpl) arm() {
	if c.frame != 0 || c.stopped {
		return
	}
	c.frame = c.sched.NextFrame(c.onFrame)
}

func (c *controllerImpl) onFrame() {
	c.frame = 0
	if c.stopped || c.task == nil {
		return
	}
	c.Tick(c.sched.Now())
	if c.task != nil && !c.stopped {
		c.arm()
	}
}

func (c *controllerImpl) Tick(now time.Time) {
	if c.task == nil {
		return
	}
	if c.cam.IsDisposed() {
		onFail := c.onFail
		c.clear()
		c.logger.Warn("animation aborted: camera disposed")
		if onFail != nil {
			onFail(ErrCameraDisposed)
		}
		return
	}

	task := *c.task
	if !task.Done(now) {
		c.cam.SetOrbitState(task.At(now))
		return
	}

	// Clear before notifying so a completion handler may start the next task.
	onComplete := c.onComplete
	c.clear()
	c.cam.SetOrbitState(task.Target)
	if onComplete != nil {
		onComplete()
	}
}

func (c *controllerImpl) clear() {
	c.task = nil
	c.onComplete = nil
	c.onFail = nil
}

func (c *controllerImpl) Current(now time.Time) (camera.OrbitState, bool) {
	if c.task == nil {
		return camera.OrbitState{}, false
	}
	return c.task.At(now), true
}

func (c *controllerImpl) Task() (Task, bool) {
	if c.task == nil {
		return Task{}, false
	}
	return *c.task, true
}

func (c *controllerImpl) Active() bool {
	return c.task != nil
}

func (c *controllerImpl) Cancel() {
	c.clear()
	if c.frame != 0 {
		c.sched.Cancel(c.frame)
		c.frame = 0
	}
}

func (c *controllerImpl) Stop() {
	c.Cancel()
	c.stopped = true
}
