package animation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	sched scheduler.Scheduler
	clock *scheduler.VirtualClock
	cam   camera.OrbitCamera
	ctrl  Controller
}

func newHarness() *harness {
	s := scheduler.NewScheduler()
	cam := camera.NewOrbitCamera(camera.WithOrbitState(camera.OrbitState{
		Azimuth: math.Pi / 4, Elevation: math.Pi / 3, Radius: 10,
	}))
	return &harness{
		sched: s,
		clock: scheduler.NewVirtualClock(s, 0),
		cam:   cam,
		ctrl:  NewController(cam, s),
	}
}

func (h *harness) taskTo(axis camera.AxisDirection, from camera.OrbitState) Task {
	target, _ := camera.TargetStateFor(axis, from)
	return Task{
		Start:     from,
		Target:    target,
		StartTime: h.sched.Now(),
		Duration:  500 * time.Millisecond,
		Easing:    EasingCubic,
	}
}

func TestControllerCompletesAtTarget(t *testing.T) {
	h := newHarness()
	completed := 0
	task := h.taskTo(camera.AxisPosX, h.cam.OrbitState())
	require.NoError(t, h.ctrl.Start(task, func() { completed++ }, nil))
	assert.True(t, h.ctrl.Active())

	h.clock.Advance(250 * time.Millisecond)
	assert.Equal(t, 0, completed)
	mid := h.cam.OrbitState()
	assert.False(t, mid.ApproxEqual(task.Start, 1e-6), "camera moved")
	assert.False(t, mid.ApproxEqual(task.Target, 1e-6), "but has not arrived")

	h.clock.Advance(300 * time.Millisecond)
	assert.Equal(t, 1, completed)
	assert.False(t, h.ctrl.Active())
	assert.True(t, h.cam.OrbitState().ApproxEqual(task.Target, 1e-12))
	assert.Equal(t, 0, h.sched.Pending(), "frame callback not re-armed after completion")
}

func TestControllerSupersessionDropsOldCompletion(t *testing.T) {
	h := newHarness()
	var completed []string
	first := h.taskTo(camera.AxisPosX, h.cam.OrbitState())
	require.NoError(t, h.ctrl.Start(first, func() { completed = append(completed, "first") }, nil))
	h.clock.Advance(200 * time.Millisecond)

	now := h.sched.Now()
	current, ok := h.ctrl.Current(now)
	require.True(t, ok)
	assert.True(t, current.ApproxEqual(first.At(now), 1e-12))

	second := h.taskTo(camera.AxisNegZ, current)
	require.NoError(t, h.ctrl.Start(second, func() { completed = append(completed, "second") }, nil))
	got, _ := h.ctrl.Task()
	assert.Equal(t, current, got.Start)

	h.clock.Advance(time.Second)
	assert.Equal(t, []string{"second"}, completed)
	assert.True(t, h.cam.OrbitState().ApproxEqual(second.Target, 1e-12))
}

func TestControllerAbortsWhenCameraDisposed(t *testing.T) {
	h := newHarness()
	var failure error
	completed := false
	require.NoError(t, h.ctrl.Start(h.taskTo(camera.AxisPosY, h.cam.OrbitState()),
		func() { completed = true },
		func(err error) { failure = err },
	))
	h.clock.Step()
	h.cam.Dispose()
	h.clock.Advance(time.Second)

	assert.False(t, completed)
	assert.True(t, errors.Is(failure, ErrCameraDisposed))
	assert.False(t, h.ctrl.Active())
	assert.ErrorIs(t, h.ctrl.Start(Task{}, nil, nil), ErrCameraDisposed)
}

func TestControllerCancelAndStop(t *testing.T) {
	h := newHarness()
	completed := false
	require.NoError(t, h.ctrl.Start(h.taskTo(camera.AxisNegX, h.cam.OrbitState()), func() { completed = true }, nil))
	h.ctrl.Cancel()
	assert.Equal(t, 0, h.sched.Pending())
	h.clock.Advance(time.Second)
	assert.False(t, completed)

	h.ctrl.Stop()
	assert.ErrorIs(t, h.ctrl.Start(Task{}, nil, nil), ErrStopped)
}

func TestControllerCompletionMayStartNextTask(t *testing.T) {
	h := newHarness()
	done := 0
	var chain func()
	chain = func() {
		done++
		if done == 1 {
			_ = h.ctrl.Start(h.taskTo(camera.AxisPosZ, h.cam.OrbitState()), chain, nil)
		}
	}
	require.NoError(t, h.ctrl.Start(h.taskTo(camera.AxisPosX, h.cam.OrbitState()), chain, nil))
	h.clock.Advance(2 * time.Second)
	assert.Equal(t, 2, done)
	assert.True(t, camera.MatchesAxis(h.cam.OrbitState(), camera.AxisPosZ, 1e-9))
}
