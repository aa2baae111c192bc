package animation

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

var epoch = time.Unix(0, 0).UTC()

func TestTaskProgress(t *testing.T) {
	task := Task{StartTime: epoch, Duration: 500 * time.Millisecond}
	assert.Equal(t, 0.0, task.Progress(epoch.Add(-time.Second)))
	assert.InDelta(t, 0.5, task.Progress(epoch.Add(250*time.Millisecond)), 1e-12)
	assert.Equal(t, 1.0, task.Progress(epoch.Add(time.Second)))
	assert.True(t, Task{Duration: 0}.Done(epoch))
}

func TestTaskAtInterpolatesAllFieldsTogether(t *testing.T) {
	task := Task{
		Start:     camera.OrbitState{Azimuth: 0, Elevation: 1, Radius: 10, Target: mgl64.Vec3{0, 0, 0}},
		Target:    camera.OrbitState{Azimuth: 1, Elevation: 2, Radius: 20, Target: mgl64.Vec3{2, 4, 6}},
		StartTime: epoch,
		Duration:  time.Second,
		Easing:    EasingLinear,
	}
	mid := task.At(epoch.Add(500 * time.Millisecond))
	assert.InDelta(t, 0.5, mid.Azimuth, 1e-12)
	assert.InDelta(t, 1.5, mid.Elevation, 1e-12)
	assert.InDelta(t, 15.0, mid.Radius, 1e-12)
	assert.True(t, mid.Target.ApproxEqual(mgl64.Vec3{1, 2, 3}))

	assert.Equal(t, task.Target, task.At(epoch.Add(2*time.Second)), "exact target at completion")
}

func TestTaskAtTakesShortestAzimuthPath(t *testing.T) {
	task := Task{
		Start:     camera.OrbitState{Azimuth: 3 * math.Pi / 4, Elevation: 1, Radius: 1},
		Target:    camera.OrbitState{Azimuth: -3 * math.Pi / 4, Elevation: 1, Radius: 1},
		StartTime: epoch,
		Duration:  time.Second,
		Easing:    EasingLinear,
	}
	mid := task.At(epoch.Add(500 * time.Millisecond))
	// The short way crosses ±π instead of sweeping through 0.
	assert.InDelta(t, math.Pi, mid.Azimuth, 1e-9)

	for i := 0; i <= 10; i++ {
		s := task.At(epoch.Add(time.Duration(i) * 100 * time.Millisecond))
		assert.GreaterOrEqual(t, s.Azimuth, 3*math.Pi/4-1e-9)
		assert.LessOrEqual(t, s.Azimuth, 5*math.Pi/4+1e-9)
	}
}
