package animation

import (
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
)

// Task is one camera transition. Every sample is recomputed from StartTime, so ticks never
// accumulate error and may arrive at any rate.
type Task struct {
	Start     camera.OrbitState
	Target    camera.OrbitState
	StartTime time.Time
	Duration  time.Duration
	Easing    Easing
}

// Progress returns the linear progress at now, clamped to [0, 1].
// A non-positive duration is complete immediately.
//
// Parameters:
//   - now: the sample time
//
// Returns:
//   - float64: progress in [0, 1]
func (t Task) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.StartTime)
	return common.Clamp(float64(elapsed)/float64(t.Duration), 0, 1)
}

// Done reports whether the task has reached its target at now.
func (t Task) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

// At returns the interpolated orbit at now. All components move together from the same
// start state; azimuth takes the shorter arc. At completion the exact target is returned.
//
// Parameters:
//   - now: the sample time
//
// Returns:
//   - camera.OrbitState: the interpolated orbit
func (t Task) At(now time.Time) camera.OrbitState {
	p := t.Progress(now)
	if p >= 1 {
		return t.Target
	}
	return Interpolate(t.Start, t.Target, t.Easing.Apply(p))
}

// Interpolate blends two orbits by eased progress e. Radius, elevation and target are
// linear; azimuth follows the shortest angular path.
//
// Parameters:
//   - from: orbit at e = 0
//   - to: orbit at e = 1
//   - e: eased progress
//
// Returns:
//   - camera.OrbitState: the blended orbit
func Interpolate(from, to camera.OrbitState, e float64) camera.OrbitState {
	delta := common.ShortestAngleDelta(from.Azimuth, to.Azimuth)
	return camera.OrbitState{
		Azimuth:   from.Azimuth + delta*e,
		Elevation: common.Lerp(from.Elevation, to.Elevation, e),
		Radius:    common.Lerp(from.Radius, to.Radius, e),
		Target:    common.LerpVec3(from.Target, to.Target, e),
	}
}
