package view_sync

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
)

// Phase is the synchronizer's lifecycle state.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseIdle
	PhaseAnimating
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseIdle:
		return "idle"
	case PhaseAnimating:
		return "animating"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// State is a snapshot of the synchronizer. Callers receive a copy.
type State struct {
	Phase        Phase
	SelectedAxis camera.AxisDirection
	// LastCameraPosition and LastCameraRotation are recorded on every camera move seen while idle
	// and when an animation completes.
	LastCameraPosition mgl64.Vec3
	LastCameraRotation camera.OrbitState
	// AnimationStart is zero unless an animation has been started since Initialize.
	AnimationStart time.Time
	LastError      *SyncError
}

// EventKind tags an Event.
type EventKind int

const (
	EventAnimationStarted EventKind = iota + 1
	EventAnimationCompleted
	EventAnimationFailed
	EventCameraMoved
	EventAxisSelected
)

func (k EventKind) String() string {
	switch k {
	case EventAnimationStarted:
		return "animation-started"
	case EventAnimationCompleted:
		return "animation-completed"
	case EventAnimationFailed:
		return "animation-failed"
	case EventCameraMoved:
		return "camera-moved"
	case EventAxisSelected:
		return "axis-selected"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is delivered to subscribers. Axis is set for animation and selection events, State for
// EventCameraMoved and EventAnimationCompleted, Err for EventAnimationFailed.
type Event struct {
	Kind  EventKind
	Axis  camera.AxisDirection
	State camera.OrbitState
	Time  time.Time
	Err   error
}
