package controls

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-orbit/engine/state_store"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rig struct {
	cam   camera.OrbitCamera
	gizmo gizmo.Gizmo
	store state_store.Store
	ctl   Controls
}

func newRig(t *testing.T, options ...ControlsBuilderOption) *rig {
	t.Helper()
	cam := camera.NewOrbitCamera(camera.WithMouseSensitivity(0.01), camera.WithPanSpeed(0.1))
	g := gizmo.NewGizmo(gizmo.WithViewport(0, 0, 100))
	require.NoError(t, g.Initialize(cam))
	store := state_store.NewStore()
	return &rig{cam: cam, gizmo: g, store: store, ctl: NewControls(cam, g, store, options...)}
}

func TestLeftDragOrbits(t *testing.T) {
	r := newRig(t)
	before := r.cam.OrbitState()

	r.ctl.MouseButton(window.MouseLeft, true, 500, 400)
	assert.True(t, r.ctl.Dragging())
	r.ctl.MouseMove(510, 400)
	r.ctl.MouseButton(window.MouseLeft, false, 510, 400)
	assert.False(t, r.ctl.Dragging())

	after := r.cam.OrbitState()
	assert.InDelta(t, -0.1, common.ShortestAngleDelta(before.Azimuth, after.Azimuth), 1e-9)
	assert.InDelta(t, before.Elevation, after.Elevation, 1e-9)

	// Movement after release does nothing.
	r.ctl.MouseMove(600, 400)
	assert.Equal(t, after, r.cam.OrbitState())
}

func TestMiddleDragPans(t *testing.T) {
	r := newRig(t)
	before := r.cam.OrbitState().Target

	r.ctl.MouseButton(window.MouseMiddle, true, 300, 300)
	r.ctl.MouseMove(320, 300)
	r.ctl.MouseButton(window.MouseMiddle, false, 320, 300)

	assert.NotEqual(t, before, r.cam.OrbitState().Target)
}

func TestGizmoClickSelectsWithoutDragging(t *testing.T) {
	r := newRig(t)
	var picked []camera.AxisDirection
	r.gizmo.OnAxisSelected(func(a camera.AxisDirection) { picked = append(picked, a) })

	layout := r.gizmo.Layout()
	front := layout[len(layout)-1]
	before := r.cam.OrbitState()

	r.ctl.MouseButton(window.MouseLeft, true, front.X, front.Y)
	assert.False(t, r.ctl.Dragging())
	r.ctl.MouseMove(front.X+40, front.Y)

	assert.Equal(t, []camera.AxisDirection{front.Axis}, picked)
	assert.Equal(t, before, r.cam.OrbitState())
}

func TestScrollZooms(t *testing.T) {
	r := newRig(t)
	r.ctl.Scroll(2)
	assert.InDelta(t, 8.0, r.cam.OrbitState().Radius, 1e-9)
	r.ctl.Scroll(0)
	assert.InDelta(t, 8.0, r.cam.OrbitState().Radius, 1e-9)
}

func TestNumberKeysSelectAxes(t *testing.T) {
	r := newRig(t)
	var changes []state_store.Change
	r.store.Subscribe(func(c state_store.Change) { changes = append(changes, c) })

	r.ctl.KeyDown(common.Key3)
	assert.Equal(t, camera.AxisPosY, r.store.SelectedAxis())
	r.ctl.KeyDown(common.Key6)
	assert.Equal(t, camera.AxisNegZ, r.store.SelectedAxis())

	require.Len(t, changes, 2)
	assert.Equal(t, OriginKeyboard, changes[0].Origin)
}

func TestResetKeyRestoresHome(t *testing.T) {
	home := camera.OrbitState{Azimuth: 1, Elevation: math.Pi / 2, Radius: 5}
	r := newRig(t, WithHome(home))

	r.ctl.KeyDown(common.KeyW)
	r.ctl.KeyDown(common.KeyD)
	r.ctl.KeyDown(common.KeyR)
	assert.Equal(t, home, r.cam.OrbitState())
}

func TestNilCollaborators(t *testing.T) {
	assert.Panics(t, func() { NewControls(nil, nil, nil) })

	cam := camera.NewOrbitCamera()
	ctl := NewControls(cam, nil, nil)
	ctl.KeyDown(common.Key1)
	ctl.MouseButton(window.MouseLeft, true, 0, 0)
	assert.True(t, ctl.Dragging())
	ctl.Bind(nil)
}
