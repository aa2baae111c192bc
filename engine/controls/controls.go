package controls

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-orbit/engine/state_store"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"go.uber.org/zap"
)

// OriginKeyboard tags store writes made by the number-key shortcuts.
const OriginKeyboard = state_store.OriginExternal

// axisKeys maps the number row to the six axis views.
var axisKeys = map[uint32]camera.AxisDirection{
	common.Key1: camera.AxisPosX,
	common.Key2: camera.AxisNegX,
	common.Key3: camera.AxisPosY,
	common.Key4: camera.AxisNegY,
	common.Key5: camera.AxisPosZ,
	common.Key6: camera.AxisNegZ,
}

// Controls translates raw window input into camera and gizmo actions:
//   - left click on a gizmo handle selects that axis
//   - left drag anywhere else orbits the camera
//   - middle drag pans
//   - scroll zooms
//   - 1-6 select an axis through the shared store
//   - WASD pans one step per key press
//   - R returns the camera to its home orbit
type Controls interface {
	// Bind routes win's input callbacks to this Controls.
	//
	// Parameters:
	//   - win: the window to take input from
	Bind(win window.Window)

	// MouseButton handles a button press or release at the cursor position.
	//
	// Parameters:
	//   - button: which button changed
	//   - down: true on press, false on release
	//   - x, y: cursor position in pixels
	MouseButton(button window.MouseButton, down bool, x, y float64)

	// MouseMove handles cursor movement.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	MouseMove(x, y float64)

	// Scroll handles wheel movement.
	//
	// Parameters:
	//   - delta: wheel steps, positive away from the user
	Scroll(delta float64)

	// KeyDown handles a key press.
	//
	// Parameters:
	//   - keyCode: the GLFW key code
	KeyDown(keyCode uint32)

	// Dragging reports whether a drag is in progress.
	Dragging() bool
}

type dragMode int

const (
	dragNone dragMode = iota
	dragOrbit
	dragPan
)

type controlsImpl struct {
	cam    camera.OrbitCamera
	gizmo  gizmo.Gizmo
	store  state_store.Store
	logger *zap.Logger

	home       camera.OrbitState
	panStep    float64
	pixelToPan float64

	mode         dragMode
	lastX, lastY float64
}

var _ Controls = &controlsImpl{}

// NewControls creates Controls for cam. The camera's orbit at construction time becomes the
// home orbit restored by R.
//
// Parameters:
//   - cam: the camera to drive (required)
//   - g: the gizmo that receives clicks (may be nil)
//   - store: the store that receives keyboard axis selections (may be nil)
//   - options: functional options to further configure the controls
//
// Returns:
//   - Controls: the controls
func NewControls(cam camera.OrbitCamera, g gizmo.Gizmo, store state_store.Store, options ...ControlsBuilderOption) Controls {
	if cam == nil {
		panic("controls: camera is required")
	}
	c := &controlsImpl{
		cam:        cam,
		gizmo:      g,
		store:      store,
		logger:     zap.NewNop(),
		home:       cam.OrbitState(),
		panStep:    0.05,
		pixelToPan: 0.002,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controlsImpl) Bind(win window.Window) {
	if win == nil {
		return
	}
	win.SetMouseButtonCallback(c.MouseButton)
	win.SetMouseMoveCallback(c.MouseMove)
	win.SetScrollCallback(c.Scroll)
	win.SetKeyDownCallback(c.KeyDown)
}

func (c *controlsImpl) MouseButton(button window.MouseButton, down bool, x, y float64) {
	if !down {
		c.mode = dragNone
		return
	}
	switch button {
	case window.MouseLeft:
		if c.gizmo != nil {
			if axis, ok := c.gizmo.Pick(x, y); ok {
				c.logger.Debug("gizmo click", zap.Stringer("axis", axis))
				return
			}
		}
		c.mode = dragOrbit
	case window.MouseMiddle:
		c.mode = dragPan
	default:
		return
	}
	c.lastX, c.lastY = x, y
}

func (c *controlsImpl) MouseMove(x, y float64) {
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	switch c.mode {
	case dragOrbit:
		c.cam.Drag(dx, dy)
	case dragPan:
		// Screen y grows downward.
		c.cam.Pan(-dx*c.pixelToPan, dy*c.pixelToPan)
	}
}

func (c *controlsImpl) Scroll(delta float64) {
	if delta == 0 {
		return
	}
	c.cam.Zoom(delta)
}

func (c *controlsImpl) KeyDown(keyCode uint32) {
	if axis, ok := axisKeys[keyCode]; ok {
		if c.store != nil {
			c.store.SetSelectedAxis(axis, OriginKeyboard)
		}
		return
	}
	switch keyCode {
	case common.KeyW:
		c.cam.Pan(0, c.panStep)
	case common.KeyS:
		c.cam.Pan(0, -c.panStep)
	case common.KeyA:
		c.cam.Pan(-c.panStep, 0)
	case common.KeyD:
		c.cam.Pan(c.panStep, 0)
	case common.KeyR:
		c.cam.SetOrbitState(c.home)
	}
}

func (c *controlsImpl) Dragging() bool {
	return c.mode != dragNone
}
