package gizmo

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

var (
	// ErrCameraRequired is returned by Initialize when no camera is given.
	ErrCameraRequired = errors.New("gizmo: camera is required")
	// ErrCameraNotSupported is returned by Initialize for a camera without orbit support.
	ErrCameraNotSupported = errors.New("gizmo: camera does not support orbit control")
	// ErrDisposed is returned by Initialize after Dispose.
	ErrDisposed = errors.New("gizmo: widget disposed")
)

// Widget is the capability interface of an orientation indicator. It renders its glyph from
// orbit parameters and reports axis selections made by the user.
type Widget interface {
	// Initialize binds the widget to a camera and takes its current orientation.
	//
	// Parameters:
	//   - cam: the camera whose orientation the widget mirrors
	//
	// Returns:
	//   - error: non-nil if the camera cannot be used
	Initialize(cam camera.Camera) error

	// SetOrientation redraws the glyph for the given orbit.
	//
	// Parameters:
	//   - state: the orbit to depict
	SetOrientation(state camera.OrbitState)

	// OnAxisSelected registers a callback fired when the user picks an axis.
	//
	// Parameters:
	//   - callback: receives the picked axis
	//
	// Returns:
	//   - func(): removes the callback
	OnAxisSelected(callback func(camera.AxisDirection)) (unsubscribe func())

	// Dispose releases the widget and drops every callback.
	Dispose()
}

// AxisHandle is one clickable axis end of the glyph, in window pixel coordinates.
type AxisHandle struct {
	Axis camera.AxisDirection
	X, Y float64
	// Depth is the handle's distance toward the viewer in [-1, 1]; larger is in front.
	Depth float64
}

// Gizmo is the viewer's orientation widget. It keeps the projected layout of six axis
// handles inside a square viewport and hit-tests clicks against them. Painting the layout
// is left to the renderer.
type Gizmo interface {
	Widget

	// Pick hit-tests a click at window coordinates and, on a hit, notifies selection callbacks.
	// When handles overlap the front-most one wins.
	//
	// Parameters:
	//   - x, y: click position in pixels
	//
	// Returns:
	//   - camera.AxisDirection: the picked axis (AxisNone on a miss)
	//   - bool: true on a hit
	Pick(x, y float64) (camera.AxisDirection, bool)

	// Select notifies selection callbacks as if axis had been clicked.
	//
	// Parameters:
	//   - axis: the axis to select
	//
	// Returns:
	//   - bool: false for an invalid axis or a disposed widget
	Select(axis camera.AxisDirection) bool

	// Layout returns the handles sorted back to front.
	Layout() []AxisHandle

	// Orientation returns the orbit currently depicted.
	Orientation() camera.OrbitState

	// Redraws returns how many times the glyph layout was recomputed.
	Redraws() int

	// SetViewport moves the gizmo's square viewport.
	//
	// Parameters:
	//   - x, y: top-left corner in pixels
	//   - size: edge length in pixels
	SetViewport(x, y, size float64)

	// SetHitRadius changes how close, in pixels, a click must land to a handle.
	// Non-positive values are ignored.
	//
	// Parameters:
	//   - radius: the new hit radius
	SetHitRadius(radius float64)
}

type gizmoImpl struct {
	mu *sync.Mutex

	// viewport
	x, y, size float64
	// armFraction is the handle distance from the centre as a fraction of half the size.
	armFraction float64
	hitRadius   float64

	cam         camera.Camera
	orientation camera.OrbitState
	layout      []AxisHandle
	redraws     int
	disposed    bool

	selected common.Listeners[camera.AxisDirection]
	logger   *zap.Logger
}

var _ Gizmo = &gizmoImpl{}

// NewGizmo creates a Gizmo with a 96px viewport at the window origin.
//
// Parameters:
//   - options: functional options to configure the gizmo
//
// Returns:
//   - Gizmo: the newly created gizmo
func NewGizmo(options ...GizmoBuilderOption) Gizmo {
	g := &gizmoImpl{
		mu:          &sync.Mutex{},
		size:        96,
		armFraction: 0.75,
		hitRadius:   10,
		orientation: camera.OrbitState{Azimuth: 0, Elevation: math.Pi / 2, Radius: 1},
		logger:      zap.NewNop(),
	}
	for _, option := range options {
		option(g)
	}
	g.relayout()
	return g
}

func (g *gizmoImpl) Initialize(cam camera.Camera) error {
	if cam == nil {
		return ErrCameraRequired
	}
	if !cam.SupportsOrbit() {
		return ErrCameraNotSupported
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return ErrDisposed
	}
	g.cam = cam
	g.orientation = cam.OrbitState()
	g.relayout()
	return nil
}

func (g *gizmoImpl) SetOrientation(state camera.OrbitState) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return
	}
	g.orientation = state
	g.relayout()
}

// relayout projects the six axis handles for the current orientation.
// Caller must hold the mutex (or be the constructor).
func (g *gizmoImpl) relayout() {
	// Rotation-only view: the glyph sits at the origin and the eye on the unit sphere.
	view := mgl64.LookAtV(g.orientation.Direction(), mgl64.Vec3{}, g.orientation.Up())
	half := g.size / 2
	arm := half * g.armFraction
	cx, cy := g.x+half, g.y+half

	layout := make([]AxisHandle, 0, 6)
	for _, axis := range camera.AllAxes() {
		v := axis.Vector()
		p := view.Mul4x1(mgl64.Vec4{v[0], v[1], v[2], 0})
		layout = append(layout, AxisHandle{
			Axis:  axis,
			X:     cx + p.X()*arm,
			Y:     cy - p.Y()*arm,
			Depth: p.Z(),
		})
	}
	sort.SliceStable(layout, func(i, j int) bool { return layout[i].Depth < layout[j].Depth })
	g.layout = layout
	g.redraws++
}

func (g *gizmoImpl) OnAxisSelected(callback func(camera.AxisDirection)) func() {
	return g.selected.Add(callback)
}

func (g *gizmoImpl) Pick(x, y float64) (camera.AxisDirection, bool) {
	g.mu.Lock()
	if g.disposed {
		g.mu.Unlock()
		return camera.AxisNone, false
	}
	hit := camera.AxisNone
	r2 := g.hitRadius * g.hitRadius
	// Layout is back to front, so the last hit is the front-most.
	for _, h := range g.layout {
		dx, dy := x-h.X, y-h.Y
		if dx*dx+dy*dy <= r2 {
			hit = h.Axis
		}
	}
	g.mu.Unlock()

	if hit == camera.AxisNone {
		return camera.AxisNone, false
	}
	g.logger.Debug("gizmo axis picked", zap.Stringer("axis", hit))
	g.selected.Notify(hit)
	return hit, true
}

func (g *gizmoImpl) Select(axis camera.AxisDirection) bool {
	if !axis.Valid() {
		return false
	}
	g.mu.Lock()
	disposed := g.disposed
	g.mu.Unlock()
	if disposed {
		return false
	}
	g.selected.Notify(axis)
	return true
}

func (g *gizmoImpl) Layout() []AxisHandle {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]AxisHandle, len(g.layout))
	copy(out, g.layout)
	return out
}

func (g *gizmoImpl) Orientation() camera.OrbitState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.orientation
}

func (g *gizmoImpl) Redraws() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.redraws
}

func (g *gizmoImpl) SetViewport(x, y, size float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.x, g.y = x, y
	if size > 0 {
		g.size = size
	}
	g.relayout()
}

func (g *gizmoImpl) SetHitRadius(radius float64) {
	if radius <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hitRadius = radius
}

func (g *gizmoImpl) Dispose() {
	g.mu.Lock()
	g.disposed = true
	g.cam = nil
	g.mu.Unlock()
	g.selected.Clear()
}
