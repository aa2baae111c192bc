package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is the minimal capability interface the synchronization engine depends on.
// Any camera type can participate as long as it can report and accept orbit parameters.
type Camera interface {
	// OrbitState returns the camera's current orbit parameters.
	//
	// Returns:
	//   - OrbitState: the current orbit
	OrbitState() OrbitState

	// SetOrbitState moves the camera to the given orbit and emits a moved notification.
	// Ignored once the camera is disposed.
	//
	// Parameters:
	//   - state: the new orbit parameters
	SetOrbitState(state OrbitState)

	// OnMoved registers a callback fired after every change to the camera's orbit.
	//
	// Parameters:
	//   - callback: the function to call
	//
	// Returns:
	//   - func(): removes the callback
	OnMoved(callback func()) (unsubscribe func())

	// SupportsOrbit reports whether the camera can be driven by orbit parameters.
	//
	// Returns:
	//   - bool: true if orbit control is supported
	SupportsOrbit() bool

	// IsDisposed reports whether the camera has been released.
	//
	// Returns:
	//   - bool: true after Dispose
	IsDisposed() bool
}

// OrbitCamera is the viewer's concrete camera. On top of the Camera capability it offers
// the user-facing controls (orbit drag, zoom, pan) and view/projection matrices.
type OrbitCamera interface {
	Camera

	// Orbit rotates the camera around the target. Elevation stops just short of the poles.
	//
	// Parameters:
	//   - dAzimuth: change in azimuth in radians
	//   - dElevation: change in elevation in radians (positive moves toward +Y)
	Orbit(dAzimuth, dElevation float64)

	// Drag converts a mouse movement in pixels to an orbit step using MouseSensitivity.
	//
	// Parameters:
	//   - dx, dy: cursor movement in pixels
	Drag(dx, dy float64)

	// Zoom adjusts the orbit radius. Positive delta moves closer to the target.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float64)

	// Pan translates the target (and camera) along the local right and up axes.
	//
	// Parameters:
	//   - dx: movement along the right axis, scaled by PanSpeed
	//   - dy: movement along the up axis, scaled by PanSpeed
	Pan(dx, dy float64)

	// Position returns the camera's world-space position.
	Position() mgl64.Vec3

	// ViewMatrix returns the current world-to-view matrix.
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the perspective projection for the current aspect ratio.
	ProjectionMatrix() mgl64.Mat4

	// SetAspect sets the aspect ratio (width / height).
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float64)

	// MouseSensitivity returns the radians of orbit per pixel of drag.
	MouseSensitivity() float64

	// Configure applies options to a live camera, then re-clamps the orbit to the resulting
	// bounds. Listeners are notified only if the orbit changed. Ignored once disposed.
	//
	// Parameters:
	//   - options: the same options accepted by NewOrbitCamera
	Configure(options ...OrbitCameraOption)

	// Dispose releases the camera. Subsequent orbit changes are ignored and IsDisposed reports true.
	Dispose()
}

type orbitCameraImpl struct {
	mu *sync.Mutex

	state OrbitState

	// Orbit constraints
	minRadius float64
	maxRadius float64

	// Control speeds
	mouseSensitivity float64
	zoomSpeed        float64
	panSpeed         float64

	// Perspective settings
	fov    float64
	aspect float64
	near   float64
	far    float64

	supportsOrbit bool
	disposed      bool

	moved common.Listeners[struct{}]
}

var _ OrbitCamera = &orbitCameraImpl{}

// NewOrbitCamera creates a camera orbiting the origin with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - OrbitCamera: the newly created camera
func NewOrbitCamera(options ...OrbitCameraOption) OrbitCamera {
	c := &orbitCameraImpl{
		mu: &sync.Mutex{},
		state: OrbitState{
			Azimuth:   math.Pi / 4,
			Elevation: math.Pi / 3,
			Radius:    10,
		},
		minRadius:        0.01,
		maxRadius:        1e6,
		mouseSensitivity: 0.005,
		zoomSpeed:        1.0,
		panSpeed:         0.01,
		fov:              45.0 * (math.Pi / 180.0),
		aspect:           1.0,
		near:             0.1,
		far:              1000.0,
		supportsOrbit:    true,
	}
	for _, option := range options {
		option(c)
	}
	c.state = c.constrain(c.state)
	return c
}

// constrain keeps elevation off the poles and radius inside the configured bounds. Elevation
// limits are fixed so every canonical axis view stays reachable.
// Caller must hold the mutex (or be the constructor).
func (c *orbitCameraImpl) constrain(s OrbitState) OrbitState {
	s = s.Clamped(c.minRadius)
	s.Radius = math.Min(s.Radius, c.maxRadius)
	return s
}

// update applies fn to the orbit under the lock and notifies listeners afterwards.
// Listeners run without the lock held so they may read the camera.
func (c *orbitCameraImpl) update(fn func(s OrbitState) OrbitState) {
	c.mu.Lock()
	if c.disposed || !c.supportsOrbit {
		c.mu.Unlock()
		return
	}
	c.state = c.constrain(fn(c.state))
	c.mu.Unlock()

	c.moved.Notify(struct{}{})
}

func (c *orbitCameraImpl) OrbitState() OrbitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *orbitCameraImpl) SetOrbitState(state OrbitState) {
	c.update(func(OrbitState) OrbitState { return state })
}

func (c *orbitCameraImpl) OnMoved(callback func()) func() {
	if callback == nil {
		return func() {}
	}
	return c.moved.Add(func(struct{}) { callback() })
}

func (c *orbitCameraImpl) SupportsOrbit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.supportsOrbit
}

func (c *orbitCameraImpl) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

func (c *orbitCameraImpl) Orbit(dAzimuth, dElevation float64) {
	c.update(func(s OrbitState) OrbitState {
		s.Azimuth = common.WrapAngle(s.Azimuth + dAzimuth)
		s.Elevation -= dElevation
		return s
	})
}

func (c *orbitCameraImpl) Drag(dx, dy float64) {
	sens := c.MouseSensitivity()
	c.Orbit(-dx*sens, dy*sens)
}

func (c *orbitCameraImpl) Zoom(delta float64) {
	c.update(func(s OrbitState) OrbitState {
		s.Radius -= delta * c.zoomSpeed
		return s
	})
}

func (c *orbitCameraImpl) Pan(dx, dy float64) {
	c.update(func(s OrbitState) OrbitState {
		// Scale by radius so panning feels the same at every zoom level.
		scale := c.panSpeed * s.Radius
		offset := s.Right().Mul(dx * scale).Add(s.Up().Mul(dy * scale))
		s.Target = s.Target.Add(offset)
		return s
	})
}

func (c *orbitCameraImpl) Position() mgl64.Vec3 {
	return c.OrbitState().Position()
}

func (c *orbitCameraImpl) ViewMatrix() mgl64.Mat4 {
	return c.OrbitState().ViewMatrix()
}

func (c *orbitCameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl64.Perspective(c.fov, c.aspect, c.near, c.far)
}

func (c *orbitCameraImpl) SetAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *orbitCameraImpl) MouseSensitivity() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mouseSensitivity
}

func (c *orbitCameraImpl) Configure(options ...OrbitCameraOption) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	before := c.state
	for _, option := range options {
		option(c)
	}
	c.state = c.constrain(c.state)
	changed := c.state != before
	c.mu.Unlock()

	if changed {
		c.moved.Notify(struct{}{})
	}
}

func (c *orbitCameraImpl) Dispose() {
	c.mu.Lock()
	c.disposed = true
	c.mu.Unlock()
	c.moved.Clear()
}
