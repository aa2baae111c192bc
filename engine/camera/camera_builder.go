package camera

import (
	"github.com/go-gl/mathgl/mgl64"
)

// OrbitCameraOption is a functional option for configuring an OrbitCamera.
type OrbitCameraOption func(*orbitCameraImpl)

// WithOrbitState sets the initial orbit parameters.
//
// Parameters:
//   - state: the initial orbit (clamped to the camera's bounds)
//
// Returns:
//   - OrbitCameraOption: functional option to set the orbit
func WithOrbitState(state OrbitState) OrbitCameraOption {
	return func(c *orbitCameraImpl) {
		c.state = state
	}
}

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - OrbitCameraOption: functional option to set the target
func WithTarget(x, y, z float64) OrbitCameraOption {
	return func(c *orbitCameraImpl) {
		c.state.Target = mgl64.Vec3{x, y, z}
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitCameraOption: functional option to set radius bounds
func WithRadiusBounds(min, max float64) OrbitCameraOption {
	return func(c *orbitCameraImpl) {
		c.minRadius = min
		c.maxRadius = max
	}
}

// WithMouseSensitivity sets the orbit radians per dragged pixel.
//
// Parameters:
//   - sensitivity: multiplier for mouse movement
//
// Returns:
//   - OrbitCameraOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float64) OrbitCameraOption {
	return func(c *orbitCameraImpl) {
		c.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - OrbitCameraOption: functional option to set zoom speed
func WithZoomSpeed(speed float64) OrbitCameraOption {
	return func(c *orbitCameraImpl) {
		c.zoomSpeed = speed
	}
}

// WithPanSpeed sets the pan speed multiplier (fraction of the radius per unit of input).
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - OrbitCameraOption: functional option to set pan speed
func WithPanSpeed(speed float64) OrbitCameraOption {
	return func(c *orbitCameraImpl) {
		c.panSpeed = speed
	}
}

// WithPerspective sets the projection parameters.
//
// Parameters:
//   - fov: vertical field of view in radians
//   - aspect: width / height
//   - near, far: clipping plane distances
//
// Returns:
//   - OrbitCameraOption: functional option to set the projection
func WithPerspective(fov, aspect, near, far float64) OrbitCameraOption {
	return func(c *orbitCameraImpl) {
		c.fov = fov
		c.aspect = aspect
		c.near = near
		c.far = far
	}
}

// WithOrbitSupport toggles orbit control. A camera built with WithOrbitSupport(false) is a
// fixed camera: it reports SupportsOrbit() == false and ignores orbit changes.
//
// Parameters:
//   - enabled: whether the camera accepts orbit parameters
//
// Returns:
//   - OrbitCameraOption: functional option to set orbit support
func WithOrbitSupport(enabled bool) OrbitCameraOption {
	return func(c *orbitCameraImpl) {
		c.supportsOrbit = enabled
	}
}
