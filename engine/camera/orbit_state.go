package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl64"
)

// PoleEpsilon is the smallest distance, in radians, an elevation may approach either pole.
// Elevation 0 or π would make the view direction parallel to the world up axis.
const PoleEpsilon = 1e-4

// ErrInvalidOrbit is returned by OrbitState.Validate for states outside the legal range.
var ErrInvalidOrbit = errors.New("invalid orbit state")

// OrbitState describes a camera by spherical coordinates around a look-at target.
//
// Azimuth is the angle around the world Y axis measured from +Z toward +X.
// Elevation is the polar angle measured from +Y, strictly inside (0, π).
// Radius is the distance from Target and must be positive.
type OrbitState struct {
	Azimuth   float64
	Elevation float64
	Radius    float64
	Target    mgl64.Vec3
}

// Validate reports whether the state satisfies the orbit invariants.
//
// Returns:
//   - error: wraps ErrInvalidOrbit when elevation or radius is out of range, nil otherwise
func (s OrbitState) Validate() error {
	if math.IsNaN(s.Azimuth) || math.IsInf(s.Azimuth, 0) {
		return fmt.Errorf("%w: azimuth %v is not finite", ErrInvalidOrbit, s.Azimuth)
	}
	if !(s.Elevation > 0 && s.Elevation < math.Pi) {
		return fmt.Errorf("%w: elevation %v outside (0, π)", ErrInvalidOrbit, s.Elevation)
	}
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("%w: radius %v must be positive", ErrInvalidOrbit, s.Radius)
	}
	return nil
}

// Clamped returns a copy with elevation pulled inside [PoleEpsilon, π-PoleEpsilon]
// and radius raised to at least minRadius.
//
// Parameters:
//   - minRadius: smallest radius to allow (values <= 0 fall back to PoleEpsilon)
//
// Returns:
//   - OrbitState: the clamped copy
func (s OrbitState) Clamped(minRadius float64) OrbitState {
	if minRadius <= 0 {
		minRadius = PoleEpsilon
	}
	s.Elevation = common.Clamp(s.Elevation, PoleEpsilon, math.Pi-PoleEpsilon)
	if !(s.Radius >= minRadius) {
		s.Radius = minRadius
	}
	return s
}

// Direction returns the unit vector pointing from the target toward the camera.
func (s OrbitState) Direction() mgl64.Vec3 {
	sinE, cosE := math.Sincos(s.Elevation)
	sinA, cosA := math.Sincos(s.Azimuth)
	return mgl64.Vec3{sinE * sinA, cosE, sinE * cosA}
}

// Position returns the camera's world-space position.
func (s OrbitState) Position() mgl64.Vec3 {
	return s.Target.Add(s.Direction().Mul(s.Radius))
}

// Up returns the camera's up vector, tangent to the orbit sphere along increasing height.
// Unlike the world up axis it never becomes parallel to the view direction.
func (s OrbitState) Up() mgl64.Vec3 {
	sinE, cosE := math.Sincos(s.Elevation)
	sinA, cosA := math.Sincos(s.Azimuth)
	return mgl64.Vec3{-cosE * sinA, sinE, -cosE * cosA}
}

// Right returns the camera's local right vector.
func (s OrbitState) Right() mgl64.Vec3 {
	sinA, cosA := math.Sincos(s.Azimuth)
	return mgl64.Vec3{cosA, 0, -sinA}
}

// ViewMatrix returns the world-to-view matrix for this orbit.
func (s OrbitState) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(s.Position(), s.Target, s.Up())
}

// ApproxEqual reports whether two states match within tolerance. Azimuths are compared
// on the circle, so 0 and 2π are equal.
//
// Parameters:
//   - o: the state to compare with
//   - tolerance: absolute tolerance for every component
//
// Returns:
//   - bool: true if all components are within tolerance
func (s OrbitState) ApproxEqual(o OrbitState, tolerance float64) bool {
	return common.AngleClose(s.Azimuth, o.Azimuth, tolerance) &&
		math.Abs(s.Elevation-o.Elevation) <= tolerance &&
		math.Abs(s.Radius-o.Radius) <= tolerance &&
		s.Target.ApproxEqualThreshold(o.Target, tolerance)
}

func (s OrbitState) String() string {
	return fmt.Sprintf("orbit(az=%.4f el=%.4f r=%.4f target=[%.3f %.3f %.3f])",
		s.Azimuth, s.Elevation, s.Radius, s.Target[0], s.Target[1], s.Target[2])
}
