package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float64: v limited to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t. t is not clamped.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - float64: the interpolated value
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates each component of a and b by t.
//
// Parameters:
//   - a: vector at t = 0
//   - b: vector at t = 1
//   - t: interpolation factor
//
// Returns:
//   - mgl64.Vec3: the interpolated vector
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// FloorMod returns x modulo m with the sign of m, unlike math.Mod which keeps the sign of x.
//
// Parameters:
//   - x: dividend
//   - m: divisor (must be non-zero)
//
// Returns:
//   - float64: the remainder in [0, m) for positive m
func FloorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}

// WrapAngle maps an angle into [-π, π).
//
// Parameters:
//   - a: angle in radians
//
// Returns:
//   - float64: the equivalent angle in [-π, π)
func WrapAngle(a float64) float64 {
	return FloorMod(a+math.Pi, TwoPi) - math.Pi
}

// ShortestAngleDelta returns the signed rotation that takes from to to along the shorter arc.
// The result lies in [-π, π); exactly opposite angles resolve to -π.
//
// Parameters:
//   - from: starting angle in radians
//   - to: destination angle in radians
//
// Returns:
//   - float64: signed delta in radians
func ShortestAngleDelta(from, to float64) float64 {
	return FloorMod(to-from+math.Pi, TwoPi) - math.Pi
}

// AngleClose reports whether two angles are within tolerance of each other on the circle.
//
// Parameters:
//   - a, b: angles in radians
//   - tolerance: maximum allowed separation in radians
//
// Returns:
//   - bool: true if the angles are close
func AngleClose(a, b, tolerance float64) bool {
	return math.Abs(ShortestAngleDelta(a, b)) <= tolerance
}
