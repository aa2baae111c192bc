package camera

import (
	"fmt"
	"math"
	"strings"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// AxisDirection names one of the six canonical views offered by the orientation gizmo.
// The view for an axis places the camera on that axis looking back at the target.
type AxisDirection int

const (
	AxisNone AxisDirection = iota
	AxisPosX
	AxisNegX
	AxisPosY
	AxisNegY
	AxisPosZ
	AxisNegZ
)

// axisOrbits is the canonical (azimuth, elevation) pair per axis.
var axisOrbits = map[AxisDirection][2]float64{
	AxisPosX: {math.Pi / 2, math.Pi / 2},
	AxisNegX: {-math.Pi / 2, math.Pi / 2},
	AxisPosY: {0, PoleEpsilon},
	AxisNegY: {0, math.Pi - PoleEpsilon},
	AxisPosZ: {0, math.Pi / 2},
	AxisNegZ: {math.Pi, math.Pi / 2},
}

var axisNames = map[AxisDirection]string{
	AxisNone: "none",
	AxisPosX: "+X",
	AxisNegX: "-X",
	AxisPosY: "+Y",
	AxisNegY: "-Y",
	AxisPosZ: "+Z",
	AxisNegZ: "-Z",
}

// AllAxes returns the six selectable axes in a stable order.
func AllAxes() []AxisDirection {
	return []AxisDirection{AxisPosX, AxisNegX, AxisPosY, AxisNegY, AxisPosZ, AxisNegZ}
}

// Valid reports whether a is one of the six selectable axes.
func (a AxisDirection) Valid() bool {
	_, ok := axisOrbits[a]
	return ok
}

func (a AxisDirection) String() string {
	if name, ok := axisNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AxisDirection(%d)", int(a))
}

// Vector returns the world-space unit vector of the axis, or the zero vector for AxisNone.
func (a AxisDirection) Vector() [3]float64 {
	switch a {
	case AxisPosX:
		return [3]float64{1, 0, 0}
	case AxisNegX:
		return [3]float64{-1, 0, 0}
	case AxisPosY:
		return [3]float64{0, 1, 0}
	case AxisNegY:
		return [3]float64{0, -1, 0}
	case AxisPosZ:
		return [3]float64{0, 0, 1}
	case AxisNegZ:
		return [3]float64{0, 0, -1}
	}
	return [3]float64{}
}

// ParseAxis parses "+X", "x", "-y", "none" and similar spellings.
//
// Parameters:
//   - s: the axis name
//
// Returns:
//   - AxisDirection: the parsed axis
//   - error: non-nil if s names no axis
func ParseAxis(s string) (AxisDirection, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(norm, "+") && !strings.HasPrefix(norm, "-") && len(norm) == 1 {
		norm = "+" + norm
	}
	for axis, name := range axisNames {
		if strings.ToUpper(name) == norm {
			return axis, nil
		}
	}
	return AxisNone, fmt.Errorf("unknown axis %q", s)
}

// AxisOrbit returns the canonical azimuth and elevation for axis.
//
// Parameters:
//   - axis: one of the six selectable axes
//
// Returns:
//   - azimuth, elevation: radians
//   - ok: false for AxisNone or an unknown value
func AxisOrbit(axis AxisDirection) (azimuth, elevation float64, ok bool) {
	pair, ok := axisOrbits[axis]
	return pair[0], pair[1], ok
}

// TargetStateFor returns the canonical orbit for axis at the radius and target of current.
//
// Parameters:
//   - axis: the requested view
//   - current: supplies radius and target
//
// Returns:
//   - OrbitState: the canonical state
//   - bool: false if axis is not selectable
func TargetStateFor(axis AxisDirection, current OrbitState) (OrbitState, bool) {
	az, el, ok := AxisOrbit(axis)
	if !ok {
		return current, false
	}
	return OrbitState{
		Azimuth:   az,
		Elevation: el,
		Radius:    current.Radius,
		Target:    current.Target,
	}, true
}

// MatchesAxis reports whether s is looking along axis within tolerance radians.
// Near the poles azimuth is irrelevant and only elevation is compared.
func MatchesAxis(s OrbitState, axis AxisDirection, tolerance float64) bool {
	az, el, ok := AxisOrbit(axis)
	if !ok {
		return false
	}
	if math.Abs(s.Elevation-el) > tolerance {
		return false
	}
	if axis == AxisPosY || axis == AxisNegY {
		return true
	}
	return common.AngleClose(s.Azimuth, az, tolerance)
}
