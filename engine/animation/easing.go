package animation

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// Easing selects the timing curve applied to animation progress. The zero value means
// "not set" and samples like EasingLinear.
type Easing int

const (
	EasingLinear Easing = iota + 1
	EasingQuadratic
	EasingCubic
)

// Apply maps linear progress t to eased progress. t is clamped to [0, 1]; every curve
// satisfies Apply(0) == 0 and Apply(1) == 1 and is monotone. Quadratic and cubic are the
// ease-in-out forms.
//
// Parameters:
//   - t: linear progress
//
// Returns:
//   - float64: eased progress in [0, 1]
func (e Easing) Apply(t float64) float64 {
	t = common.Clamp(t, 0, 1)
	switch e {
	case EasingQuadratic:
		if t < 0.5 {
			return 2 * t * t
		}
		u := -2*t + 2
		return 1 - u*u/2
	case EasingCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	default:
		return t
	}
}

// Valid reports whether e is a known curve.
func (e Easing) Valid() bool {
	return e >= EasingLinear && e <= EasingCubic
}

func (e Easing) String() string {
	switch e {
	case EasingLinear:
		return "linear"
	case EasingQuadratic:
		return "quadratic"
	case EasingCubic:
		return "cubic"
	}
	return fmt.Sprintf("Easing(%d)", int(e))
}

// ParseEasing parses "linear", "quadratic" or "cubic" (case-insensitive).
//
// Parameters:
//   - s: the curve name
//
// Returns:
//   - Easing: the parsed curve
//   - error: non-nil for an unknown name
func ParseEasing(s string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return EasingLinear, nil
	case "quadratic", "quad":
		return EasingQuadratic, nil
	case "cubic":
		return EasingCubic, nil
	}
	return EasingLinear, fmt.Errorf("unknown easing %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (e Easing) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("unknown easing %d", int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Easing) UnmarshalText(text []byte) error {
	parsed, err := ParseEasing(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
