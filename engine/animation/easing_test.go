package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingEndpointsAndMonotonic(t *testing.T) {
	for _, e := range []Easing{EasingLinear, EasingQuadratic, EasingCubic} {
		t.Run(e.String(), func(t *testing.T) {
			assert.Equal(t, 0.0, e.Apply(0))
			assert.InDelta(t, 1.0, e.Apply(1), 1e-12)
			assert.InDelta(t, 0.5, e.Apply(0.5), 1e-12, "ease-in-out curves are symmetric")
			assert.Equal(t, 0.0, e.Apply(-1), "clamped below")
			assert.InDelta(t, 1.0, e.Apply(2), 1e-12, "clamped above")

			prev := 0.0
			for i := 1; i <= 100; i++ {
				v := e.Apply(float64(i) / 100)
				assert.GreaterOrEqual(t, v, prev)
				prev = v
			}
		})
	}
}

func TestEasingShapes(t *testing.T) {
	assert.InDelta(t, 0.25, EasingLinear.Apply(0.25), 1e-12)
	assert.InDelta(t, 0.125, EasingQuadratic.Apply(0.25), 1e-12)
	assert.InDelta(t, 0.0625, EasingCubic.Apply(0.25), 1e-12)
}

func TestParseEasing(t *testing.T) {
	e, err := ParseEasing(" Cubic ")
	require.NoError(t, err)
	assert.Equal(t, EasingCubic, e)

	_, err = ParseEasing("bounce")
	assert.Error(t, err)

	var u Easing
	require.NoError(t, u.UnmarshalText([]byte("quadratic")))
	assert.Equal(t, EasingQuadratic, u)
	text, err := u.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "quadratic", string(text))
	assert.False(t, Easing(9).Valid())
	assert.False(t, Easing(0).Valid(), "zero value is unset")
}
