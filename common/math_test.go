package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}

func TestLerpVec3(t *testing.T) {
	got := LerpVec3(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 4, -2}, 0.5)
	assert.True(t, got.ApproxEqual(mgl64.Vec3{1, 2, -1}))
}

func TestFloorMod(t *testing.T) {
	assert.InDelta(t, 1.0, FloorMod(-3, 4), 1e-12)
	assert.InDelta(t, 3.0, FloorMod(7, 4), 1e-12)
	assert.Equal(t, 0.0, FloorMod(8, 4))
}

func TestShortestAngleDelta(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     float64
	}{
		{"zero", 0, 0, 0},
		{"quarter turn", 0, math.Pi / 2, math.Pi / 2},
		{"negative quarter", math.Pi / 2, 0, -math.Pi / 2},
		{"across the seam", 3 * math.Pi / 4, -3 * math.Pi / 4, math.Pi / 2},
		{"across the seam backwards", -3 * math.Pi / 4, 3 * math.Pi / 4, -math.Pi / 2},
		{"full turns ignored", 0, 4*math.Pi + 0.1, 0.1},
		{"half turn", 0, math.Pi, -math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ShortestAngleDelta(tt.from, tt.to), 1e-9)
		})
	}
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, -math.Pi/2, WrapAngle(3*math.Pi/2), 1e-12)
	assert.InDelta(t, 0.25, WrapAngle(0.25+TwoPi*3), 1e-9)
	assert.True(t, AngleClose(math.Pi-1e-6, -math.Pi+1e-6, 1e-4))
	assert.False(t, AngleClose(0, 0.1, 1e-3))
}
