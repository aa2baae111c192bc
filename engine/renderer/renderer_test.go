package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeBackend struct {
	sizes    [][2]int
	mode     *PresentMode
	cleared  []Color
	clearErr error
	released bool
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("bad size")
	}
	f.sizes = append(f.sizes, [2]int{width, height})
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.mode = &mode }

func (f *fakeBackend) ClearFrame(c Color) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, c)
	return nil
}

func (f *fakeBackend) Release() { f.released = true }

func TestAttachConfiguresSurface(t *testing.T) {
	backend := &fakeBackend{}
	r := newRenderer(WithPresentMode(PresentModeUncapped))
	require.NoError(t, r.attach(backend, 800, 600))

	require.NotNil(t, backend.mode)
	assert.Equal(t, PresentModeUncapped, *backend.mode)
	assert.Equal(t, [][2]int{{800, 600}}, backend.sizes)

	assert.NoError(t, r.Resize(1024, 768))
	assert.Error(t, r.Resize(0, 768))
	assert.Len(t, backend.sizes, 2)

	r.Release()
	assert.True(t, backend.released)
}

func TestFrameUsesAnimatingTint(t *testing.T) {
	idle := Color{R: 0.1, A: 1}
	busy := Color{B: 0.9, A: 1}
	backend := &fakeBackend{}
	r := newRenderer(WithClearColor(idle), WithAnimatingColor(busy), WithFadeStep(1))
	require.NoError(t, r.attach(backend, 10, 10))

	r.Frame()
	r.SetAnimating(true)
	r.Frame()
	r.SetAnimating(false)
	r.SetClearColor(Color{G: 1, A: 1})
	r.Frame()

	assert.Equal(t, []Color{idle, busy, {G: 1, A: 1}}, backend.cleared)
	presented, failed := r.Stats()
	assert.Equal(t, uint64(3), presented)
	assert.Zero(t, failed)
}

func TestTintFades(t *testing.T) {
	backend := &fakeBackend{}
	r := newRenderer(WithClearColor(Color{A: 1}), WithAnimatingColor(Color{R: 1, A: 1}), WithFadeStep(0.5))
	require.NoError(t, r.attach(backend, 10, 10))

	r.SetAnimating(true)
	r.Frame()
	r.Frame()
	r.Frame()
	r.SetAnimating(false)
	r.Frame()

	require.Len(t, backend.cleared, 4)
	assert.InDelta(t, 0.5, backend.cleared[0].R, 1e-12)
	assert.InDelta(t, 1.0, backend.cleared[1].R, 1e-12)
	assert.InDelta(t, 1.0, backend.cleared[2].R, 1e-12, "capped")
	assert.InDelta(t, 0.5, backend.cleared[3].R, 1e-12)
}

func TestFrameFailuresAreLoggedAndCounted(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	backend := &fakeBackend{clearErr: errors.New("surface lost")}
	r := newRenderer(WithLogger(zap.New(core)))
	require.NoError(t, r.attach(backend, 10, 10))

	for range 5 {
		r.Frame()
	}
	_, failed := r.Stats()
	assert.Equal(t, uint64(5), failed)
	assert.Equal(t, 3, logs.FilterMessage("frame dropped").Len())
}

func TestBlend(t *testing.T) {
	got := Blend(Color{R: 0, A: 1}, Color{R: 1, A: 1}, 0.25)
	assert.InDelta(t, 0.25, got.R, 1e-12)
	assert.Equal(t, 1.0, got.A)
	assert.Equal(t, Color{R: 1, A: 1}, Blend(Color{}, Color{R: 1, A: 1}, 3))
}
