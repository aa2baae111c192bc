package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"go.uber.org/zap"
)

// Renderer presents the viewer's frames. It clears the window to a background colour that
// tints toward a highlight while the camera is being animated.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: non-nil if the backend rejected the size
	Resize(width, height int) error

	// SetClearColor sets the idle background colour.
	//
	// Parameters:
	//   - c: the colour
	SetClearColor(c Color)

	// SetAnimating fades between the idle and the animating background over the next frames.
	//
	// Parameters:
	//   - animating: true while a camera transition runs
	SetAnimating(animating bool)

	// CurrentColor returns the colour the next frame will be cleared to.
	CurrentColor() Color

	// Frame clears and presents one frame. Backend failures are logged and counted; a
	// failing frame never stops the loop.
	Frame()

	// Stats returns how many frames were presented and how many failed.
	Stats() (presented, failed uint64)

	// Release frees the backend.
	Release()
}

type renderer struct {
	mu      *sync.Mutex
	backend RendererBackend
	logger  *zap.Logger

	clearColor     Color
	animatingColor Color
	animating      bool
	// tint moves toward 1 while animating and back to 0 afterwards, fadeStep per frame.
	tint     float64
	fadeStep float64

	presented uint64
	failed    uint64

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU renderer presenting to win.
//
// Parameters:
//   - win: the window whose surface is drawn to
//   - options: functional options to further configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: non-nil if no GPU adapter or device is available
func NewRenderer(win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)
	backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter)
	if err != nil {
		return nil, err
	}
	if err := r.attach(backend, win.Width(), win.Height()); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:             &sync.Mutex{},
		logger:         zap.NewNop(),
		clearColor:     Color{R: 0.08, G: 0.09, B: 0.11, A: 1},
		animatingColor: Color{R: 0.12, G: 0.16, B: 0.24, A: 1},
		fadeStep:       0.2,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *renderer) attach(backend RendererBackend, width, height int) error {
	r.backend = backend
	if r.pendingPresentMode != nil {
		backend.SetPresentMode(*r.pendingPresentMode)
	}
	if err := backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("renderer: configure surface: %w", err)
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("renderer: resize: %w", err)
	}
	r.logger.Debug("surface resized", zap.Int("width", width), zap.Int("height", height))
	return nil
}

func (r *renderer) SetClearColor(c Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) SetAnimating(animating bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.animating = animating
}

func (r *renderer) CurrentColor() Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Blend(r.clearColor, r.animatingColor, r.tint)
}

func (r *renderer) stepTint() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.animating {
		r.tint = common.Clamp(r.tint+r.fadeStep, 0, 1)
	} else {
		r.tint = common.Clamp(r.tint-r.fadeStep, 0, 1)
	}
}

func (r *renderer) Frame() {
	r.stepTint()
	c := r.CurrentColor()
	if err := r.backend.ClearFrame(c); err != nil {
		r.mu.Lock()
		r.failed++
		failed := r.failed
		r.mu.Unlock()
		// Surface loss during resize is routine; only the first few are worth a line.
		if failed <= 3 {
			r.logger.Warn("frame dropped", zap.Error(err), zap.Uint64("failed", failed))
		}
		return
	}
	r.mu.Lock()
	r.presented++
	r.mu.Unlock()
}

func (r *renderer) Stats() (presented, failed uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presented, r.failed
}

func (r *renderer) Release() {
	if r.backend != nil {
		r.backend.Release()
	}
}

// Blend mixes a toward b by t in [0, 1].
func Blend(a, b Color, t float64) Color {
	t = common.Clamp(t, 0, 1)
	return Color{
		R: common.Lerp(a.R, b.R, t),
		G: common.Lerp(a.G, b.G, t),
		B: common.Lerp(a.B, b.B, t),
		A: common.Lerp(a.A, b.A, t),
	}
}
