package renderer

import "go.uber.org/zap"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithForceFallbackAdapter requests the software adapter.
func WithForceFallbackAdapter(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the idle background colour.
func WithClearColor(c Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithAnimatingColor sets the background shown while the camera is animating.
func WithAnimatingColor(c Color) RendererBuilderOption {
	return func(r *renderer) {
		r.animatingColor = c
	}
}

// WithFadeStep sets how far the background moves toward its target colour per frame.
// 1 switches instantly.
func WithFadeStep(step float64) RendererBuilderOption {
	return func(r *renderer) {
		if step > 0 {
			r.fadeStep = min(step, 1)
		}
	}
}

// WithLogger sets the renderer's logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
