package controls

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"go.uber.org/zap"
)

// ControlsBuilderOption is a functional option for configuring Controls.
type ControlsBuilderOption func(*controlsImpl)

// WithHome overrides the orbit restored by the reset key.
//
// Parameters:
//   - state: the home orbit
//
// Returns:
//   - ControlsBuilderOption: option function to apply
func WithHome(state camera.OrbitState) ControlsBuilderOption {
	return func(c *controlsImpl) {
		c.home = state
	}
}

// WithPanStep sets how far one WASD press pans, before the camera's pan speed is applied.
// Values <= 0 are ignored.
//
// Parameters:
//   - step: pan amount per key press
//
// Returns:
//   - ControlsBuilderOption: option function to apply
func WithPanStep(step float64) ControlsBuilderOption {
	return func(c *controlsImpl) {
		if step > 0 {
			c.panStep = step
		}
	}
}

// WithDragPanScale sets the pan amount per pixel of middle-button drag. Values <= 0 are ignored.
func WithDragPanScale(scale float64) ControlsBuilderOption {
	return func(c *controlsImpl) {
		if scale > 0 {
			c.pixelToPan = scale
		}
	}
}

// WithLogger sets the controls' logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) ControlsBuilderOption {
	return func(c *controlsImpl) {
		if logger != nil {
			c.logger = logger
		}
	}
}
