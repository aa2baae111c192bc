package gizmo

import "go.uber.org/zap"

// GizmoBuilderOption is a functional option for configuring a Gizmo.
type GizmoBuilderOption func(*gizmoImpl)

// WithViewport sets the gizmo's square viewport in window pixels.
//
// Parameters:
//   - x, y: top-left corner
//   - size: edge length (ignored if <= 0)
//
// Returns:
//   - GizmoBuilderOption: option function to apply
func WithViewport(x, y, size float64) GizmoBuilderOption {
	return func(g *gizmoImpl) {
		g.x, g.y = x, y
		if size > 0 {
			g.size = size
		}
	}
}

// WithHitRadius sets how close, in pixels, a click must land to an axis handle.
//
// Parameters:
//   - radius: hit radius in pixels
//
// Returns:
//   - GizmoBuilderOption: option function to apply
func WithHitRadius(radius float64) GizmoBuilderOption {
	return func(g *gizmoImpl) {
		g.hitRadius = radius
	}
}

// WithLogger sets the logger used for pick diagnostics.
//
// Parameters:
//   - logger: the zap logger (nil keeps the no-op logger)
//
// Returns:
//   - GizmoBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) GizmoBuilderOption {
	return func(g *gizmoImpl) {
		if logger != nil {
			g.logger = logger
		}
	}
}
