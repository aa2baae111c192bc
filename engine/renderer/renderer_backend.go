package renderer

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RendererBackend is the GPU API the Renderer presents through.
type RendererBackend interface {
	// ConfigureSurface (re)configures the swapchain for the given size in pixels.
	ConfigureSurface(width, height int) error

	// SetPresentMode selects the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// ClearFrame acquires the next surface image, clears it to c and presents it.
	//
	// Parameters:
	//   - c: the clear colour
	//
	// Returns:
	//   - error: non-nil if the frame could not be acquired or submitted
	ClearFrame(c Color) error

	// Release frees every GPU object held by the backend.
	Release()
}
