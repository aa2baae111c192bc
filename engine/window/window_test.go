package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderClampsInitialSize(t *testing.T) {
	w := newEngineWindow(WithTitle("viewer"), WithSize(5000, 100), WithSizeLimits(640, 480, 1920, 1080))
	assert.Equal(t, "viewer", w.title)
	assert.Equal(t, 1920, w.Width())
	assert.Equal(t, 480, w.Height())

	w = newEngineWindow(WithTitle(""), WithSize(0, -1))
	assert.Equal(t, "oxy-orbit", w.title)
	assert.Equal(t, 1280, w.Width())
	assert.Equal(t, 720, w.Height())
}

func TestDispatchRoutesToCallbacks(t *testing.T) {
	w := newEngineWindow()
	var got []string
	w.SetMouseButtonCallback(func(b MouseButton, down bool, x, y float64) {
		if b == MouseLeft && down {
			got = append(got, "left-down")
		}
	})
	w.SetMouseMoveCallback(func(x, y float64) { got = append(got, "move") })
	w.SetScrollCallback(func(d float64) { got = append(got, "scroll") })
	w.SetKeyDownCallback(func(k uint32) { got = append(got, "key") })

	w.mouseButton(MouseLeft, true, 1, 2)
	w.mouseMove(3, 4)
	w.scroll(1)
	w.keyDown(49)
	assert.Equal(t, []string{"left-down", "move", "scroll", "key"}, got)

	w.SetScrollCallback(nil)
	assert.NotPanics(t, func() { w.scroll(1) })
}

func TestResizeIgnoresMinimize(t *testing.T) {
	w := newEngineWindow()
	calls := 0
	w.SetResizeCallback(func(width, height int) { calls++ })

	w.resize(0, 0)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1280, w.Width())

	w.resize(800, 600)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
}

func TestClosedWindowIsNotRunning(t *testing.T) {
	w := newEngineWindow()
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.NoError(t, w.Close(), "closing twice is a no-op")
}
