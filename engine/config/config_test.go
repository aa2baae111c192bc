package config

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/animation"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/view_sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	sc := cfg.SyncConfig()
	assert.Equal(t, view_sync.DefaultAnimationDuration, sc.AnimationDuration)
	assert.Equal(t, view_sync.DefaultUpdateThrottle, sc.UpdateThrottle)
	assert.Equal(t, animation.EasingCubic, sc.Easing)
	assert.False(t, sc.DisableBidirectionalSync)

	orbit := cfg.OrbitState()
	assert.InDelta(t, math.Pi/4, orbit.Azimuth, 1e-12)
	assert.InDelta(t, math.Pi/3, orbit.Elevation, 1e-12)
	assert.Equal(t, time.Second/60, cfg.FrameInterval())
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
sync:
  animationDuration: 250ms
  easing: quadratic
  bidirectionalSync: false
camera:
  radius: 4
  target: [1, 2, 3]
`))
	require.NoError(t, err)
	assert.Equal(t, Duration(250*time.Millisecond), cfg.Sync.AnimationDuration)
	assert.Equal(t, Duration(16*time.Millisecond), cfg.Sync.UpdateThrottle, "untouched fields keep defaults")
	assert.Equal(t, 4.0, cfg.Camera.Radius)
	assert.Equal(t, [3]float64{1, 2, 3}, cfg.Camera.Target)

	sc := cfg.SyncConfig()
	assert.Equal(t, animation.EasingQuadratic, sc.Easing)
	assert.True(t, sc.DisableBidirectionalSync)
	assert.NoError(t, sc.Validate())
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := Parse([]byte("sync:\n  animationDuration: soon\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = Parse([]byte("sync:\n  easing: bounce\ncamera:\n  elevationDeg: 180\ntickRate: 0\nlogLevel: loud\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown easing")
	assert.ErrorContains(t, err, "camera")
	assert.ErrorContains(t, err, "tickRate")
	assert.ErrorContains(t, err, "logLevel")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	cfg := Default()
	cfg.Window.Title = "round trip"
	cfg.Sync.Easing = "linear"
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "animationDuration: 500ms")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRestartRequired(t *testing.T) {
	prev := Default()
	next := Default()
	assert.Empty(t, next.RestartRequired(prev))

	next.Camera.MouseSensitivity *= 2
	next.Sync.AnimationDuration = Duration(time.Second)
	next.Gizmo.HitRadius = 30
	assert.Empty(t, next.RestartRequired(prev), "live settings never need a restart")

	next.Window.Title = "renamed"
	next.Camera.Target = [3]float64{1, 2, 3}
	next.TickRate = 30
	assert.Equal(t, []string{"window", "camera.start", "tickRate"}, next.RestartRequired(prev))
}

func TestControlOptionsLeaveThePoseAlone(t *testing.T) {
	cfg := Default()
	cfg.Camera.MouseSensitivity = 0.02
	cfg.Camera.MaxRadius = 5

	cam := camera.NewOrbitCamera(camera.WithOrbitState(camera.OrbitState{Azimuth: 1, Elevation: 0.5, Radius: 4}))
	cam.Configure(cfg.ControlOptions()...)

	assert.InDelta(t, 0.02, cam.MouseSensitivity(), 1e-12)
	assert.Equal(t, camera.OrbitState{Azimuth: 1, Elevation: 0.5, Radius: 4}, cam.OrbitState())
}

func TestWatcherDeliversReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, Default().Save(path))

	w, err := NewWatcher(path, WithDebounce(40*time.Millisecond))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// Several quick writes settle into one reload of the final content.
	for _, d := range []string{"100ms", "200ms", "300ms"} {
		require.NoError(t, os.WriteFile(path, []byte("sync:\n  animationDuration: "+d+"\n"), 0o644))
	}

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, Duration(300*time.Millisecond), cfg.Sync.AnimationDuration)
	case err := <-w.Errors():
		t.Fatalf("unexpected reload error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}

	require.NoError(t, os.WriteFile(path, []byte("tickRate: -1\n"), 0o644))
	select {
	case err := <-w.Errors():
		assert.ErrorContains(t, err, "tickRate")
	case <-time.After(5 * time.Second):
		t.Fatal("no reload error delivered")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, Default().Save(path))

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	select {
	case <-w.Updates():
		t.Fatal("sibling write triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
	w.Stop()
	w.Stop()
}

func TestWatcherStopReleasesWorkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, Default().Save(path))

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, os.WriteFile(path, []byte("tickRate: 30\n"), 0o644))
	select {
	case cfg := <-w.Updates():
		assert.Equal(t, 30, cfg.TickRate)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
	w.Stop()
	assert.ErrorIs(t, w.Start(context.Background()), ErrWatcherStopped)

	idle, err := NewWatcher(path)
	require.NoError(t, err)
	idle.Stop()

	goleak.VerifyNone(t)
}

func TestOfferKeepsNewest(t *testing.T) {
	ch := make(chan int, 1)
	offer(ch, 1)
	offer(ch, 2)
	assert.Equal(t, 2, <-ch)
}
