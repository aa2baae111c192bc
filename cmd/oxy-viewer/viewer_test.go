package main

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine"
	"github.com/Carmen-Shannon/oxy-orbit/engine/config"
	"github.com/Carmen-Shannon/oxy-orbit/engine/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newHeadlessViewer(t *testing.T, cfg *config.ViewerConfig) (*viewer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	eng := engine.NewEngine(engine.WithScheduler(scheduler.NewScheduler(scheduler.WithStart(time.Unix(0, 0)))))
	v, err := newViewer(cfg, eng, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(v.close)
	return v, logs
}

func TestApplyConfigUpdatesLiveSettings(t *testing.T) {
	v, logs := newHeadlessViewer(t, config.Default())
	pose := v.cam.OrbitState()

	layout := v.gizmo.Layout()
	front := layout[len(layout)-1]
	axis, ok := v.gizmo.Pick(front.X+20, front.Y)
	assert.False(t, ok && axis == front.Axis, "20px is outside the default hit radius")

	next := config.Default()
	next.Camera.MouseSensitivity = 0.02
	next.Camera.AzimuthDeg += 30
	next.Gizmo.HitRadius = 30
	next.Sync.AnimationDuration = config.Duration(2 * time.Second)
	next.Window.Title = "renamed"
	require.NoError(t, v.applyConfig(next))

	assert.InDelta(t, 0.02, v.cam.MouseSensitivity(), 1e-12)
	assert.Equal(t, 2*time.Second, v.sync.Config().AnimationDuration)
	assert.Equal(t, pose, v.cam.OrbitState(), "the starting pose is not reapplied")

	axis, ok = v.gizmo.Pick(front.X+20, front.Y)
	require.True(t, ok)
	assert.Equal(t, front.Axis, axis)

	restart := logs.FilterMessage("config changes take effect on restart").All()
	require.Len(t, restart, 1)
	assert.Equal(t, []any{"window", "camera.start"}, restart[0].ContextMap()["settings"])
}

func TestApplyConfigClampsToNewRadiusBounds(t *testing.T) {
	v, logs := newHeadlessViewer(t, config.Default())

	next := config.Default()
	next.Camera.MaxRadius = 3
	require.NoError(t, v.applyConfig(next))

	assert.InDelta(t, 3.0, v.cam.OrbitState().Radius, 1e-12)
	assert.Empty(t, logs.FilterMessage("config changes take effect on restart").All())
}
