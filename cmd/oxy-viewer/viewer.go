package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-orbit/engine"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/config"
	"github.com/Carmen-Shannon/oxy-orbit/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-orbit/engine/state_store"
	"github.com/Carmen-Shannon/oxy-orbit/engine/view_sync"
	"go.uber.org/zap"
)

// viewer wires the camera, gizmo, store and synchronizer together on one engine.
type viewer struct {
	logger *zap.Logger
	cfg    *config.ViewerConfig
	eng    engine.Engine

	cam   camera.OrbitCamera
	gizmo gizmo.Gizmo
	store state_store.Store
	sync  view_sync.Synchronizer

	width, height int
}

func newViewer(cfg *config.ViewerConfig, eng engine.Engine, logger *zap.Logger) (*viewer, error) {
	v := &viewer{
		logger: logger,
		cfg:    cfg,
		eng:    eng,
		cam:    camera.NewOrbitCamera(cfg.CameraOptions()...),
		store:  state_store.NewStore(),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}
	v.gizmo = gizmo.NewGizmo(
		gizmo.WithHitRadius(cfg.Gizmo.HitRadius),
		gizmo.WithLogger(logger.Named("gizmo")),
	)
	v.layoutGizmo()
	v.cam.SetAspect(float64(v.width) / float64(v.height))

	v.sync = view_sync.NewSynchronizer(v.store, eng.Scheduler(), view_sync.WithLogger(logger.Named("sync")))
	sc := cfg.SyncConfig()
	if err := v.sync.Initialize(v.cam, v.gizmo, &sc); err != nil {
		return nil, fmt.Errorf("starting synchronizer: %w", err)
	}
	return v, nil
}

// layoutGizmo pins the gizmo to the top-right corner.
func (v *viewer) layoutGizmo() {
	size, margin := v.cfg.Gizmo.Size, v.cfg.Gizmo.Margin
	v.gizmo.SetViewport(float64(v.width)-size-margin, margin, size)
}

func (v *viewer) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.width, v.height = width, height
	v.cam.SetAspect(float64(width) / float64(height))
	v.layoutGizmo()
}

// applyConfig swaps in a reloaded config. Camera controls, gizmo layout and hit radius apply
// immediately; the synchronizer is restarted so the new timing and easing take effect, which
// drops an animation in flight. Startup-only settings are logged and left alone.
func (v *viewer) applyConfig(cfg *config.ViewerConfig) error {
	prev := v.cfg
	v.cfg = cfg
	v.cam.Configure(cfg.ControlOptions()...)
	v.gizmo.SetHitRadius(cfg.Gizmo.HitRadius)
	v.layoutGizmo()

	if err := v.sync.Dispose(); err != nil {
		return err
	}
	sc := cfg.SyncConfig()
	if err := v.sync.Initialize(v.cam, v.gizmo, &sc); err != nil {
		return fmt.Errorf("restarting synchronizer: %w", err)
	}
	v.logger.Info("config applied",
		zap.Duration("animationDuration", sc.AnimationDuration),
		zap.Stringer("easing", sc.Easing),
		zap.Bool("bidirectionalSync", !sc.DisableBidirectionalSync),
		zap.Float64("mouseSensitivity", cfg.Camera.MouseSensitivity),
		zap.Float64("hitRadius", cfg.Gizmo.HitRadius),
	)
	if pending := cfg.RestartRequired(prev); len(pending) > 0 {
		v.logger.Info("config changes take effect on restart", zap.Strings("settings", pending))
	}
	return nil
}

func (v *viewer) close() {
	if err := v.sync.Dispose(); err != nil {
		v.logger.Warn("disposing synchronizer", zap.Error(err))
	}
	v.gizmo.Dispose()
	v.cam.Dispose()
}
