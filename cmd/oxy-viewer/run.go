package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine"
	"github.com/Carmen-Shannon/oxy-orbit/engine/config"
	"github.com/Carmen-Shannon/oxy-orbit/engine/controls"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbit/engine/view_sync"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(c *cli) *cobra.Command {
	var watch bool
	var frameLimit float64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the viewer window",
		Long: `Opens the viewer window.

Controls:
  Left drag       orbit
  Middle drag     pan
  Scroll          zoom
  Click gizmo     look down the clicked axis
  1-6             look down +X, -X, +Y, -Y, +Z, -Z
  WASD            pan
  R               reset the camera
  Esc             quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return runWindowed(cmd.Context(), c, cfg, watch, frameLimit)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload the config file when it changes")
	cmd.Flags().Float64Var(&frameLimit, "fps", 0, "Frame rate cap (0 = uncapped)")
	return cmd
}

func runWindowed(ctx context.Context, c *cli, cfg *config.ViewerConfig, watch bool, frameLimit float64) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := c.logger
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}

	presentMode := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(presentMode),
		renderer.WithLogger(logger.Named("renderer")),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithLogger(logger.Named("engine")),
		engine.WithRenderFrameLimit(frameLimit),
		engine.WithProfiling(cfg.Profiling.Enabled),
		engine.WithProfiler(profiler.NewProfiler(
			profiler.WithLogger(logger.Named("profiler")),
			profiler.WithInterval(time.Duration(cfg.Profiling.Interval)),
		)),
	)

	v, err := newViewer(cfg, eng, logger)
	if err != nil {
		return err
	}
	defer v.close()

	controls.NewControls(v.cam, v.gizmo, v.store, controls.WithLogger(logger.Named("controls"))).Bind(win)

	v.sync.Subscribe(func(ev view_sync.Event) {
		switch ev.Kind {
		case view_sync.EventAnimationStarted:
			r.SetAnimating(true)
		case view_sync.EventAnimationCompleted, view_sync.EventAnimationFailed:
			r.SetAnimating(false)
		}
	})
	eng.SetResizeCallback(func(width, height int) {
		if err := r.Resize(width, height); err != nil {
			logger.Warn("resize failed", zap.Error(err))
		}
		v.resize(width, height)
	})
	eng.SetRenderCallback(func(time.Duration) {
		r.Frame()
	})

	if watch {
		if err := watchConfig(ctx, c, eng, v); err != nil {
			logger.Warn("config reload disabled", zap.Error(err))
		}
	}
	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	return eng.Run()
}

// watchConfig follows the config file and applies reloads on the frame goroutine.
func watchConfig(ctx context.Context, c *cli, eng engine.Engine, v *viewer) error {
	w, err := config.NewWatcher(c.configPath, config.WithWatcherLogger(c.logger.Named("config")))
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	go func() {
		defer w.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case cfg := <-w.Updates():
				eng.Post(func() {
					if err := v.applyConfig(cfg); err != nil {
						c.logger.Warn("applying config", zap.Error(err))
					}
				})
			case err := <-w.Errors():
				c.logger.Warn("config reload failed; keeping previous config", zap.Error(err))
			}
		}
	}()
	return nil
}
