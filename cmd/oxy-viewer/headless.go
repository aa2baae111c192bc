package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/config"
	"github.com/Carmen-Shannon/oxy-orbit/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/state_store"
	"github.com/Carmen-Shannon/oxy-orbit/engine/view_sync"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
)

// ErrTourIncomplete is returned when the simulated time budget runs out before the tour ends.
var ErrTourIncomplete = errors.New("tour did not finish within the time limit")

type tourOptions struct {
	axes    []string
	pause   time.Duration
	limit   time.Duration
	verbose bool
}

func newHeadlessCmd(c *cli) *cobra.Command {
	opts := tourOptions{}
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run a scripted axis tour on simulated time and print the sync events",
		Long: `Runs the synchronizer without a window. The camera visits each axis in turn,
selected through the shared store exactly like a keyboard shortcut would, and every
event is printed with its simulated timestamp.

Example:
  oxy-viewer headless --axes +x,-z,+y --pause 100ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return runTour(cmd.Context(), c, cfg, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringSliceVar(&opts.axes, "axes", []string{"+x", "-x", "+y", "-y", "+z", "-z"}, "Axes to visit in order")
	cmd.Flags().DurationVar(&opts.pause, "pause", 250*time.Millisecond, "Simulated pause between arriving at an axis and leaving for the next")
	cmd.Flags().DurationVar(&opts.limit, "limit", time.Minute, "Simulated time budget for the whole tour")
	cmd.Flags().BoolVar(&opts.verbose, "moves", false, "Also print camera-moved events")
	return cmd
}

func runTour(ctx context.Context, c *cli, cfg *config.ViewerConfig, opts tourOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	axes := make([]camera.AxisDirection, 0, len(opts.axes))
	for _, name := range opts.axes {
		axis, err := camera.ParseAxis(name)
		if err != nil {
			return err
		}
		axes = append(axes, axis)
	}
	if len(axes) == 0 {
		return errors.New("no axes to visit")
	}

	start := time.Unix(0, 0).UTC()
	sched := scheduler.NewScheduler(scheduler.WithStart(start))
	eng := engine.NewEngine(
		engine.WithScheduler(sched),
		engine.WithTickRate(float64(cfg.TickRate)),
		engine.WithLogger(c.logger.Named("engine")),
	)
	v, err := newViewer(cfg, eng, c.logger)
	if err != nil {
		return err
	}
	defer v.close()

	next := 0
	visit := func() {
		v.store.SetSelectedAxis(axes[next], state_store.OriginExternal)
		next++
	}
	done := false
	v.sync.Subscribe(func(ev view_sync.Event) {
		if ev.Kind == view_sync.EventCameraMoved && !opts.verbose {
			return
		}
		fmt.Fprintln(out, formatEvent(ev, ev.Time.Sub(start)))
		switch ev.Kind {
		case view_sync.EventAnimationCompleted, view_sync.EventAnimationFailed:
			if next == len(axes) {
				done = true
				eng.Quit()
				return
			}
			sched.After(opts.pause, visit)
		}
	})

	eng.Post(visit)
	frames := int(opts.limit / cfg.FrameInterval())
	if err := eng.RunHeadless(ctx, max(frames, 1)); err != nil {
		return err
	}
	if !done {
		return ErrTourIncomplete
	}
	return nil
}

func formatEvent(ev view_sync.Event, at time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%8.3fs %-19s", at.Seconds(), ev.Kind)
	if ev.Axis != camera.AxisNone {
		fmt.Fprintf(&b, " axis=%s", ev.Axis)
	}
	switch ev.Kind {
	case view_sync.EventAnimationCompleted, view_sync.EventCameraMoved:
		fmt.Fprintf(&b, " az=%.1f el=%.1f r=%.2f",
			mgl64.RadToDeg(ev.State.Azimuth), mgl64.RadToDeg(ev.State.Elevation), ev.State.Radius)
	case view_sync.EventAnimationFailed:
		fmt.Fprintf(&b, " err=%v", ev.Err)
	}
	return b.String()
}
