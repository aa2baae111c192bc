package view_sync

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/animation"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
)

const (
	DefaultAnimationDuration = 500 * time.Millisecond
	DefaultUpdateThrottle    = 16 * time.Millisecond
	DefaultEasing            = animation.EasingCubic
)

// Callbacks are optional observers wired into the event channel at Initialize.
type Callbacks struct {
	OnAnimationStart    func(axis camera.AxisDirection)
	OnAnimationComplete func(axis camera.AxisDirection)
	OnCameraMove        func(state camera.OrbitState)
	OnGizmoSelect       func(axis camera.AxisDirection)
}

func (c Callbacks) empty() bool {
	return c.OnAnimationStart == nil && c.OnAnimationComplete == nil &&
		c.OnCameraMove == nil && c.OnGizmoSelect == nil
}

// handle routes ev to the matching callback.
func (c Callbacks) handle(ev Event) {
	switch ev.Kind {
	case EventAnimationStarted:
		if c.OnAnimationStart != nil {
			c.OnAnimationStart(ev.Axis)
		}
	case EventAnimationCompleted:
		if c.OnAnimationComplete != nil {
			c.OnAnimationComplete(ev.Axis)
		}
	case EventCameraMoved:
		if c.OnCameraMove != nil {
			c.OnCameraMove(ev.State)
		}
	case EventAxisSelected:
		if c.OnGizmoSelect != nil {
			c.OnGizmoSelect(ev.Axis)
		}
	}
}

// Config tunes a Synchronizer. Zero fields take the defaults.
type Config struct {
	AnimationDuration time.Duration
	// UpdateThrottle is the trailing-edge window for camera→widget updates.
	UpdateThrottle time.Duration
	Easing         animation.Easing
	// DisableBidirectionalSync stops camera movement from redrawing the widget.
	DisableBidirectionalSync bool
	Callbacks                Callbacks
}

// DefaultConfig returns the configuration used when Initialize receives nil.
//
// Returns:
//   - Config: 500ms cubic animations with a 16ms update throttle
func DefaultConfig() Config {
	return Config{
		AnimationDuration: DefaultAnimationDuration,
		UpdateThrottle:    DefaultUpdateThrottle,
		Easing:            DefaultEasing,
	}
}

// merge overlays the non-zero fields of user onto the defaults.
func merge(user *Config) Config {
	d := DefaultConfig()
	if user == nil {
		return d
	}
	return Config{
		AnimationDuration:        common.Coalesce(user.AnimationDuration, d.AnimationDuration),
		UpdateThrottle:           common.Coalesce(user.UpdateThrottle, d.UpdateThrottle),
		Easing:                   common.Coalesce(user.Easing, d.Easing),
		DisableBidirectionalSync: user.DisableBidirectionalSync,
		Callbacks:                user.Callbacks,
	}
}

// Validate reports the first invalid field.
//
// Returns:
//   - error: nil if the configuration is usable
func (c Config) Validate() error {
	var errs []error
	if c.AnimationDuration <= 0 {
		errs = append(errs, fmt.Errorf("animation duration must be positive, got %s", c.AnimationDuration))
	}
	if c.UpdateThrottle <= 0 {
		errs = append(errs, fmt.Errorf("update throttle must be positive, got %s", c.UpdateThrottle))
	}
	if !c.Easing.Valid() {
		errs = append(errs, fmt.Errorf("unknown easing %s", c.Easing))
	}
	return errors.Join(errs...)
}
