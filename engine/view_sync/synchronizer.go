package view_sync

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/animation"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-orbit/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/state_store"
	"github.com/Carmen-Shannon/oxy-orbit/engine/throttle"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AxisMatchTolerance is how far (radians) the camera may drift from the selected axis before
// the selection is cleared.
const AxisMatchTolerance = 1e-3

// Synchronizer keeps a camera and an orientation widget in agreement. Widget selections animate
// the camera to the chosen axis; free camera movement is forwarded to the widget at most once
// per throttle window and never while an animation is driving the camera.
//
// A Synchronizer is not safe for concurrent use. Every method and every callback it registers
// runs on the frame goroutine that ticks its Scheduler.
type Synchronizer interface {
	// Initialize binds cam and widget and moves the synchronizer to PhaseIdle.
	//
	// Parameters:
	//   - cam: the camera to drive; must support orbit control
	//   - widget: the orientation widget to keep in sync
	//   - cfg: overrides for DefaultConfig (nil uses the defaults)
	//
	// Returns:
	//   - error: a *SyncError with CodeInitializationFailed, CodeCameraNotSupported or CodeWidgetInvalid
	Initialize(cam camera.Camera, widget gizmo.Widget, cfg *Config) error

	// AnimateToAxis starts a transition to the canonical view of axis. A running transition is
	// superseded from its current interpolated state and its completion never fires.
	//
	// Parameters:
	//   - axis: the axis to look along
	//
	// Returns:
	//   - error: a *SyncError with CodeInitializationFailed or CodeAnimationFailed
	AnimateToAxis(axis camera.AxisDirection) error

	// OnCameraMoved records the camera's orbit and queues a throttled widget update. It does
	// nothing unless the synchronizer is idle.
	OnCameraMoved()

	// OnExternalAxisSelected handles a selection made somewhere other than this synchronizer.
	// Selecting the axis already being animated to is a no-op.
	//
	// Parameters:
	//   - axis: the selected axis
	//
	// Returns:
	//   - error: as AnimateToAxis
	OnExternalAxisSelected(axis camera.AxisDirection) error

	// Dispose cancels pending work, drops every registration made by Initialize and returns to
	// PhaseUninitialized. Safe to call repeatedly.
	//
	// Returns:
	//   - error: always nil; cleanup problems are logged
	Dispose() error

	// State returns a snapshot of the current state. LastError is a copy; editing it has no
	// effect on the synchronizer.
	State() State

	// Config returns the merged configuration in effect (DefaultConfig before Initialize).
	Config() Config

	// Subscribe registers fn for every Event. Subscriptions survive Dispose.
	//
	// Parameters:
	//   - fn: the event handler
	//
	// Returns:
	//   - func(): removes the handler
	Subscribe(fn func(Event)) (unsubscribe func())
}

type synchronizerImpl struct {
	store  state_store.Store
	sched  scheduler.Scheduler
	logger *zap.Logger
	origin string

	cfg    Config
	cam    camera.Camera
	widget gizmo.Widget
	anim   animation.Controller
	moves  *throttle.Throttle[camera.OrbitState]

	state State

	events   common.Listeners[Event]
	cleanups []func()
}

var _ Synchronizer = &synchronizerImpl{}

// NewSynchronizer creates an uninitialized Synchronizer writing to store and timed by sched.
//
// Parameters:
//   - store: the shared application state; required
//   - sched: drives animation frames and throttle timers; required
//   - options: functional options to further configure the synchronizer
//
// Returns:
//   - Synchronizer: the newly created synchronizer
func NewSynchronizer(store state_store.Store, sched scheduler.Scheduler, options ...SynchronizerBuilderOption) Synchronizer {
	if store == nil {
		panic("view_sync: NewSynchronizer requires a non-nil Store")
	}
	if sched == nil {
		panic("view_sync: NewSynchronizer requires a non-nil Scheduler")
	}
	s := &synchronizerImpl{
		store:  store,
		sched:  sched,
		logger: zap.NewNop(),
		origin: "view_sync-" + uuid.NewString(),
		cfg:    DefaultConfig(),
	}
	for _, option := range options {
		option(s)
	}
	s.logger = s.logger.With(zap.String("origin", s.origin))
	return s
}

func (s *synchronizerImpl) Initialize(cam camera.Camera, widget gizmo.Widget, cfg *Config) error {
	if s.state.Phase != PhaseUninitialized {
		return s.fail(newSyncError(CodeInitializationFailed, "already initialized",
			map[string]any{"phase": s.state.Phase.String()}))
	}
	s.state = State{}

	if cam == nil {
		return s.fail(newSyncError(CodeCameraNotSupported, "camera is nil", nil))
	}
	if !cam.SupportsOrbit() {
		return s.fail(newSyncError(CodeCameraNotSupported, "camera does not support orbit control", nil))
	}
	if cam.IsDisposed() {
		return s.fail(newSyncError(CodeCameraNotSupported, "camera is disposed", nil))
	}
	if widget == nil {
		return s.fail(newSyncError(CodeWidgetInvalid, "widget is nil", nil))
	}

	merged := merge(cfg)
	if err := merged.Validate(); err != nil {
		return s.fail(newSyncError(CodeInitializationFailed, "invalid configuration", nil).withCause(err))
	}
	if err := widget.Initialize(cam); err != nil {
		return s.fail(newSyncError(CodeWidgetInvalid, "widget rejected camera", nil).withCause(err))
	}

	s.cfg = merged
	s.cam = cam
	s.widget = widget
	s.anim = animation.NewController(cam, s.sched, animation.WithLogger(s.logger))
	s.moves = throttle.New(s.sched, merged.UpdateThrottle, s.applyCameraMove)

	s.cleanups = append(s.cleanups,
		cam.OnMoved(s.OnCameraMoved),
		widget.OnAxisSelected(func(axis camera.AxisDirection) {
			s.store.SetSelectedAxis(axis, state_store.OriginWidget)
		}),
		s.store.Subscribe(s.onStoreChange),
	)
	if !merged.Callbacks.empty() {
		s.cleanups = append(s.cleanups, s.events.Add(merged.Callbacks.handle))
	}

	current := cam.OrbitState()
	s.state = State{
		Phase:              PhaseIdle,
		LastCameraPosition: current.Position(),
		LastCameraRotation: current,
	}
	widget.SetOrientation(current)

	s.logger.Info("synchronizer initialized",
		zap.Duration("animationDuration", merged.AnimationDuration),
		zap.Duration("updateThrottle", merged.UpdateThrottle),
		zap.Stringer("easing", merged.Easing),
		zap.Bool("bidirectional", !merged.DisableBidirectionalSync),
	)
	return nil
}

func (s *synchronizerImpl) AnimateToAxis(axis camera.AxisDirection) error {
	if s.state.Phase == PhaseUninitialized {
		return s.fail(newSyncError(CodeInitializationFailed, "synchronizer is not initialized",
			map[string]any{"axis": axis.String()}))
	}
	if !axis.Valid() {
		return s.fail(newSyncError(CodeAnimationFailed, "invalid axis",
			map[string]any{"axis": axis.String()}))
	}
	if s.cam.IsDisposed() {
		return s.fail(newSyncError(CodeAnimationFailed, "camera is disposed",
			map[string]any{"axis": axis.String()}))
	}

	now := s.sched.Now()
	start, running := s.anim.Current(now)
	if !running {
		start = s.cam.OrbitState()
	} else if prev, ok := s.anim.Task(); ok {
		s.logger.Debug("superseding animation",
			zap.Stringer("previousAxis", s.state.SelectedAxis),
			zap.Stringer("previousTarget", prev.Target),
			zap.Float64("progress", prev.Progress(now)),
		)
	}
	target, _ := camera.TargetStateFor(axis, start)
	task := animation.Task{
		Start:     start,
		Target:    target,
		StartTime: now,
		Duration:  s.cfg.AnimationDuration,
		Easing:    s.cfg.Easing,
	}
	s.moves.Cancel()
	if err := s.anim.Start(task, func() { s.onAnimationComplete(axis) }, s.onAnimationFailed); err != nil {
		return s.fail(newSyncError(CodeAnimationFailed, "animation could not start",
			map[string]any{"axis": axis.String()}).withCause(err))
	}

	s.state.Phase = PhaseAnimating
	s.state.SelectedAxis = axis
	s.state.AnimationStart = now
	s.state.LastError = nil
	s.logger.Debug("animating to axis",
		zap.Stringer("axis", axis),
		zap.Stringer("from", start),
		zap.Bool("superseded", running),
	)

	s.emit(Event{Kind: EventAxisSelected, Axis: axis, Time: now})
	s.emit(Event{Kind: EventAnimationStarted, Axis: axis, State: start, Time: now})
	if s.state.Phase != PhaseAnimating {
		// A subscriber disposed or restarted us.
		return nil
	}
	s.store.SetSelectedAxis(axis, s.origin)
	s.store.SetAnimating(true, s.origin)
	return nil
}

func (s *synchronizerImpl) OnCameraMoved() {
	if s.state.Phase != PhaseIdle {
		return
	}
	current := s.cam.OrbitState()
	s.state.LastCameraRotation = current
	s.state.LastCameraPosition = current.Position()
	s.moves.Call(current)
}

// applyCameraMove is the throttled half of OnCameraMoved.
func (s *synchronizerImpl) applyCameraMove(state camera.OrbitState) {
	if s.state.Phase != PhaseIdle || s.cam.IsDisposed() {
		return
	}
	if !s.cfg.DisableBidirectionalSync {
		s.widget.SetOrientation(state)
	}
	if s.state.SelectedAxis != camera.AxisNone && !camera.MatchesAxis(state, s.state.SelectedAxis, AxisMatchTolerance) {
		s.logger.Debug("camera left selected axis", zap.Stringer("axis", s.state.SelectedAxis))
		s.state.SelectedAxis = camera.AxisNone
		s.store.SetSelectedAxis(camera.AxisNone, s.origin)
	}
	s.emit(Event{Kind: EventCameraMoved, State: state, Time: s.sched.Now()})
}

func (s *synchronizerImpl) OnExternalAxisSelected(axis camera.AxisDirection) error {
	if s.state.Phase == PhaseAnimating && s.state.SelectedAxis == axis {
		return nil
	}
	return s.AnimateToAxis(axis)
}

func (s *synchronizerImpl) onStoreChange(change state_store.Change) {
	if change.Key != state_store.KeySelectedAxis || change.Origin == s.origin {
		return
	}
	axis, ok := change.Value.(camera.AxisDirection)
	if !ok || axis == camera.AxisNone {
		return
	}
	if err := s.OnExternalAxisSelected(axis); err != nil {
		s.logger.Warn("external axis selection rejected",
			zap.Stringer("axis", axis),
			zap.String("from", change.Origin),
			zap.Error(err),
		)
	}
}

func (s *synchronizerImpl) onAnimationComplete(axis camera.AxisDirection) {
	if s.state.Phase != PhaseAnimating {
		return
	}
	final := s.cam.OrbitState()
	s.state.Phase = PhaseIdle
	s.state.LastCameraRotation = final
	s.state.LastCameraPosition = final.Position()
	s.store.SetAnimating(false, s.origin)
	if !s.cfg.DisableBidirectionalSync {
		s.widget.SetOrientation(final)
	}
	s.logger.Debug("animation complete", zap.Stringer("axis", axis), zap.Stringer("state", final))
	s.emit(Event{Kind: EventAnimationCompleted, Axis: axis, State: final, Time: s.sched.Now()})
}

func (s *synchronizerImpl) onAnimationFailed(cause error) {
	if s.state.Phase != PhaseAnimating {
		return
	}
	axis := s.state.SelectedAxis
	s.state.Phase = PhaseIdle
	err := s.fail(newSyncError(CodeAnimationFailed, "animation aborted",
		map[string]any{"axis": axis.String()}).withCause(cause))
	s.store.SetAnimating(false, s.origin)
	s.emit(Event{Kind: EventAnimationFailed, Axis: axis, Time: s.sched.Now(), Err: err})
}

func (s *synchronizerImpl) Dispose() error {
	wasAnimating := s.state.Phase == PhaseAnimating
	if s.anim != nil {
		s.safely("stop animation", s.anim.Stop)
	}
	if s.moves != nil {
		s.safely("cancel throttle", func() { s.moves.Cancel() })
		calls, effects := s.moves.Stats()
		s.logger.Debug("camera move throttle",
			zap.Uint64("calls", calls),
			zap.Uint64("effects", effects),
		)
	}
	for _, cleanup := range s.cleanups {
		s.safely("unsubscribe", cleanup)
	}
	if wasAnimating {
		s.safely("clear animating flag", func() { s.store.SetAnimating(false, s.origin) })
	}
	if s.state.Phase != PhaseUninitialized {
		s.logger.Info("synchronizer disposed")
	}

	s.cleanups = nil
	s.anim = nil
	s.moves = nil
	s.cam = nil
	s.widget = nil
	s.cfg = DefaultConfig()
	s.state = State{}
	return nil
}

// safely runs a cleanup step, logging instead of propagating a panic.
func (s *synchronizerImpl) safely(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("cleanup failed", zap.String("step", step), zap.String("panic", fmt.Sprint(r)))
		}
	}()
	fn()
}

func (s *synchronizerImpl) State() State {
	st := s.state
	if st.LastError != nil {
		st.LastError = st.LastError.clone()
	}
	return st
}

func (s *synchronizerImpl) Config() Config {
	return s.cfg
}

func (s *synchronizerImpl) Subscribe(fn func(Event)) func() {
	return s.events.Add(fn)
}

func (s *synchronizerImpl) emit(ev Event) {
	s.events.Notify(ev)
}

// fail records err as the last error and returns it.
func (s *synchronizerImpl) fail(err *SyncError) error {
	s.state.LastError = err
	s.logger.Warn("sync operation failed",
		zap.String("code", string(err.Code)),
		zap.String("message", err.Message),
		zap.Any("context", err.Context),
		zap.NamedError("cause", err.Cause),
	)
	return err
}
