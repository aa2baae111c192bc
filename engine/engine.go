package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"go.uber.org/zap"
)

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine: no window configured")

// engine implements the Engine interface.
// Every frame runs on the goroutine that called Run or RunHeadless.
type engine struct {
	mu     *sync.Mutex
	logger *zap.Logger

	window window.Window
	sched  scheduler.Scheduler

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate         time.Duration
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	tickCallback   func(now time.Time, dt time.Duration)
	renderCallback func(dt time.Duration)
	resizeCallback func(width, height int)

	posted    []func()
	lastFrame time.Time
	frames    uint64

	quit     bool
	quitOnce sync.Once
}

// Engine owns the frame loop. Each frame it runs work posted from other goroutines, the
// tick callback, due scheduler timers, the render callback and finally the profiler, all on
// one goroutine.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	Window() window.Window

	// Scheduler returns the scheduler ticked once per frame.
	Scheduler() scheduler.Scheduler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called at the start of each frame, before
	// scheduler timers run.
	//
	// Parameters:
	//   - callback: receives the frame time and the time since the previous frame
	SetTickCallback(callback func(now time.Time, dt time.Duration))

	// SetRenderCallback registers the function called after scheduler timers each frame.
	//
	// Parameters:
	//   - callback: receives the time since the previous frame
	SetRenderCallback(callback func(dt time.Duration))

	// SetResizeCallback registers the function called when the window is resized.
	//
	// Parameters:
	//   - callback: receives the new framebuffer size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetRenderFrameLimit sets an optional windowed frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Post queues fn to run at the start of the next frame. Safe to call from any goroutine.
	//
	// Parameters:
	//   - fn: the work to run on the frame goroutine
	Post(fn func())

	// Frame runs one frame at now.
	//
	// Parameters:
	//   - now: the frame time; must not go backwards
	Frame(now time.Time)

	// Frames returns how many frames have run.
	Frames() uint64

	// Run drives frames from the window message loop with wall-clock time. Blocks until the
	// window closes or Quit is called.
	//
	// Returns:
	//   - error: ErrNoWindow if the engine has no window
	Run() error

	// RunHeadless runs frames on simulated time, one tick interval apart, without sleeping.
	//
	// Parameters:
	//   - ctx: stops the loop when cancelled
	//   - frames: number of frames to run; <= 0 runs until ctx is cancelled or Quit is called
	//
	// Returns:
	//   - error: ctx.Err() if cancelled, nil otherwise
	RunHeadless(ctx context.Context, frames int) error

	// Quit stops Run or RunHeadless after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, scheduler, profiling, tick rate)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:       &sync.Mutex{},
		logger:   zap.NewNop(),
		tickRate: time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.sched == nil {
		e.sched = scheduler.NewScheduler(scheduler.WithStart(time.Now()))
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger), profiler.WithStart(e.sched.Now()))
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if e.resizeCallback != nil {
				e.resizeCallback(width, height)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scheduler() scheduler.Scheduler {
	return e.sched
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(now time.Time, dt time.Duration)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(dt time.Duration)) {
	e.renderCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.posted = append(e.posted, fn)
}

func (e *engine) drainPosted() {
	e.mu.Lock()
	posted := e.posted
	e.posted = nil
	e.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
}

func (e *engine) Frame(now time.Time) {
	var dt time.Duration
	if !e.lastFrame.IsZero() {
		dt = now.Sub(e.lastFrame)
	}
	e.lastFrame = now

	e.drainPosted()
	if e.tickCallback != nil {
		e.tickCallback(now, dt)
	}
	e.sched.Tick(now)
	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	if e.profilingEnabled {
		e.profiler.Tick(now)
	}
	e.frames++
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Run() (err error) {
	if e.window == nil {
		return ErrNoWindow
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("frame loop panicked", zap.Any("panic", r))
			err = fmt.Errorf("engine: frame loop panicked: %v", r)
		}
	}()

	e.window.SetUpdateCallback(func() {
		if e.quitting() {
			if cerr := e.window.Close(); cerr != nil {
				e.logger.Warn("closing window", zap.Error(cerr))
			}
			return
		}
		start := time.Now()
		e.Frame(start)

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.logger.Info("engine running", zap.Int("width", e.window.Width()), zap.Int("height", e.window.Height()))
	e.window.ProcessMessages()
	// Esc and the close button end the loop without destroying the window.
	if cerr := e.window.Close(); cerr != nil {
		e.logger.Warn("closing window", zap.Error(cerr))
	}
	e.logger.Info("engine stopped", zap.Uint64("frames", e.frames))
	return nil
}

func (e *engine) RunHeadless(ctx context.Context, frames int) error {
	for i := 0; frames <= 0 || i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.quitting() {
			return nil
		}
		e.Frame(e.sched.Now().Add(e.tickRate))
	}
	return nil
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.quit = true
		e.mu.Unlock()
	})
}

func (e *engine) quitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quit
}
