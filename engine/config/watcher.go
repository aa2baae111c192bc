package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrWatcherStopped is returned by Start after Stop.
var ErrWatcherStopped = errors.New("config watcher: stopped")

// Watcher reloads a config file when it changes on disk. Rapid saves are debounced and the
// file is parsed on a worker pool so the frame thread only ever receives finished configs.
type Watcher struct {
	mu       sync.Mutex
	path     string
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	pool     worker.DynamicWorkerPool
	debounce time.Duration

	dirty     bool
	lastEvent time.Time
	taskID    int

	updates  chan *ViewerConfig
	errs     chan error
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopped  bool
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the watcher's logger. Defaults to a no-op logger.
func WithWatcherLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets how long the file must stay quiet before it is reloaded. Defaults to 200ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a stopped Watcher for path.
//
// Parameters:
//   - path: the config file to follow
//   - options: functional options to further configure the watcher
//
// Returns:
//   - *Watcher: the watcher
//   - error: non-nil if the OS watcher could not be created
func NewWatcher(path string, options ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	w := &Watcher{
		path:     abs,
		logger:   zap.NewNop(),
		watcher:  fw,
		// One worker: the pool stops workers by id over a shared channel, so a second worker
		// can swallow the first one's stop signal.
		pool:     worker.NewDynamicWorkerPool(1, 8, time.Second),
		debounce: 200 * time.Millisecond,
		updates:  make(chan *ViewerConfig, 1),
		errs:     make(chan error, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, option := range options {
		option(w)
	}
	return w, nil
}

// Updates delivers each successfully reloaded config. Only the newest unread config is kept.
func (w *Watcher) Updates() <-chan *ViewerConfig {
	return w.updates
}

// Errors delivers reload failures. Only the newest unread error is kept.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Start watches the file's directory (editors often replace files rather than write them).
// Non-blocking.
//
// Parameters:
//   - ctx: stops the watcher when cancelled
//
// Returns:
//   - error: non-nil if the directory cannot be watched
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return ErrWatcherStopped
	}
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("config watcher: %w", err)
	}
	w.logger.Info("watching config", zap.String("path", w.path))
	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and releases the OS watcher and the worker pool. Safe to call more
// than once, and on a watcher that was never started.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		started := w.running
		w.running = false
		w.stopped = true
		w.mu.Unlock()

		close(w.stopCh)
		if started {
			<-w.doneCh
		}
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("closing config watcher", zap.Error(err))
		}
		w.pool.Stop()
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.mu.Lock()
	w.dirty = true
	w.lastEvent = time.Now()
	w.mu.Unlock()
}

// flush hands a settled change to the worker pool.
func (w *Watcher) flush(now time.Time) {
	w.mu.Lock()
	if !w.dirty || now.Sub(w.lastEvent) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.dirty = false
	w.taskID++
	id := w.taskID
	w.mu.Unlock()

	w.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Warn("config reload failed", zap.Error(err))
				offer(w.errs, err)
				return nil, err
			}
			w.logger.Info("config reloaded", zap.String("path", w.path))
			offer(w.updates, cfg)
			return cfg, nil
		},
	})
}

// offer sends v, replacing an unread value if the buffer is full.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
