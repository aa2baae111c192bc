package view_sync

import "go.uber.org/zap"

// SynchronizerBuilderOption configures a Synchronizer at construction.
type SynchronizerBuilderOption func(*synchronizerImpl)

// WithLogger sets the logger. Defaults to a no-op logger.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - SynchronizerBuilderOption: a function that applies the logger option
func WithLogger(logger *zap.Logger) SynchronizerBuilderOption {
	return func(s *synchronizerImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOrigin sets the tag written with every store update. The synchronizer ignores store
// changes carrying its own origin. Defaults to a random "view_sync-<uuid>" tag.
//
// Parameters:
//   - origin: the tag
//
// Returns:
//   - SynchronizerBuilderOption: a function that applies the origin option
func WithOrigin(origin string) SynchronizerBuilderOption {
	return func(s *synchronizerImpl) {
		if origin != "" {
			s.origin = origin
		}
	}
}
