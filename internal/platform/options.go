package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/notemaster/pkg/core"
)

// options holds the internal configuration for an App.
type options struct {
	storage  core.Storage
	logger   *slog.Logger
	backend  string
	format   string
	readOnly bool
	sync     string
	now      func() time.Time
	watchErr func(error)
}

// Option defines a functional option for configuring the App.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		backend: BackendFS,
		format:  "json",
		sync:    "FULL",
	}
}

// WithConfig applies a loaded Config. Options given after it still win.
func WithConfig(c Config) Option {
	return func(o *options) {
		if c.Backend != "" {
			o.backend = c.Backend
		}
		if c.Format != "" {
			o.format = c.Format
		}
		o.readOnly = c.ReadOnly
	}
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage injects a ready storage (e.g. memory for tests).
// The backend option is ignored when set.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithBackend selects the storage by name: "fs", "sqlite" or "memory".
// Defaults to "fs".
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithFormat selects the value encoding: "json" (default) or "yaml".
func WithFormat(name string) Option {
	return func(o *options) {
		o.format = name
	}
}

// WithReadOnly opens the storage read-only. Mutations still apply in memory
// and report a degraded persistence status.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithSyncPragma sets the SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA).
func WithSyncPragma(mode string) Option {
	return func(o *options) {
		o.sync = mode
	}
}

// WithClock replaces time.Now in the store.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.watchErr = fn
	}
}
