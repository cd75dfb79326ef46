package notemaster

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/notemaster/internal/platform"
	"github.com/aretw0/notemaster/pkg/core"
)

// --- Types ---

// App is a public alias for a wired NoteMaster instance.
type App = platform.App

// Config is a public alias for the environment configuration.
type Config = platform.Config

// --- Configuration ---

// Option defines a functional option for configuring NoteMaster.
type Option = platform.Option

// LoadConfig reads optional .env files and the NOTEMASTER_* variables.
func LoadConfig(envFiles ...string) (Config, error) {
	return platform.LoadConfig(envFiles...)
}

// DefaultDataDir returns the per-user data directory.
func DefaultDataDir() string {
	return platform.DefaultDataDir()
}

// WithConfig applies a loaded Config.
func WithConfig(c Config) Option {
	return platform.WithConfig(c)
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage adapter.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithBackend selects the storage adapter by name ("fs", "sqlite", "memory").
func WithBackend(name string) Option {
	return platform.WithBackend(name)
}

// WithFormat selects the encoding of stored values ("json", "yaml").
func WithFormat(name string) Option {
	return platform.WithFormat(name)
}

// WithReadOnly opens the storage without write access.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithSyncPragma sets the SQLite synchronous pragma.
func WithSyncPragma(mode string) Option {
	return platform.WithSyncPragma(mode)
}

// WithClock replaces the time source of the note store.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithWatcherErrorHandler receives runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// Open wires storage, store and preferences for the data directory dir.
func Open(ctx context.Context, dir string, opts ...Option) (*App, error) {
	return platform.Open(ctx, dir, opts...)
}

// ErrNotWatchable is returned by App.Watch for storage without change events.
var ErrNotWatchable = platform.ErrNotWatchable
