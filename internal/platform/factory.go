package platform

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"

	lcadapter "github.com/aretw0/notemaster/pkg/adapters/lifecycle"
	"github.com/aretw0/notemaster/pkg/codec"
	"github.com/aretw0/notemaster/pkg/core"
)

// App is a fully wired NoteMaster instance.
type App struct {
	Store       *core.Store
	Preferences *core.Preferences
	Persistence *core.Persistence
	Dir         string

	logger *slog.Logger
}

// Open builds the storage, loads the notes and the preferences.
//
//	app, err := platform.Open(ctx, "~/.local/share/notemaster", platform.WithBackend("sqlite"))
func Open(ctx context.Context, dir string, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c, err := codec.ByName(o.format)
	if err != nil {
		return nil, err
	}

	storage, err := initStorage(expandHome(dir), c, o)
	if err != nil {
		return nil, err
	}

	persist := core.NewPersistence(storage, c, o.logger)
	storeOpts := []core.StoreOption{core.WithStoreLogger(o.logger)}
	if o.now != nil {
		storeOpts = append(storeOpts, core.WithClock(o.now))
	}

	app := &App{
		Store:       core.NewStore(persist, storeOpts...),
		Preferences: core.NewPreferences(persist),
		Persistence: persist,
		Dir:         dir,
		logger:      o.logger,
	}
	app.Store.Load(ctx)
	app.Preferences.Load(ctx)

	o.logger.Debug("app opened",
		"backend", componentType(storage),
		"codec", c.Name(),
		"notes", app.Store.Len(),
	)
	return app, nil
}

// Logger returns the logger shared by every component.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases the storage when it holds resources (e.g. a database).
func (a *App) Close() error {
	if c, ok := a.Persistence.Storage().(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ErrNotWatchable is returned by Watch when the backend cannot report
// external changes.
var ErrNotWatchable = errors.New("storage does not support watching")

// Watch reloads the preferences when another process changes them. The
// note collection is left alone for the rest of the session.
// It returns once the watcher is running and stops with ctx.
func (a *App) Watch(ctx context.Context) error {
	w, ok := a.Persistence.Storage().(core.Watchable)
	if !ok {
		return ErrNotWatchable
	}
	events, err := w.Watch(ctx, "{"+core.KeySettings+","+core.KeyTheme+"}")
	if err != nil {
		return err
	}

	src := lcadapter.NewSource(events, lcadapter.WithKeys(core.KeySettings, core.KeyTheme))
	if err := src.Start(ctx); err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for e := range src.Events() {
			a.apply(ctx, e)
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		a.logger.Error("reload worker failed", "error", err)
	}))
	return nil
}

func (a *App) apply(ctx context.Context, e lifecycle.Event) {
	ev, ok := e.(core.Event)
	if !ok {
		return
	}
	a.logger.Info("external change", "event", ev.String())
	switch ev.Key {
	case core.KeySettings, core.KeyTheme:
		a.Preferences.Reload(ctx)
	}
}

// AppState is the inspectable snapshot of an App.
type AppState struct {
	Dir      string        `json:"dir"`
	Store    any           `json:"store"`
	Settings core.Settings `json:"settings"`
	Theme    core.Theme    `json:"theme"`
	Storage  any           `json:"storage,omitempty"`
}

// State implements introspection.Introspectable.
func (a *App) State() any {
	s := AppState{
		Dir:      a.Dir,
		Store:    a.Store.State(),
		Settings: a.Preferences.Settings(),
		Theme:    a.Preferences.Theme(),
	}
	if in, ok := a.Persistence.Storage().(introspection.Introspectable); ok {
		s.Storage = in.State()
	}
	return s
}

// ComponentType implements introspection.Component.
func (a *App) ComponentType() string {
	return "app"
}

func componentType(s core.Storage) string {
	if c, ok := s.(introspection.Component); ok {
		return c.ComponentType()
	}
	return "custom"
}

var _ introspection.Introspectable = (*App)(nil)
