package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notemaster/pkg/core"
)

// debounceWindow coalesces the burst of events an atomic rename produces.
const debounceWindow = 50 * time.Millisecond

type watchWorker struct {
	storage *Storage
	pattern string
	events  chan core.Event
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

// Watch reports changes to keys matching pattern made by other processes.
// Writes issued through this Storage are filtered out. The channel is closed
// when ctx is cancelled.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid key pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	w := &watchWorker{
		storage: s,
		pattern: pattern,
		events:  make(chan core.Event, 16),
		watcher: watcher,
		pending: make(map[string]*time.Timer),
	}
	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		if s.config.ErrorHandler != nil {
			s.config.ErrorHandler(fmt.Errorf("watcher: %w", err))
		} else {
			s.config.Logger.Error("watcher stopped", "error", err)
		}
	}))
	return w.events, nil
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.storage.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
		w.shutdown()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			w.process(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			logger.Error("fsnotify error", "error", wErr)
			if w.storage.config.ErrorHandler != nil {
				w.storage.config.ErrorHandler(wErr)
			}
		}
	}
}

// process filters, maps and debounces one filesystem event.
func (w *watchWorker) process(ctx context.Context, event fsnotify.Event) {
	key, ok := w.storage.keyFor(event.Name)
	if !ok {
		return
	}
	if match, _ := doublestar.Match(w.pattern, key); !match {
		return
	}
	if eventType(event) == "" {
		return
	}
	w.storage.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if t, ok := w.pending[key]; ok && t.Stop() {
		w.wg.Done()
	}
	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(debounceWindow, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.pending[key] == timer {
			delete(w.pending, key)
		}
		stopped := w.stopped
		w.mu.Unlock()
		if !stopped {
			w.emit(ctx, key, event)
		}
	})
	w.pending[key] = timer
}

// emit resolves the final state of key after the debounce window.
func (w *watchWorker) emit(ctx context.Context, key string, last fsnotify.Event) {
	name, _ := w.storage.filename(key)
	typ := eventType(last)

	data, err := os.ReadFile(name)
	switch {
	case errors.Is(err, os.ErrNotExist):
		typ = core.EventDelete
	case err != nil:
		return
	case w.storage.ownWrite(key, data):
		return
	case typ == core.EventDelete:
		typ = core.EventModify
	}

	now := time.Now()
	w.storage.recordEvent(now)

	select {
	case w.events <- core.Event{Type: typ, Key: key, Timestamp: now.Unix()}:
	case <-ctx.Done():
	}
}

// shutdown stops pending timers, waits for in-flight ones and closes the channel.
func (w *watchWorker) shutdown() {
	w.mu.Lock()
	w.stopped = true
	for key, t := range w.pending {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.pending, key)
	}
	w.mu.Unlock()

	w.wg.Wait()
	_ = w.watcher.Close()
	w.storage.setWatcherActive(false)
	close(w.events)
}

func eventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}
