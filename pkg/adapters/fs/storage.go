// Package fs stores each key as one file in a directory.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/notemaster/pkg/core"
)

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path string
	// Extension is appended to every key to form its file name (e.g. ".json").
	Extension string
	ReadOnly  bool
	Logger    *slog.Logger
	// ErrorHandler receives runtime watcher failures that are otherwise only logged.
	ErrorHandler func(error)
}

// Storage implements core.Storage on a directory.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	written       map[string][]byte
	watcherActive bool
	lastEvent     *time.Time
}

// New prepares the directory (unless read-only) and returns the storage.
func New(config Config) (*Storage, error) {
	if config.Extension == "" {
		config.Extension = ".json"
	}
	if !strings.HasPrefix(config.Extension, ".") {
		config.Extension = "." + config.Extension
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if config.ReadOnly {
		if info, err := os.Stat(config.Path); err == nil && !info.IsDir() {
			return nil, fmt.Errorf("storage path is not a directory: %s", config.Path)
		}
	} else if err := os.MkdirAll(config.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &Storage{
		Path:    config.Path,
		config:  config,
		written: make(map[string][]byte),
	}, nil
}

func (s *Storage) filename(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." || strings.HasPrefix(key, TempFilePrefix) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.Path, key+s.config.Extension), nil
}

// Read implements core.Storage.
func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := s.filename(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Write implements core.Storage.
func (s *Storage) Write(ctx context.Context, key string, data []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := s.filename(key)
	if err != nil {
		return err
	}
	if err := replaceFile(name, data, 0644); err != nil {
		return err
	}

	s.mu.Lock()
	s.written[key] = append([]byte(nil), data...)
	s.mu.Unlock()

	s.config.Logger.Debug("file written", "path", name, "bytes", len(data))
	return nil
}

// Delete implements core.Storage.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := s.filename(key)
	if err != nil {
		return err
	}
	if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}

	s.mu.Lock()
	delete(s.written, key)
	s.mu.Unlock()
	return nil
}

// Keys implements core.Storage.
func (s *Storage) Keys(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid key pattern %q", pattern)
	}

	entries, err := os.ReadDir(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.Path, err)
	}

	keys := []string{}
	for _, e := range entries {
		key, ok := s.keyFor(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		if match, _ := doublestar.Match(pattern, key); match {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// keyFor maps a file name back to its key.
func (s *Storage) keyFor(name string) (string, bool) {
	base := filepath.Base(name)
	if strings.HasPrefix(base, TempFilePrefix) || strings.HasPrefix(base, ".") {
		return "", false
	}
	key, ok := strings.CutSuffix(base, s.config.Extension)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// ownWrite reports whether data is exactly what this process last wrote to key.
func (s *Storage) ownWrite(key string, data []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	last, ok := s.written[key]
	return ok && bytes.Equal(last, data)
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
