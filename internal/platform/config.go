package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	EnvDir      = "NOTEMASTER_DIR"
	EnvBackend  = "NOTEMASTER_BACKEND"
	EnvFormat   = "NOTEMASTER_FORMAT"
	EnvReadOnly = "NOTEMASTER_READONLY"
)

// Storage backends.
const (
	BackendFS     = "fs"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the environment-level configuration of the app.
type Config struct {
	Dir      string
	Backend  string
	Format   string
	ReadOnly bool
}

// DefaultDataDir returns a system-appropriate directory for the notes.
func DefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return LocalDirName
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", "notemaster")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "notemaster")
	default: // linux and others
		return filepath.Join(homeDir, ".local", "share", "notemaster")
	}
}

// LoadConfig reads envFiles (missing files are ignored) into the process
// environment and builds a Config from it. Variables already set win over
// the files. Without NOTEMASTER_DIR, a .notemaster directory above the
// working directory is used, then DefaultDataDir.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	c := Config{
		Dir:     os.Getenv(EnvDir),
		Backend: strings.ToLower(os.Getenv(EnvBackend)),
		Format:  strings.ToLower(os.Getenv(EnvFormat)),
	}
	if v := os.Getenv(EnvReadOnly); v != "" {
		ro, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvReadOnly, err)
		}
		c.ReadOnly = ro
	}

	if c.Dir == "" {
		if wd, err := os.Getwd(); err == nil {
			if root, err := FindRoot(wd); err == nil {
				c.Dir = root
			}
		}
	}
	if c.Dir == "" {
		c.Dir = DefaultDataDir()
	}
	c.Dir = expandHome(c.Dir)

	if c.Backend == "" {
		c.Backend = BackendFS
	}
	if c.Format == "" {
		c.Format = "json"
	}
	return c, c.Validate()
}

// Validate checks the backend name.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFS, BackendSQLite, BackendMemory:
		return nil
	}
	return fmt.Errorf("unknown backend %q (want fs, sqlite or memory)", c.Backend)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
