// Package sqlite keeps the key-value records in a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/aretw0/notemaster/pkg/core"
)

// ErrInvalidSync is returned by New for an unknown synchronous pragma.
var ErrInvalidSync = errors.New("invalid sync pragma")

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Config holds the connection settings.
type Config struct {
	// Path is the database file. ":memory:" keeps everything in process.
	Path      string
	EnableWAL bool
	// Sync is the synchronous pragma (OFF, NORMAL, FULL, EXTRA); empty keeps the driver default.
	Sync     string
	ReadOnly bool
}

// Storage implements core.Storage on a SQLite database.
type Storage struct {
	db     *sql.DB
	config Config
}

// dataSourceName turns config into a go-sqlite3 DSN. Read-only databases
// are opened as a file URI with mode=ro and never switch the journal mode,
// since that would need a write.
func dataSourceName(config Config) (string, error) {
	params := url.Values{}
	base := config.Path
	if config.ReadOnly {
		base = "file:" + config.Path
		params.Set("mode", "ro")
	} else if config.EnableWAL && config.Path != ":memory:" {
		params.Set("_journal_mode", "WAL")
	}

	if config.Sync != "" {
		switch mode := strings.ToUpper(config.Sync); mode {
		case "OFF", "NORMAL", "FULL", "EXTRA":
			params.Set("_synchronous", mode)
		default:
			return "", fmt.Errorf("%w %q (want OFF, NORMAL, FULL or EXTRA)", ErrInvalidSync, config.Sync)
		}
	}

	if len(params) == 0 {
		return base, nil
	}
	return base + "?" + params.Encode(), nil
}

// New opens (and if needed creates) the database and its kv table.
func New(config Config) (*Storage, error) {
	if config.Path == "" {
		return nil, errors.New("sqlite: empty database path")
	}
	dsn, err := dataSourceName(config)
	if err != nil {
		return nil, err
	}
	if config.Path != ":memory:" && !config.ReadOnly {
		if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
			return nil, fmt.Errorf("sqlite: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", config.Path, err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: open %s: %w", config.Path, err)
	}

	if !config.ReadOnly {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: create kv table: %w", err)
		}
	}
	return &Storage{db: db, config: config}, nil
}

// Read implements core.Storage.
func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		if s.config.ReadOnly && strings.Contains(err.Error(), "no such table") {
			return nil, fmt.Errorf("%s: %w", key, core.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

// Write implements core.Storage.
func (s *Storage) Write(ctx context.Context, key string, data []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete implements core.Storage.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys implements core.Storage.
func (s *Storage) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid key pattern %q", pattern)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		if ok, _ := doublestar.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Close checkpoints the WAL and closes the database.
func (s *Storage) Close() error {
	if s.config.EnableWAL && !s.config.ReadOnly {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);")
	}
	return s.db.Close()
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Path     string `json:"path"`
	WAL      bool   `json:"wal"`
	Sync     string `json:"sync,omitempty"`
	ReadOnly bool   `json:"read_only"`
	Keys     int    `json:"keys"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	var n int
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n)
	return StorageState{
		Path:     s.config.Path,
		WAL:      s.config.EnableWAL,
		Sync:     s.config.Sync,
		ReadOnly: s.config.ReadOnly,
		Keys:     n,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "sqlite"
}

var _ core.Storage = (*Storage)(nil)
