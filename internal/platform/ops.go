package platform

import (
	"fmt"
	"path/filepath"

	"github.com/aretw0/notemaster/pkg/adapters/fs"
	"github.com/aretw0/notemaster/pkg/adapters/memory"
	"github.com/aretw0/notemaster/pkg/adapters/sqlite"
	"github.com/aretw0/notemaster/pkg/codec"
	"github.com/aretw0/notemaster/pkg/core"
)

// SQLiteFilename is the database file name inside the data directory.
const SQLiteFilename = "notemaster.db"

// initStorage builds the storage selected by the options. The dir argument
// is backend-specific: a directory for "fs", the parent of the database
// file for "sqlite", ignored for "memory".
func initStorage(dir string, c core.Codec, o *options) (core.Storage, error) {
	// 1. Check for injected storage
	if o.storage != nil {
		return o.storage, nil
	}

	// 2. Initialize based on backend
	switch o.backend {
	case BackendFS:
		return fs.New(fs.Config{
			Path:         dir,
			Extension:    codec.Extension(c),
			ReadOnly:     o.readOnly,
			Logger:       o.logger,
			ErrorHandler: o.watchErr,
		})
	case BackendSQLite:
		path := dir
		if filepath.Ext(path) == "" {
			path = filepath.Join(dir, SQLiteFilename)
		}
		return sqlite.New(sqlite.Config{
			Path:      path,
			EnableWAL: true,
			Sync:      o.sync,
			ReadOnly:  o.readOnly,
		})
	case BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", o.backend)
	}
}
