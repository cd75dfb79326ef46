package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
)

// Storage is a flat key-value medium. Adapters (filesystem, sqlite, memory)
// implement it; the core never knows which one it talks to.
type Storage interface {
	// Read returns the raw value of key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the value of key.
	Write(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists stored keys matching a glob pattern ("" matches all).
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// EventType represents the type of change to a stored key.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event reports an external change to a stored key.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}

// Watchable is implemented by storages that can report changes made outside
// the process (e.g. a user editing the settings file).
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Codec turns values into stored bytes and back.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Persistence is the typed boundary in front of a Storage. It never returns
// errors to the store: failures are logged and reported as a status.
type Persistence struct {
	storage Storage
	codec   Codec
	logger  *slog.Logger
	timeout time.Duration
}

// NewPersistence wraps storage with codec. A nil logger discards output.
func NewPersistence(storage Storage, codec Codec, logger *slog.Logger) *Persistence {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Persistence{
		storage: storage,
		codec:   codec,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Storage exposes the wrapped medium.
func (p *Persistence) Storage() Storage {
	return p.storage
}

// Codec exposes the value encoding.
func (p *Persistence) Codec() Codec {
	return p.codec
}

// Load decodes key into v. It returns false when the key is absent or its
// value cannot be read or decoded; v may then be partially filled.
func (p *Persistence) Load(ctx context.Context, key string, v any) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	data, err := p.storage.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.logger.Warn("storage read failed", "key", key, "error", err)
		}
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := p.codec.Unmarshal(data, v); err != nil {
		p.logger.Warn("stored value is unreadable", "key", key, "codec", p.codec.Name(), "error", err)
		return false
	}
	return true
}

// Save encodes v under key.
func (p *Persistence) Save(ctx context.Context, key string, v any) PersistStatus {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	data, err := p.codec.Marshal(v)
	if err != nil {
		p.logger.Warn("encode failed, keeping change in memory", "key", key, "error", err)
		return PersistDegraded
	}
	if err := p.storage.Write(ctx, key, data); err != nil {
		p.logger.Warn("storage write failed, keeping change in memory", "key", key, "error", err)
		return PersistDegraded
	}
	p.logger.Debug("persisted", "key", key, "bytes", len(data))
	return PersistPersisted
}
