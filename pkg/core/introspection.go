package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Loaded      bool          `json:"loaded"`
	Notes       int           `json:"notes"`
	Tags        int           `json:"tags"`
	CurrentID   *int64        `json:"current_id,omitempty"`
	Query       Query         `json:"query"`
	LastID      int64         `json:"last_id"`
	LastPersist PersistStatus `json:"last_persist,omitempty"`
	Subscribers int           `json:"subscribers"`
	StorageType string        `json:"storage_type"`
	Codec       string        `json:"codec"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	state := StoreState{
		Loaded:      s.loaded,
		Notes:       len(s.notes),
		Tags:        len(AllTags(s.notes)),
		Query:       s.query,
		LastID:      s.lastID,
		LastPersist: s.lastPersist,
		StorageType: "unknown",
		Codec:       s.persist.Codec().Name(),
	}
	if s.hasCurrent {
		id := s.current
		state.CurrentID = &id
	}
	s.mu.RUnlock()

	// Try to get component type if storage implements introspection.Component
	if comp, ok := s.persist.Storage().(introspection.Component); ok {
		state.StorageType = comp.ComponentType()
	}

	s.subMu.Lock()
	state.Subscribers = len(s.subs)
	s.subMu.Unlock()

	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

// LastPersist reports the outcome of the most recent write-through.
func (s *Store) LastPersist() PersistStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPersist
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
