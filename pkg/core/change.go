package core

// ChangeKind names what happened to the store.
type ChangeKind string

const (
	ChangeLoaded     ChangeKind = "loaded"
	ChangeCreated    ChangeKind = "created"
	ChangeSaved      ChangeKind = "saved"
	ChangeDuplicated ChangeKind = "duplicated"
	ChangeDeleted    ChangeKind = "deleted"
	ChangeSelected   ChangeKind = "selected"
	ChangeImported   ChangeKind = "imported"
	ChangeQuery      ChangeKind = "query"
)

// PersistStatus is the outcome of a write-through.
type PersistStatus string

const (
	// PersistSkipped means the change did not touch storage.
	PersistSkipped   PersistStatus = ""
	PersistPersisted PersistStatus = "persisted"
	// PersistDegraded means the write failed and the change lives in memory only.
	PersistDegraded PersistStatus = "degraded"
)

// Change is published to subscribers after every mutation or view-state update.
type Change struct {
	Kind ChangeKind
	// ID is the affected note, zero for collection-wide changes.
	ID int64
	// Note is a copy of the affected note after the change, nil when removed.
	Note *Note
	// Count is the number of notes involved (imports, loads).
	Count   int
	Persist PersistStatus
}

// Persisted reports whether the change reached storage.
func (c Change) Persisted() bool {
	return c.Persist == PersistPersisted
}
