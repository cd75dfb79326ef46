package core

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Store owns the note collection and the session view state. Every mutation
// writes the whole collection through the Persistence boundary and then
// notifies subscribers. Store is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	notes      []Note
	current    int64
	hasCurrent bool
	query      Query
	lastID     int64
	loaded     bool

	persist     *Persistence
	lastPersist PersistStatus
	logger      *slog.Logger
	now         func() time.Time

	subMu     sync.Mutex
	subs      map[int]func(Change)
	nextSubID int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStoreLogger sets the logger used for store diagnostics.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty store backed by p. Call Load before use.
func NewStore(p *Persistence, opts ...StoreOption) *Store {
	s := &Store{
		persist: p,
		query:   DefaultQuery(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		subs:    make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for every future Change. fn runs on the goroutine
// that made the change, after the store lock is released. The returned
// func removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(c Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

// Load reads the collection from storage. When nothing usable is stored the
// sample notes are installed in memory only; they reach storage with the
// first mutation.
func (s *Store) Load(ctx context.Context) Change {
	var stored []Note
	ok := s.persist.Load(ctx, KeyNotes, &stored)

	s.mu.Lock()
	now := s.now()
	if ok {
		s.notes = make([]Note, 0, len(stored))
		seen := make(map[int64]struct{}, len(stored))
		for _, n := range stored {
			n = normalize(n, now)
			if _, dup := seen[n.ID]; dup {
				n.ID = s.freshIDLocked(seen, now)
			}
			seen[n.ID] = struct{}{}
			s.notes = append(s.notes, n)
		}
		s.logger.Debug("notes loaded", "count", len(s.notes))
	} else {
		s.notes = SampleNotes(now)
		s.logger.Debug("no stored notes, using samples", "count", len(s.notes))
	}
	for _, n := range s.notes {
		if n.ID > s.lastID {
			s.lastID = n.ID
		}
	}
	s.current, s.hasCurrent = 0, false
	s.loaded = true
	c := Change{Kind: ChangeLoaded, Count: len(s.notes)}
	s.mu.Unlock()

	s.publish(c)
	return c
}

// Create inserts a blank note at the front of the collection and selects it.
func (s *Store) Create(ctx context.Context) Change {
	s.mu.Lock()
	now := s.now()
	n := Note{
		ID:        s.nextIDLocked(now),
		Title:     DefaultTitle,
		Content:   "",
		Tags:      []string{},
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append([]Note{n}, s.notes...)
	s.current, s.hasCurrent = n.ID, true
	status := s.writeLocked(ctx)
	c := Change{Kind: ChangeCreated, ID: n.ID, Note: ptr(n.Clone()), Count: 1, Persist: status}
	s.mu.Unlock()

	s.publish(c)
	return c
}

// Save applies the editor state to note id. It reports false, and changes
// nothing, when the note does not exist.
func (s *Store) Save(ctx context.Context, id int64, in Input) (Change, bool) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return Change{}, false
	}

	n := &s.notes[i]
	n.Title = normalizeTitle(in.Title)
	n.Content = in.Content
	n.Tags = ParseTags(in.Tags)
	n.Priority = ParsePriority(in.Priority)
	if now := s.now(); now.After(n.UpdatedAt) {
		n.UpdatedAt = now
	}
	status := s.writeLocked(ctx)
	c := Change{Kind: ChangeSaved, ID: id, Note: ptr(n.Clone()), Count: 1, Persist: status}
	s.mu.Unlock()

	s.publish(c)
	return c, true
}

// Duplicate copies note id under a new id at the front and selects the copy.
func (s *Store) Duplicate(ctx context.Context, id int64) (Change, bool) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return Change{}, false
	}

	now := s.now()
	dup := s.notes[i].Clone()
	dup.ID = s.nextIDLocked(now)
	dup.Title = dup.Title + " (Copy)"
	dup.CreatedAt = now
	dup.UpdatedAt = now
	s.notes = append([]Note{dup}, s.notes...)
	s.current, s.hasCurrent = dup.ID, true
	status := s.writeLocked(ctx)
	c := Change{Kind: ChangeDuplicated, ID: dup.ID, Note: ptr(dup.Clone()), Count: 1, Persist: status}
	s.mu.Unlock()

	s.publish(c)
	return c, true
}

// Delete removes note id. Confirmation is the caller's job.
func (s *Store) Delete(ctx context.Context, id int64) (Change, bool) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return Change{}, false
	}

	s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
	if s.hasCurrent && s.current == id {
		s.current, s.hasCurrent = 0, false
	}
	status := s.writeLocked(ctx)
	c := Change{Kind: ChangeDeleted, ID: id, Count: 1, Persist: status}
	s.mu.Unlock()

	s.publish(c)
	return c, true
}

// Select makes note id current. Unknown ids leave the selection alone.
func (s *Store) Select(id int64) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.current, s.hasCurrent = id, true
	c := Change{Kind: ChangeSelected, ID: id, Note: ptr(s.notes[i].Clone())}
	s.mu.Unlock()

	s.publish(c)
	return true
}

// ClearSelection leaves no note current.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.current, s.hasCurrent = 0, false
	s.mu.Unlock()

	s.publish(Change{Kind: ChangeSelected})
}

// Import prepends notes to the collection. Ids already in use, or repeated
// within the batch, are replaced by fresh ones; all other fields are kept
// after normalisation.
func (s *Store) Import(ctx context.Context, notes []Note) Change {
	s.mu.Lock()
	now := s.now()
	used := make(map[int64]struct{}, len(s.notes)+len(notes))
	for _, n := range s.notes {
		used[n.ID] = struct{}{}
	}

	imported := make([]Note, 0, len(notes))
	for _, n := range notes {
		n = normalize(n.Clone(), now)
		if _, taken := used[n.ID]; taken || n.ID <= 0 {
			n.ID = s.freshIDLocked(used, now)
		}
		used[n.ID] = struct{}{}
		if n.ID > s.lastID {
			s.lastID = n.ID
		}
		imported = append(imported, n)
	}

	s.notes = append(imported, s.notes...)
	status := s.writeLocked(ctx)
	c := Change{Kind: ChangeImported, Count: len(imported), Persist: status}
	s.mu.Unlock()

	s.logger.Info("notes imported", "count", len(imported), "persist", status)
	s.publish(c)
	return c
}

// SetFilter restricts the view to a tag, or FilterAll.
func (s *Store) SetFilter(filter string) {
	if filter == "" {
		filter = FilterAll
	}
	s.updateQuery(func(q *Query) { q.Filter = filter })
}

// SetSearch sets the free-text search term.
func (s *Store) SetSearch(term string) {
	s.updateQuery(func(q *Query) { q.Search = term })
}

// SetSort changes the ordering of the view.
func (s *Store) SetSort(key SortKey) {
	s.updateQuery(func(q *Query) { q.Sort = ParseSortKey(string(key)) })
}

func (s *Store) updateQuery(fn func(*Query)) {
	s.mu.Lock()
	fn(&s.query)
	s.mu.Unlock()

	s.publish(Change{Kind: ChangeQuery})
}

// Query returns the current view state.
func (s *Store) Query() Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// View returns the visible notes under the current query.
func (s *Store) View() []Note {
	s.mu.RLock()
	notes := s.snapshotLocked()
	q := s.query
	s.mu.RUnlock()
	return Apply(notes, q)
}

// Notes returns a copy of the whole collection in storage order.
func (s *Store) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Get returns a copy of note id.
func (s *Store) Get(id int64) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.notes[i].Clone(), true
	}
	return Note{}, false
}

// Current returns the selected note, if any.
func (s *Store) Current() (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasCurrent {
		return Note{}, false
	}
	if i := s.indexLocked(s.current); i >= 0 {
		return s.notes[i].Clone(), true
	}
	return Note{}, false
}

// Tags returns the distinct tags of the collection.
func (s *Store) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AllTags(s.notes)
}

// Stats summarises the collection.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStats(s.notes, s.now())
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

func (s *Store) snapshotLocked() []Note {
	out := make([]Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = n.Clone()
	}
	return out
}

func (s *Store) indexLocked(id int64) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) writeLocked(ctx context.Context) PersistStatus {
	status := s.persist.Save(ctx, KeyNotes, s.notes)
	s.lastPersist = status
	return status
}

// nextIDLocked issues max(now in ms, last issued + 1), skipping ids in use.
func (s *Store) nextIDLocked(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for s.indexLocked(id) >= 0 {
		id++
	}
	s.lastID = id
	return id
}

func (s *Store) freshIDLocked(used map[int64]struct{}, now time.Time) int64 {
	id := s.nextIDLocked(now)
	for {
		if _, taken := used[id]; !taken {
			break
		}
		id++
	}
	s.lastID = id
	return id
}

func normalizeTitle(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return DefaultTitle
}

// normalize repairs notes coming from storage or an import bundle.
func normalize(n Note, now time.Time) Note {
	if strings.TrimSpace(n.Title) == "" {
		n.Title = DefaultTitle
	}
	n.Priority = ParsePriority(string(n.Priority))
	tags := make([]string, 0, len(n.Tags))
	for _, t := range n.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	n.Tags = tags

	switch {
	case n.CreatedAt.IsZero() && n.UpdatedAt.IsZero():
		n.CreatedAt, n.UpdatedAt = now, now
	case n.CreatedAt.IsZero():
		n.CreatedAt = n.UpdatedAt
	case n.UpdatedAt.Before(n.CreatedAt):
		n.UpdatedAt = n.CreatedAt
	}
	return n
}

func ptr[T any](v T) *T { return &v }
