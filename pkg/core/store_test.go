package core_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notemaster/pkg/adapters/memory"
	"github.com/aretw0/notemaster/pkg/codec"
	"github.com/aretw0/notemaster/pkg/core"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newStore(t *testing.T, storage *memory.Storage, clock *fakeClock) *core.Store {
	t.Helper()
	p := core.NewPersistence(storage, codec.NewJSON(), nil)
	return core.NewStore(p, core.WithClock(clock.Now))
}

// loadedEmpty returns a store that loaded an empty stored collection.
func loadedEmpty(t *testing.T) (*core.Store, *memory.Storage, *fakeClock) {
	t.Helper()
	storage := memory.New()
	require.NoError(t, storage.Write(context.Background(), core.KeyNotes, []byte("[]")))
	clock := newFakeClock()
	s := newStore(t, storage, clock)
	s.Load(context.Background())
	return s, storage, clock
}

func storedNotes(t *testing.T, storage *memory.Storage) []core.Note {
	t.Helper()
	data, err := storage.Read(context.Background(), core.KeyNotes)
	require.NoError(t, err)
	var notes []core.Note
	require.NoError(t, json.Unmarshal(data, &notes))
	return notes
}

func TestStore_LoadSeedsSamplesWithoutPersisting(t *testing.T) {
	storage := memory.New()
	s := newStore(t, storage, newFakeClock())

	c := s.Load(context.Background())

	assert.Equal(t, core.ChangeLoaded, c.Kind)
	assert.Equal(t, 3, c.Count)
	assert.Equal(t, 0, storage.Writes(), "samples must not be written on load")

	notes := s.Notes()
	require.Len(t, notes, 3)
	assert.Equal(t, int64(1), notes[0].ID)
	assert.Equal(t, core.PriorityHigh, notes[0].Priority)
	assert.Equal(t, core.PriorityLow, notes[2].Priority)

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestStore_LoadUnreadableFallsBackToSamples(t *testing.T) {
	storage := memory.New()
	require.NoError(t, storage.Write(context.Background(), core.KeyNotes, []byte("{broken")))
	s := newStore(t, storage, newFakeClock())

	s.Load(context.Background())

	assert.Len(t, s.Notes(), 3)
}

func TestStore_LoadEmptyCollectionKeepsItEmpty(t *testing.T) {
	s, _, _ := loadedEmpty(t)
	assert.Empty(t, s.Notes())
}

func TestStore_Create(t *testing.T) {
	s, storage, clock := loadedEmpty(t)
	ctx := context.Background()

	c := s.Create(ctx)

	require.NotNil(t, c.Note)
	assert.Equal(t, core.ChangeCreated, c.Kind)
	assert.Equal(t, core.PersistPersisted, c.Persist)
	assert.Equal(t, clock.Now().UnixMilli(), c.ID)
	assert.Equal(t, core.DefaultTitle, c.Note.Title)
	assert.Equal(t, core.PriorityMedium, c.Note.Priority)
	assert.Empty(t, c.Note.Tags)
	assert.Equal(t, c.Note.CreatedAt, c.Note.UpdatedAt)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, c.ID, cur.ID)

	stored := storedNotes(t, storage)
	require.Len(t, stored, 1)
	assert.Equal(t, c.ID, stored[0].ID)
}

func TestStore_CreateSameMillisecondYieldsDistinctIDs(t *testing.T) {
	s, _, _ := loadedEmpty(t)
	ctx := context.Background()

	a := s.Create(ctx)
	b := s.Create(ctx)
	c := s.Create(ctx)

	assert.Less(t, a.ID, b.ID)
	assert.Less(t, b.ID, c.ID)

	notes := s.Notes()
	require.Len(t, notes, 3)
	assert.Equal(t, c.ID, notes[0].ID, "newest note goes first")
}

func TestStore_Save(t *testing.T) {
	s, storage, clock := loadedEmpty(t)
	ctx := context.Background()
	id := s.Create(ctx).ID
	clock.Advance(time.Minute)

	c, ok := s.Save(ctx, id, core.Input{
		Title:    "  Shopping  ",
		Content:  "milk",
		Tags:     " home , ,errands,  ",
		Priority: "HIGH",
	})

	require.True(t, ok)
	assert.Equal(t, core.ChangeSaved, c.Kind)
	assert.True(t, c.Persisted())
	assert.Equal(t, "Shopping", c.Note.Title)
	assert.Equal(t, []string{"home", "errands"}, c.Note.Tags)
	assert.Equal(t, core.PriorityHigh, c.Note.Priority)
	assert.Equal(t, clock.Now(), c.Note.UpdatedAt)
	assert.True(t, c.Note.UpdatedAt.After(c.Note.CreatedAt))

	assert.Equal(t, "Shopping", storedNotes(t, storage)[0].Title)
}

func TestStore_SaveNormalizesInput(t *testing.T) {
	s, _, _ := loadedEmpty(t)
	ctx := context.Background()
	id := s.Create(ctx).ID

	t.Run("blank title", func(t *testing.T) {
		c, _ := s.Save(ctx, id, core.Input{Title: "   "})
		assert.Equal(t, core.DefaultTitle, c.Note.Title)
	})
	t.Run("unknown priority", func(t *testing.T) {
		c, _ := s.Save(ctx, id, core.Input{Title: "x", Priority: "urgent"})
		assert.Equal(t, core.PriorityMedium, c.Note.Priority)
	})
	t.Run("duplicate tags are kept", func(t *testing.T) {
		c, _ := s.Save(ctx, id, core.Input{Title: "x", Tags: "a,a,b"})
		assert.Equal(t, []string{"a", "a", "b"}, c.Note.Tags)
	})
}

func TestStore_SaveNeverMovesUpdatedAtBackwards(t *testing.T) {
	s, _, clock := loadedEmpty(t)
	ctx := context.Background()
	created := s.Create(ctx)

	clock.Advance(-time.Hour)
	c, ok := s.Save(ctx, created.ID, core.Input{Title: "late"})

	require.True(t, ok)
	assert.Equal(t, created.Note.UpdatedAt, c.Note.UpdatedAt)
}

func TestStore_SaveMissingIsNoop(t *testing.T) {
	s, storage, _ := loadedEmpty(t)
	writes := storage.Writes()

	_, ok := s.Save(context.Background(), 42, core.Input{Title: "ghost"})

	assert.False(t, ok)
	assert.Equal(t, writes, storage.Writes())
	assert.Empty(t, s.Notes())
}

func TestStore_Duplicate(t *testing.T) {
	s, _, clock := loadedEmpty(t)
	ctx := context.Background()
	orig := s.Create(ctx)
	_, _ = s.Save(ctx, orig.ID, core.Input{Title: "Plan", Content: "body", Tags: "a, b", Priority: "low"})
	clock.Advance(time.Second)

	c, ok := s.Duplicate(ctx, orig.ID)

	require.True(t, ok)
	assert.NotEqual(t, orig.ID, c.ID)
	assert.Equal(t, "Plan (Copy)", c.Note.Title)
	assert.Equal(t, "body", c.Note.Content)
	assert.Equal(t, []string{"a", "b"}, c.Note.Tags)
	assert.Equal(t, core.PriorityLow, c.Note.Priority)
	assert.Equal(t, clock.Now(), c.Note.CreatedAt)

	notes := s.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, c.ID, notes[0].ID)

	cur, _ := s.Current()
	assert.Equal(t, c.ID, cur.ID)

	// Editing the copy leaves the original alone.
	_, _ = s.Save(ctx, c.ID, core.Input{Title: "Copy", Tags: "z"})
	got, _ := s.Get(orig.ID)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.Equal(t, "Plan", got.Title)
}

func TestStore_DuplicateMissingIsNoop(t *testing.T) {
	s, _, _ := loadedEmpty(t)
	_, ok := s.Duplicate(context.Background(), 7)
	assert.False(t, ok)
	assert.Empty(t, s.Notes())
}

func TestStore_Delete(t *testing.T) {
	s, storage, _ := loadedEmpty(t)
	ctx := context.Background()
	keep := s.Create(ctx).ID
	drop := s.Create(ctx).ID

	c, ok := s.Delete(ctx, drop)

	require.True(t, ok)
	assert.Equal(t, core.ChangeDeleted, c.Kind)
	assert.Nil(t, c.Note)
	_, ok = s.Current()
	assert.False(t, ok, "deleting the current note clears the selection")

	stored := storedNotes(t, storage)
	require.Len(t, stored, 1)
	assert.Equal(t, keep, stored[0].ID)

	_, ok = s.Delete(ctx, drop)
	assert.False(t, ok)
}

func TestStore_DeleteOtherKeepsSelection(t *testing.T) {
	s, _, _ := loadedEmpty(t)
	ctx := context.Background()
	other := s.Create(ctx).ID
	current := s.Create(ctx).ID

	_, _ = s.Delete(ctx, other)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, current, cur.ID)
}

func TestStore_Select(t *testing.T) {
	s, _, _ := loadedEmpty(t)
	ctx := context.Background()
	first := s.Create(ctx).ID
	second := s.Create(ctx).ID

	assert.True(t, s.Select(first))
	cur, _ := s.Current()
	assert.Equal(t, first, cur.ID)

	assert.False(t, s.Select(999))
	cur, _ = s.Current()
	assert.Equal(t, first, cur.ID, "unknown id leaves the selection")

	s.ClearSelection()
	_, ok := s.Current()
	assert.False(t, ok)
	assert.NotZero(t, second)
}

func TestStore_DegradedPersistence(t *testing.T) {
	s, storage, _ := loadedEmpty(t)
	ctx := context.Background()
	storage.FailWrites(true)

	c := s.Create(ctx)

	assert.Equal(t, core.PersistDegraded, c.Persist)
	assert.False(t, c.Persisted())
	assert.Len(t, s.Notes(), 1, "the change stays in memory")
	assert.Equal(t, core.PersistDegraded, s.LastPersist())

	storage.FailWrites(false)
	saved, ok := s.Save(ctx, c.ID, core.Input{Title: "recovered"})
	require.True(t, ok)
	assert.Equal(t, core.PersistPersisted, saved.Persist)
	assert.Equal(t, "recovered", storedNotes(t, storage)[0].Title)
}

func TestStore_PersistedCollectionReloads(t *testing.T) {
	s, storage, clock := loadedEmpty(t)
	ctx := context.Background()
	id := s.Create(ctx).ID
	_, _ = s.Save(ctx, id, core.Input{Title: "kept", Content: "c", Tags: "x", Priority: "high"})

	reloaded := newStore(t, storage, clock)
	reloaded.Load(ctx)

	require.Equal(t, s.Len(), reloaded.Len())
	got, ok := reloaded.Get(id)
	require.True(t, ok)
	want, _ := s.Get(id)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Tags, got.Tags)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))

	// Fresh ids keep increasing after a reload.
	next := reloaded.Create(ctx)
	assert.Greater(t, next.ID, id)
}

func TestStore_Subscribe(t *testing.T) {
	s, _, _ := loadedEmpty(t)
	ctx := context.Background()

	var got []core.ChangeKind
	unsubscribe := s.Subscribe(func(c core.Change) {
		got = append(got, c.Kind)
		// Reading from inside a subscriber must not deadlock.
		_ = s.Len()
	})

	id := s.Create(ctx).ID
	_, _ = s.Save(ctx, id, core.Input{Title: "t"})
	s.SetSearch("t")
	unsubscribe()
	_, _ = s.Delete(ctx, id)

	assert.Equal(t, []core.ChangeKind{core.ChangeCreated, core.ChangeSaved, core.ChangeQuery}, got)
}

func TestStore_Import(t *testing.T) {
	s, storage, _ := loadedEmpty(t)
	ctx := context.Background()
	existing := s.Create(ctx)

	ts := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	c := s.Import(ctx, []core.Note{
		{ID: 10, Title: "a", Tags: []string{"x"}, Priority: core.PriorityLow, CreatedAt: ts, UpdatedAt: ts},
		{ID: existing.ID, Title: "clash", CreatedAt: ts, UpdatedAt: ts},
		{ID: 10, Title: "repeat", CreatedAt: ts, UpdatedAt: ts},
		{ID: 11, Title: "", Priority: "bogus"},
	})

	assert.Equal(t, core.ChangeImported, c.Kind)
	assert.Equal(t, 4, c.Count)
	assert.True(t, c.Persisted())

	notes := s.Notes()
	require.Len(t, notes, 5)
	assert.Equal(t, int64(10), notes[0].ID)
	assert.Equal(t, "a", notes[0].Title)
	assert.True(t, notes[0].CreatedAt.Equal(ts))
	assert.NotEqual(t, existing.ID, notes[1].ID, "colliding id is replaced")
	assert.NotEqual(t, int64(10), notes[2].ID, "repeated id is replaced")
	assert.Equal(t, core.DefaultTitle, notes[3].Title)
	assert.Equal(t, core.PriorityMedium, notes[3].Priority)
	assert.False(t, notes[3].CreatedAt.IsZero())
	assert.Equal(t, existing.ID, notes[4].ID, "existing notes follow the imported ones")

	ids := map[int64]bool{}
	for _, n := range notes {
		assert.False(t, ids[n.ID], "duplicate id %d", n.ID)
		ids[n.ID] = true
	}
	assert.Len(t, storedNotes(t, storage), 5)
}

func TestStore_ViewUsesQueryState(t *testing.T) {
	s, _, clock := loadedEmpty(t)
	ctx := context.Background()

	a := s.Create(ctx).ID
	_, _ = s.Save(ctx, a, core.Input{Title: "Alpha", Tags: "work"})
	clock.Advance(time.Minute)
	b := s.Create(ctx).ID
	_, _ = s.Save(ctx, b, core.Input{Title: "beta", Tags: "home"})

	assert.Equal(t, []int64{b, a}, ids(s.View()))

	s.SetSort(core.SortTitle)
	assert.Equal(t, []int64{a, b}, ids(s.View()))

	s.SetFilter("home")
	assert.Equal(t, []int64{b}, ids(s.View()))

	s.SetFilter("")
	s.SetSearch("ALP")
	assert.Equal(t, []int64{a}, ids(s.View()))
	assert.Equal(t, core.FilterAll, s.Query().Filter)
}

func TestStore_Stats(t *testing.T) {
	s, _, clock := loadedEmpty(t)
	ctx := context.Background()
	id := s.Create(ctx).ID
	_, _ = s.Save(ctx, id, core.Input{Title: "t", Content: "one two  three", Tags: "a,b"})

	st := s.Stats()
	assert.Equal(t, core.Stats{TotalNotes: 1, TotalWords: 3, TotalTags: 2, CreatedToday: 1}, st)

	clock.Advance(48 * time.Hour)
	assert.Equal(t, 0, s.Stats().CreatedToday)
}

func TestStore_ConcurrentUse(t *testing.T) {
	s, _, _ := loadedEmpty(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				c := s.Create(ctx)
				_, _ = s.Save(ctx, c.ID, core.Input{Title: "n"})
				_ = s.View()
			}
		}()
	}
	wg.Wait()

	notes := s.Notes()
	assert.Len(t, notes, 160)
	seen := map[int64]bool{}
	for _, n := range notes {
		require.False(t, seen[n.ID])
		seen[n.ID] = true
	}
}

func TestStore_State(t *testing.T) {
	s, _, _ := loadedEmpty(t)
	s.Create(context.Background())

	state, ok := s.State().(core.StoreState)
	require.True(t, ok)
	assert.True(t, state.Loaded)
	assert.Equal(t, 1, state.Notes)
	assert.NotNil(t, state.CurrentID)
	assert.Equal(t, "memory", state.StorageType)
	assert.Equal(t, "json", state.Codec)
	assert.Equal(t, core.PersistPersisted, state.LastPersist)
	assert.Equal(t, "store", s.ComponentType())
}

func ids(notes []core.Note) []int64 {
	out := make([]int64, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}
