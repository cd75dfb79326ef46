package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notemaster/pkg/adapters/fs"
	"github.com/aretw0/notemaster/pkg/codec"
	"github.com/aretw0/notemaster/pkg/core"
)

func newStorage(t *testing.T, dir string) *fs.Storage {
	t.Helper()
	s, err := fs.New(fs.Config{Path: dir, Extension: ".json"})
	require.NoError(t, err)
	return s
}

func TestStorage_ReadWriteDelete(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	s := newStorage(t, dir)

	_, err := s.Read(ctx, core.KeyNotes)
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, s.Write(ctx, core.KeyNotes, []byte("[]")))
	assert.FileExists(t, filepath.Join(dir, "notemaster-notes.json"))

	got, err := s.Read(ctx, core.KeyNotes)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, s.Delete(ctx, core.KeyNotes))
	require.NoError(t, s.Delete(ctx, core.KeyNotes))
	_, err = s.Read(ctx, core.KeyNotes)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStorage_Keys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := newStorage(t, dir)

	require.NoError(t, s.Write(ctx, core.KeyNotes, []byte("[]")))
	require.NoError(t, s.Write(ctx, core.KeySettings, []byte("{}")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fs.TempFilePrefix+"123"), []byte("x"), 0644))

	keys, err := s.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{core.KeyNotes, core.KeySettings}, keys)

	keys, err = s.Keys(ctx, "*-settings")
	require.NoError(t, err)
	assert.Equal(t, []string{core.KeySettings}, keys)

	_, err = s.Keys(ctx, "[")
	assert.Error(t, err)
}

func TestStorage_RejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t, t.TempDir())

	for _, key := range []string{"", "../escape", "a/b", ".."} {
		assert.Error(t, s.Write(ctx, key, []byte("x")), key)
	}
}

func TestStorage_ReadOnly(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notemaster-theme.json"), []byte(`"light"`), 0644))

	s, err := fs.New(fs.Config{Path: dir, ReadOnly: true})
	require.NoError(t, err)

	got, err := s.Read(ctx, core.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, `"light"`, string(got))

	assert.ErrorIs(t, s.Write(ctx, core.KeyTheme, []byte(`"dark"`)), core.ErrReadOnly)
	assert.ErrorIs(t, s.Delete(ctx, core.KeyTheme), core.ErrReadOnly)
}

func TestStorage_ReadOnlyMissingDirIsNotCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	_, err := fs.New(fs.Config{Path: dir, ReadOnly: true})
	require.NoError(t, err)
	assert.NoDirExists(t, dir)
}

func TestStorage_YAMLExtension(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := fs.New(fs.Config{Path: dir, Extension: "yaml"})
	require.NoError(t, err)

	p := core.NewPersistence(s, codec.NewYAML(), nil)
	assert.Equal(t, core.PersistPersisted, p.Save(ctx, core.KeySettings, core.DefaultSettings()))
	assert.FileExists(t, filepath.Join(dir, "notemaster-settings.yaml"))

	got := core.Settings{}
	require.True(t, p.Load(ctx, core.KeySettings, &got))
	assert.Equal(t, core.DefaultSettings(), got)
}

func TestStorage_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p := core.NewPersistence(newStorage(t, dir), codec.NewJSON(), nil)

	store := core.NewStore(p)
	store.Load(ctx)
	created := store.Create(ctx)
	require.True(t, created.Persisted())

	reopened := core.NewStore(core.NewPersistence(newStorage(t, dir), codec.NewJSON(), nil))
	reopened.Load(ctx)
	assert.Equal(t, 4, reopened.Len(), "samples plus the created note")
	_, ok := reopened.Get(created.ID)
	assert.True(t, ok)
}

func TestStorage_State(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t, t.TempDir())
	require.NoError(t, s.Write(ctx, core.KeyTheme, []byte(`"dark"`)))

	state, ok := s.State().(fs.StorageState)
	require.True(t, ok)
	assert.Equal(t, []string{core.KeyTheme}, state.Keys)
	assert.Equal(t, ".json", state.Extension)
	assert.False(t, state.WatcherActive)
	assert.Equal(t, "fs", s.ComponentType())
}

func TestStorage_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	s := newStorage(t, dir)

	events, err := s.Watch(ctx, "*-settings")
	require.NoError(t, err)

	// Writes made through the storage itself are not reported.
	require.NoError(t, s.Write(ctx, core.KeySettings, []byte(`{"fontSize":"12px"}`)))
	// Other keys are filtered by the pattern.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notemaster-theme.json"), []byte(`"light"`), 0644))
	// An external edit is.
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notemaster-settings.json"), []byte(`{"fontSize":"20px"}`), 0644))

	select {
	case e := <-events:
		assert.Equal(t, core.KeySettings, e.Key)
		assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for settings event")
	}

	cancel()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel was not closed after cancel")
		}
	}
}
