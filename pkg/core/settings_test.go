package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notemaster/pkg/adapters/memory"
	"github.com/aretw0/notemaster/pkg/codec"
	"github.com/aretw0/notemaster/pkg/core"
)

func newPreferences(storage *memory.Storage) *core.Preferences {
	return core.NewPreferences(core.NewPersistence(storage, codec.NewJSON(), nil))
}

func TestPreferences_Defaults(t *testing.T) {
	p := newPreferences(memory.New())
	p.Load(context.Background())

	assert.Equal(t, core.DefaultSettings(), p.Settings())
	assert.Equal(t, core.ThemeDark, p.Theme())
}

func TestPreferences_MergeOverDefaults(t *testing.T) {
	ctx := context.Background()
	storage := memory.New()
	require.NoError(t, storage.Write(ctx, core.KeySettings, []byte(`{"autoSaveInterval":2500,"wordWrap":false}`)))
	require.NoError(t, storage.Write(ctx, core.KeyTheme, []byte(`"light"`)))

	p := newPreferences(storage)
	p.Load(ctx)

	s := p.Settings()
	assert.Equal(t, 2500, s.AutoSaveInterval)
	assert.False(t, s.WordWrap)
	assert.Equal(t, "16px", s.FontSize)
	assert.True(t, s.ShowWordCount)
	assert.Equal(t, core.ThemeLight, p.Theme())
}

func TestPreferences_InvalidStoredSettingsUseDefaults(t *testing.T) {
	ctx := context.Background()
	storage := memory.New()
	require.NoError(t, storage.Write(ctx, core.KeySettings, []byte(`{"autoSaveInterval":-5}`)))
	require.NoError(t, storage.Write(ctx, core.KeyTheme, []byte(`"purple"`)))

	p := newPreferences(storage)
	p.Load(ctx)

	assert.Equal(t, core.DefaultSettings(), p.Settings())
	assert.Equal(t, core.ThemeDark, p.Theme())
}

func TestPreferences_SetPersists(t *testing.T) {
	ctx := context.Background()
	storage := memory.New()
	p := newPreferences(storage)
	p.Load(ctx)

	status, err := p.Set(ctx, "autoSaveInterval", "300")
	require.NoError(t, err)
	assert.Equal(t, core.PersistPersisted, status)

	_, err = p.Set(ctx, "fontSize", "20px")
	require.NoError(t, err)
	_, err = p.Set(ctx, "showWordCount", "false")
	require.NoError(t, err)

	reloaded := newPreferences(storage)
	reloaded.Load(ctx)
	assert.Equal(t, 300, reloaded.Settings().AutoSaveInterval)
	assert.Equal(t, "20px", reloaded.Settings().FontSize)
	assert.False(t, reloaded.Settings().ShowWordCount)
}

func TestPreferences_SetRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	p := newPreferences(memory.New())
	p.Load(ctx)

	for _, tc := range []struct{ name, value string }{
		{"autoSaveInterval", "0"},
		{"autoSaveInterval", "soon"},
		{"fontSize", "big"},
		{"fontSize", ""},
		{"wordWrap", "maybe"},
		{"colour", "red"},
	} {
		_, err := p.Set(ctx, tc.name, tc.value)
		assert.ErrorIs(t, err, core.ErrInvalidSetting, "%s=%s", tc.name, tc.value)
	}
	assert.Equal(t, core.DefaultSettings(), p.Settings())
}

func TestPreferences_Theme(t *testing.T) {
	ctx := context.Background()
	storage := memory.New()
	p := newPreferences(storage)
	p.Load(ctx)

	var notified []core.Theme
	p.OnChange(func(_ core.Settings, th core.Theme) { notified = append(notified, th) })

	next, status := p.ToggleTheme(ctx)
	assert.Equal(t, core.ThemeLight, next)
	assert.Equal(t, core.PersistPersisted, status)

	next, _ = p.ToggleTheme(ctx)
	assert.Equal(t, core.ThemeDark, next)
	assert.Equal(t, []core.Theme{core.ThemeLight, core.ThemeDark}, notified)

	_, err := core.ParseTheme("neon")
	assert.ErrorIs(t, err, core.ErrInvalidTheme)
}

func TestPreferences_OnChangeUnsubscribe(t *testing.T) {
	ctx := context.Background()
	p := newPreferences(memory.New())
	p.Load(ctx)

	calls := 0
	stop := p.OnChange(func(core.Settings, core.Theme) { calls++ })
	p.ToggleTheme(ctx)
	stop()
	p.ToggleTheme(ctx)
	_, err := p.Set(ctx, "fontSize", "18px")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestPreferences_DegradedWrite(t *testing.T) {
	ctx := context.Background()
	storage := memory.New()
	p := newPreferences(storage)
	p.Load(ctx)
	storage.FailWrites(true)

	status, err := p.Set(ctx, "wordWrap", "false")

	require.NoError(t, err)
	assert.Equal(t, core.PersistDegraded, status)
	assert.False(t, p.Settings().WordWrap, "in-memory value still changes")
}
