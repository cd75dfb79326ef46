package core_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notemaster/pkg/adapters/memory"
	"github.com/aretw0/notemaster/pkg/codec"
	"github.com/aretw0/notemaster/pkg/core"
)

func TestPersistence_LoadAbsentIsSilent(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	p := core.NewPersistence(memory.New(), codec.NewJSON(), logger)

	var v []core.Note
	assert.False(t, p.Load(context.Background(), core.KeyNotes, &v))
	assert.Empty(t, logs.String())
}

func TestPersistence_LoadUnreadableWarns(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	storage := memory.New()
	require.NoError(t, storage.Write(context.Background(), core.KeyNotes, []byte("not json")))
	p := core.NewPersistence(storage, codec.NewJSON(), logger)

	var v []core.Note
	assert.False(t, p.Load(context.Background(), core.KeyNotes, &v))
	assert.Contains(t, logs.String(), "stored value is unreadable")
}

func TestPersistence_SaveReportsStatus(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	storage := memory.New()
	p := core.NewPersistence(storage, codec.NewYAML(), logger)
	ctx := context.Background()

	assert.Equal(t, core.PersistPersisted, p.Save(ctx, core.KeyTheme, "light"))

	var theme string
	require.True(t, p.Load(ctx, core.KeyTheme, &theme))
	assert.Equal(t, "light", theme)

	storage.FailWrites(true)
	assert.Equal(t, core.PersistDegraded, p.Save(ctx, core.KeyTheme, "dark"))
	assert.Contains(t, logs.String(), "storage write failed")
	assert.Contains(t, logs.String(), "key="+core.KeyTheme)
}

func TestPersistence_UnencodableValue(t *testing.T) {
	p := core.NewPersistence(memory.New(), codec.NewJSON(), nil)
	assert.Equal(t, core.PersistDegraded, p.Save(context.Background(), "k", make(chan int)))
}
