package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notemaster/pkg/adapters/memory"
	"github.com/aretw0/notemaster/pkg/core"
)

func TestStorage_CRUD(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.Read(ctx, core.KeyNotes)
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, s.Write(ctx, core.KeyNotes, []byte("[]")))
	require.NoError(t, s.Write(ctx, core.KeyTheme, []byte(`"dark"`)))

	got, err := s.Read(ctx, core.KeyNotes)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	keys, err := s.Keys(ctx, "notemaster-*")
	require.NoError(t, err)
	assert.Equal(t, []string{core.KeyNotes, core.KeyTheme}, keys)

	require.NoError(t, s.Delete(ctx, core.KeyNotes))
	require.NoError(t, s.Delete(ctx, core.KeyNotes), "deleting twice is fine")
	_, err = s.Read(ctx, core.KeyNotes)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStorage_FailWrites(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	s.FailWrites(true)
	assert.ErrorIs(t, s.Write(ctx, "k", []byte("v")), memory.ErrWriteFailed)
	assert.Equal(t, 0, s.Writes())

	s.FailWrites(false)
	require.NoError(t, s.Write(ctx, "k", []byte("v")))
	assert.Equal(t, 1, s.Writes())
}

func TestStorage_ReadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Write(ctx, "k", []byte("abc")))

	got, _ := s.Read(ctx, "k")
	got[0] = 'x'

	again, _ := s.Read(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestStorage_InvalidPattern(t *testing.T) {
	_, err := memory.New().Keys(context.Background(), "[")
	assert.Error(t, err)
}
