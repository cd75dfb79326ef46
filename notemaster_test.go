package notemaster_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notemaster"
	"github.com/aretw0/notemaster/pkg/adapters/memory"
	"github.com/aretw0/notemaster/pkg/core"
)

func TestOpen_Facade(t *testing.T) {
	ctx := context.Background()
	app, err := notemaster.Open(ctx, "", notemaster.WithStorage(memory.New()))
	require.NoError(t, err)

	c := app.Store.Create(ctx)
	saved, ok := app.Store.Save(ctx, c.ID, core.Input{Title: "Groceries", Tags: "home, food"})
	require.True(t, ok)
	assert.Equal(t, []string{"home", "food"}, saved.Note.Tags)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, notemaster.Version)
}
