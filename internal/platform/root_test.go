package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	base := t.TempDir()
	project := filepath.Join(base, "project")
	deep := filepath.Join(project, "docs", "drafts")
	outside := filepath.Join(base, "outside")
	require.NoError(t, os.MkdirAll(deep, 0755))
	require.NoError(t, os.MkdirAll(outside, 0755))

	marker := filepath.Join(project, LocalDirName)
	require.NoError(t, os.Mkdir(marker, 0755))

	for _, start := range []string{project, filepath.Join(project, "docs"), deep} {
		got, err := FindRoot(start)
		require.NoError(t, err, start)
		assert.Equal(t, marker, got)
	}

	_, err := FindRoot(outside)
	assert.ErrorIs(t, err, ErrNoLocalDir)
}

func TestFindRoot_IgnoresMarkerFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalDirName), nil, 0644))

	got, err := FindRoot(dir)
	if err == nil {
		assert.NotEqual(t, filepath.Join(dir, LocalDirName), got)
	}
}
