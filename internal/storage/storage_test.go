package storage_test

import (
	"io"
	"strings"
	"testing"

	"github.com/kassenbuch/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveOpenRemove(t *testing.T) {
	local, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	path, err := local.Save(strings.NewReader("Datum;Betrag\n2024-02-01;-12,99\n"))
	require.NoError(t, err)

	f, err := local.Open(path)
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "Datum;Betrag\n2024-02-01;-12,99\n", string(content))

	require.NoError(t, local.Remove(path))

	_, err = local.Open(path)
	assert.Error(t, err)

	// Removing an already removed file is not an error
	assert.NoError(t, local.Remove(path))
}

// TestSaveUniquePaths verifies that two uploads never collide, whatever
// the user named the files.
func TestSaveUniquePaths(t *testing.T) {
	local, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	first, err := local.Save(strings.NewReader("a"))
	require.NoError(t, err)

	second, err := local.Save(strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
