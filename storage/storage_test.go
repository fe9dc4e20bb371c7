package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoragePutReplaceDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "avatars"), "/uploads/avatars")
	require.NoError(t, err)

	require.NoError(t, s.Put("u1.png", []byte("first")))
	require.NoError(t, s.Put("u1.png", []byte("second")))

	data, err := os.ReadFile(filepath.Join(dir, "avatars", "u1.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	require.NoError(t, s.Delete("u1.png"))
	_, err = os.ReadFile(filepath.Join(dir, "avatars", "u1.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting again is fine
	assert.NoError(t, s.Delete("u1.png"))
}

func TestLocalStorageURL(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/uploads/avatars")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/avatars/u1.png", s.URL("u1.png"))
}
