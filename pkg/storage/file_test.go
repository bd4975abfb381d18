package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	fs, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set(KeyAccessToken, "access_123"))
	require.NoError(t, fs.Set(KeyRefreshToken, "refresh_123"))
	require.NoError(t, fs.Delete(KeyRefreshToken))
	require.NoError(t, fs.Close())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	v, ok, err := reopened.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "access_123", v)

	_, ok, err = reopened.Get(KeyRefreshToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}

	path := filepath.Join(t.TempDir(), "state.json")
	fs, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set("k", "v"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreCorruptDocumentStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	fs, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok, err := fs.Get(KeyFavorites)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.Set(KeyFavorites, "[1]"))
	assert.Equal(t, "[1]", GetString(fs, KeyFavorites))
}

func TestFileStoreClosed(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	require.NoError(t, fs.Close())

	assert.ErrorIs(t, fs.Set("k", "v"), ErrClosed)
	_, _, err = fs.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, fs.Delete("k"), ErrClosed)
}

func TestFileStoreDeleteMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	fs, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, fs.Delete("absent"))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "deleting an absent key should not create the file")
}
