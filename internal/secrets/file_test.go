package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T, password string) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "secrets.enc"), password)
	require.NoError(t, err)
	return s
}

func TestFileStoreEmpty(t *testing.T) {
	s := newTestFileStore(t, "hunter2")

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	keys, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, keys)

	assert.ErrorIs(t, s.Delete("missing"), ErrNotFound)
}

func TestFileStoreRoundTrip(t *testing.T) {
	s := newTestFileStore(t, "hunter2")

	require.NoError(t, s.Set("age-identity:age1abc", "AGE-SECRET-KEY-1XYZ"))
	require.NoError(t, s.Set("other", "value"))

	value, err := s.Get("age-identity:age1abc")
	require.NoError(t, err)
	assert.Equal(t, "AGE-SECRET-KEY-1XYZ", value)

	keys, err := s.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"age-identity:age1abc", "other"}, keys)

	require.NoError(t, s.Delete("other"))
	_, err = s.Get("other")
	assert.ErrorIs(t, err, ErrNotFound)

	// File on disk must not contain the plaintext
	data, err := os.ReadFile(s.path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "AGE-SECRET-KEY")
}

func TestFileStoreWrongPassword(t *testing.T) {
	s := newTestFileStore(t, "right")
	require.NoError(t, s.Set("k", "v"))

	other, err := NewFileStore(s.path, "wrong")
	require.NoError(t, err)

	_, err = other.Get("k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decrypt secrets")
}
