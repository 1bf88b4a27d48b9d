package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenReadClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	content := []byte("zeta zeros cache payload")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), m.Size())
	assert.Equal(t, content, m.Bytes())

	buf := make([]byte, 4)
	n, err := m.ReadAt(buf, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("zero"), buf)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close()) // idempotent
	assert.Nil(t, m.Bytes())

	_, err = m.ReadAt(buf, 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), m.Size())
	require.NoError(t, m.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.bin"))
	assert.Error(t, err)
}

func TestReadAtBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.ReadAt(make([]byte, 1), -1)
	assert.ErrorIs(t, err, ErrInvalidOffset)

	_, err = m.ReadAt(make([]byte, 1), 10)
	assert.Error(t, err)

	buf := make([]byte, 10)
	n, err := m.ReadAt(buf, 1)
	assert.Equal(t, 2, n)
	assert.Error(t, err) // short read returns EOF
}
