package blobstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())

	data := []byte("14.134725141734693\n21.022039638771555\n")
	require.NoError(t, s.Put(ctx, "zeros/zero.txt", data))

	blob, err := s.Open(ctx, "zeros/zero.txt")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(len(data)), blob.Size())
	got, err := ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLocalStoreOpenMissing(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	_, err := s.Open(context.Background(), "nope.bin")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalStoreRename(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())

	require.NoError(t, s.Put(ctx, "cache.bin", []byte("v1")))
	require.NoError(t, s.Rename(ctx, "cache.bin", "backups/cache.bin.bak"))

	_, err := s.Open(ctx, "cache.bin")
	assert.Error(t, err)

	blob, err := s.Open(ctx, "backups/cache.bin.bak")
	require.NoError(t, err)
	defer blob.Close()
	got, err := ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}

func TestLocalStoreDeleteAndList(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())

	require.NoError(t, s.Put(ctx, "a/one.bin", []byte("1")))
	require.NoError(t, s.Put(ctx, "a/two.bin", []byte("2")))
	require.NoError(t, s.Put(ctx, "b/three.bin", []byte("3")))

	names, err := s.List(ctx, "a/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a/one.bin", "a/two.bin"}, names)

	require.NoError(t, s.Delete(ctx, "a/one.bin"))
	require.NoError(t, s.Delete(ctx, "a/one.bin")) // already gone

	names, err = s.List(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/two.bin"}, names)
}

func TestLocalStorePutOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())

	require.NoError(t, s.Put(ctx, "cache.bin", []byte("old")))
	require.NoError(t, s.Put(ctx, "cache.bin", []byte("new-longer-content")))

	blob, err := s.Open(ctx, "cache.bin")
	require.NoError(t, err)
	defer blob.Close()
	got, err := ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("new-longer-content"), got)
}
