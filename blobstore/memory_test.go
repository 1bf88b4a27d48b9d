package blobstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, "cache.bin", []byte("payload")))

	blob, err := s.Open(ctx, "cache.bin")
	require.NoError(t, err)
	got, err := ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte("mutable")
	require.NoError(t, s.Put(ctx, "x", data))
	data[0] = 'X'

	blob, _ := s.Open(ctx, "x")
	got, err := ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("mutable"), got)
}

func TestMemoryStoreRename(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, "a", []byte("1")))
	require.NoError(t, s.Rename(ctx, "a", "b"))

	_, err := s.Open(ctx, "a")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = s.Rename(ctx, "missing", "c")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i%4))
			_ = s.Put(ctx, name, []byte{byte(i)})
			if blob, err := s.Open(ctx, name); err == nil {
				_, _ = ReadAll(blob)
				_ = blob.Close()
			}
		}(i)
	}
	wg.Wait()

	names, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, names, 4)
}
