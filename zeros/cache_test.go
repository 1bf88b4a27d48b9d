package zeros

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okushigue/zetascan/blobstore"
	"github.com/okushigue/zetascan/internal/block"
)

func testZeros(n int) []Zero {
	zs := make([]Zero, n)
	for i := range zs {
		zs[i] = Zero{Index: uint64(i + 1), Gamma: 14.134725 + float64(i)*2.5}
	}
	return zs
}

func TestEncodeDecodeCache(t *testing.T) {
	for _, comp := range []block.Compression{block.None, block.LZ4, block.ZSTD} {
		t.Run(comp.String(), func(t *testing.T) {
			in := testZeros(1000)
			data, err := EncodeCache(in, comp)
			require.NoError(t, err)

			out, err := DecodeCache(data)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestDecodeCacheRejectsGarbage(t *testing.T) {
	_, err := DecodeCache([]byte("short"))
	assert.ErrorIs(t, err, ErrCorruptCache)

	data, err := EncodeCache(testZeros(10), block.ZSTD)
	require.NoError(t, err)

	data[0] ^= 0xFF
	_, err = DecodeCache(data)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDecodeCacheChecksum(t *testing.T) {
	data, err := EncodeCache(testZeros(100), block.None)
	require.NoError(t, err)

	// Flip a payload byte past the block header.
	data[headerSize+8+4] ^= 0xFF
	_, err = DecodeCache(data)
	assert.ErrorIs(t, err, ErrCorruptCache)
}

func TestCacheSaveLoadInfo(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	cache := NewCache(store, "zeta_cache.bin")

	in := testZeros(2000)
	require.NoError(t, cache.Save(ctx, in))

	out, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	info, err := cache.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), info.Count)
	assert.Equal(t, block.ZSTD, info.Compression)
	assert.Positive(t, info.SizeBytes)
}

func TestCacheSaveRotatesBackup(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	cache := NewCache(store, "zeta_cache.bin", WithCompression(block.LZ4))

	require.NoError(t, cache.Save(ctx, testZeros(10)))
	require.NoError(t, cache.Save(ctx, testZeros(20)))

	names, err := store.List(ctx, "zeta_cache.bin.bak-")
	require.NoError(t, err)
	assert.Len(t, names, 1)

	out, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 20)
}

func TestCacheLoadMissing(t *testing.T) {
	cache := NewCache(blobstore.NewMemoryStore(), "missing.bin")
	_, err := cache.Load(context.Background())
	assert.True(t, errors.Is(err, blobstore.ErrNotFound))
}

func TestLoadOrBuild(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	source := strings.Join([]string{"14.134725", "21.022040", "25.010858"}, "\n")
	require.NoError(t, store.Put(ctx, "zero.txt", []byte(source)))

	cache := NewCache(store, "zeta_cache.bin")
	zs, err := cache.LoadOrBuild(ctx, "zero.txt")
	require.NoError(t, err)
	require.Len(t, zs, 3)

	// Second call must come from the cache, not the source.
	require.NoError(t, store.Delete(ctx, "zero.txt"))
	again, err := cache.LoadOrBuild(ctx, "zero.txt")
	require.NoError(t, err)
	assert.Equal(t, zs, again)
}

func TestLoadOrBuildRebuildsCorrupt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, store.Put(ctx, "zero.txt", []byte("14.134725\n")))
	require.NoError(t, store.Put(ctx, "zeta_cache.bin", []byte("garbage")))

	cache := NewCache(store, "zeta_cache.bin")
	zs, err := cache.LoadOrBuild(ctx, "zero.txt")
	require.NoError(t, err)
	require.Len(t, zs, 1)
	assert.Equal(t, 14.134725, zs[0].Gamma)
}

func TestLoadOrBuildMissingSource(t *testing.T) {
	cache := NewCache(blobstore.NewMemoryStore(), "zeta_cache.bin")
	_, err := cache.LoadOrBuild(context.Background(), "zero.txt")
	assert.Error(t, err)
}
