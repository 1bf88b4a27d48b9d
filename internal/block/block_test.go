package block

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compressible(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i / 64)
	}
	return data
}

func incompressible(n int) []byte {
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, n)
	rng.Read(data)
	return data
}

func TestRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"Compressible":   compressible(64 * 1024),
		"Incompressible": incompressible(4 * 1024),
		"Tiny":           []byte("x"),
		"Empty":          nil,
	}

	for _, c := range []Compression{None, LZ4, ZSTD} {
		for name, data := range payloads {
			t.Run(c.String()+"/"+name, func(t *testing.T) {
				framed, err := Compress(data, c)
				require.NoError(t, err)

				out, err := Decompress(framed, c)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(data, out))
			})
		}
	}
}

func TestCompressibleActuallyShrinks(t *testing.T) {
	data := compressible(256 * 1024)
	framed, err := Compress(data, ZSTD)
	require.NoError(t, err)
	assert.Less(t, len(framed), len(data)/2)
}

func TestDecompressErrors(t *testing.T) {
	_, err := Decompress([]byte{1, 2, 3}, ZSTD)
	assert.Error(t, err)

	// Header claims more data than present.
	framed, err := Compress(compressible(1024), ZSTD)
	require.NoError(t, err)
	_, err = Decompress(framed[:len(framed)-4], ZSTD)
	assert.Error(t, err)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"none", "lz4", "zstd"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.String())
	}
	_, ok := ByName("gzip")
	assert.False(t, ok)
}

func TestUnknownCompression(t *testing.T) {
	_, err := Compress([]byte("data"), Compression(99))
	assert.Error(t, err)
}
