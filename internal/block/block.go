// Package block implements the compressed-block framing used by the zero
// cache. Blocks carry an 8-byte header with uncompressed and compressed
// sizes; a compressed size of zero marks an uncompressed block.
package block

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression algorithm.
type Compression uint8

const (
	// None stores blocks uncompressed.
	None Compression = 0
	// LZ4 trades ratio for speed.
	LZ4 Compression = 1
	// ZSTD trades speed for ratio. Default for the cache.
	ZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// ByName resolves a compression algorithm from its stable name.
func ByName(name string) (Compression, bool) {
	switch name {
	case "none":
		return None, true
	case "lz4":
		return LZ4, true
	case "zstd":
		return ZSTD, true
	default:
		return None, false
	}
}

const headerSize = 8

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Compress frames data as a block, compressing with the given algorithm.
// Incompressible data (ratio above 0.9) is stored uncompressed.
func Compress(data []byte, c Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch c {
	case None:
	case LZ4:
		compressed, err = compressLZ4(data)
	case ZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("unknown compression: %d", c)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		out := make([]byte, headerSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[headerSize:], data)
		return out, nil
	}

	out := make([]byte, headerSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[headerSize:], compressed)
	return out, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	dst := make([]byte, bound)
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return dst[:n], nil
}

// Decompress unframes a block produced by Compress.
func Decompress(data []byte, c Compression) ([]byte, error) {
	if len(data) < headerSize {
		return nil, errors.New("block too small for header")
	}
	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])

	if compressedSize == 0 {
		if uint64(len(data)) < headerSize+uint64(uncompressedSize) {
			return nil, errors.New("block data too small")
		}
		return data[headerSize : headerSize+uncompressedSize], nil
	}
	if uint64(len(data)) < headerSize+uint64(compressedSize) {
		return nil, errors.New("compressed block data too small")
	}
	payload := data[headerSize : headerSize+compressedSize]

	switch c {
	case LZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil
	case ZSTD:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, err
		}
		if uint32(len(out)) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("block marked compressed but compression is %s", c)
	}
}
