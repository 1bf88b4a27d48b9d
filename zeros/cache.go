package zeros

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"log/slog"
	"math"
	"time"

	"github.com/okushigue/zetascan/blobstore"
	"github.com/okushigue/zetascan/internal/block"
	"github.com/okushigue/zetascan/internal/conv"
)

const (
	// cacheMagic identifies zero cache files (ASCII "ZET0").
	cacheMagic = 0x5A455430
	// cacheVersion is the current cache format version (v1.0).
	cacheVersion = 0x00010000

	recordSize = 16
)

var (
	ErrInvalidMagic   = errors.New("invalid cache magic")
	ErrInvalidVersion = errors.New("unsupported cache version")
	ErrCorruptCache   = errors.New("corrupt cache")
)

// cacheHeader is the 32-byte header at the start of every cache file.
type cacheHeader struct {
	Magic       uint32
	Version     uint32
	Compression uint8
	Padding     [3]byte
	Count       uint64
	Checksum    uint32 // CRC32 of the raw record payload
	Reserved    [8]byte
}

const headerSize = 32

// EncodeCache serializes zeros into the binary cache format. Records are
// little-endian (index uint64, gamma float64) pairs, block compressed.
func EncodeCache(zs []Zero, comp block.Compression) ([]byte, error) {
	raw := make([]byte, len(zs)*recordSize)
	for i, z := range zs {
		off := i * recordSize
		binary.LittleEndian.PutUint64(raw[off:], z.Index)
		binary.LittleEndian.PutUint64(raw[off+8:], math.Float64bits(z.Gamma))
	}

	payload, err := block.Compress(raw, comp)
	if err != nil {
		return nil, fmt.Errorf("compress cache: %w", err)
	}

	hdr := cacheHeader{
		Magic:       cacheMagic,
		Version:     cacheVersion,
		Compression: uint8(comp),
		Count:       uint64(len(zs)),
		Checksum:    crc32.ChecksumIEEE(raw),
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + len(payload))
	if err := binary.Write(&buf, binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	buf.Write(payload)
	return buf.Bytes(), nil
}

// DecodeCache deserializes a cache file produced by EncodeCache.
func DecodeCache(data []byte) ([]Zero, error) {
	hdr, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	raw, err := block.Decompress(data[headerSize:], block.Compression(hdr.Compression))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	count, err := conv.Uint64ToInt(hdr.Count)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if len(raw) != count*recordSize {
		return nil, fmt.Errorf("%w: payload holds %d bytes, header says %d records",
			ErrCorruptCache, len(raw), count)
	}
	if crc32.ChecksumIEEE(raw) != hdr.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptCache)
	}

	zs := make([]Zero, count)
	for i := range zs {
		off := i * recordSize
		zs[i] = Zero{
			Index: binary.LittleEndian.Uint64(raw[off:]),
			Gamma: math.Float64frombits(binary.LittleEndian.Uint64(raw[off+8:])),
		}
	}
	return zs, nil
}

func decodeHeader(data []byte) (*cacheHeader, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: file too small for header", ErrCorruptCache)
	}
	var hdr cacheHeader
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Magic != cacheMagic {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, hdr.Magic)
	}
	if hdr.Version != cacheVersion {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, hdr.Version)
	}
	return &hdr, nil
}

// CacheInfo describes a cache file without decoding its records.
type CacheInfo struct {
	Count       uint64
	Compression block.Compression
	SizeBytes   int64
}

// Cache persists zero lists in a blob store with backup rotation.
type Cache struct {
	store       blobstore.BlobStore
	name        string
	compression block.Compression
	logger      *slog.Logger
	now         func() time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCompression selects the block compression used on save.
func WithCompression(c block.Compression) CacheOption {
	return func(cc *Cache) { cc.compression = c }
}

// WithLogger sets the logger used for cache events.
func WithLogger(l *slog.Logger) CacheOption {
	return func(cc *Cache) { cc.logger = l }
}

// NewCache creates a cache stored as name in the given blob store.
func NewCache(store blobstore.BlobStore, name string, opts ...CacheOption) *Cache {
	c := &Cache{
		store:       store,
		name:        name,
		compression: block.ZSTD,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads and decodes the cache.
func (c *Cache) Load(ctx context.Context) ([]Zero, error) {
	blob, err := c.store.Open(ctx, c.name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, err
	}
	return DecodeCache(data)
}

// Save encodes and writes the cache. An existing cache is first rotated to a
// timestamped backup so a bad write never destroys the only copy.
func (c *Cache) Save(ctx context.Context, zs []Zero) error {
	data, err := EncodeCache(zs, c.compression)
	if err != nil {
		return err
	}

	if _, err := c.Info(ctx); err == nil {
		backup := fmt.Sprintf("%s.bak-%s", c.name, c.now().UTC().Format("20060102T150405"))
		if err := c.store.Rename(ctx, c.name, backup); err != nil {
			return fmt.Errorf("rotate cache backup: %w", err)
		}
		c.logger.Debug("rotated cache backup", "backup", backup)
	}

	if err := c.store.Put(ctx, c.name, data); err != nil {
		return err
	}
	c.logger.Info("saved zero cache",
		"name", c.name,
		"zeros", len(zs),
		"compression", c.compression.String(),
		"bytes", len(data))
	return nil
}

// Info reads only the header of the cache.
func (c *Cache) Info(ctx context.Context) (*CacheInfo, error) {
	blob, err := c.store.Open(ctx, c.name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	hdrBytes := make([]byte, headerSize)
	if _, err := blob.ReadAt(hdrBytes, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	hdr, err := decodeHeader(hdrBytes)
	if err != nil {
		return nil, err
	}
	return &CacheInfo{
		Count:       hdr.Count,
		Compression: block.Compression(hdr.Compression),
		SizeBytes:   blob.Size(),
	}, nil
}

// LoadOrBuild loads the cache if present and intact; otherwise it parses the
// text file named sourceName from the store, saves a fresh cache, and
// returns the parsed zeros. A corrupt cache is rebuilt, not fatal.
func (c *Cache) LoadOrBuild(ctx context.Context, sourceName string) ([]Zero, error) {
	zs, err := c.Load(ctx)
	if err == nil {
		c.logger.Info("loaded zero cache", "name", c.name, "zeros", len(zs))
		return zs, nil
	}
	if !errors.Is(err, blobstore.ErrNotFound) {
		c.logger.Warn("cache unusable, rebuilding from source", "name", c.name, "error", err)
	}

	blob, err := c.store.Open(ctx, sourceName)
	if err != nil {
		return nil, fmt.Errorf("open zeros source %s: %w", sourceName, err)
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return nil, err
	}
	zs, skipped, err := ParseText(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		c.logger.Warn("skipped unparseable lines", "source", sourceName, "skipped", skipped)
	}
	c.logger.Info("parsed zeros from source", "source", sourceName, "zeros", len(zs))

	if err := c.Save(ctx, zs); err != nil {
		return nil, err
	}
	return zs, nil
}
