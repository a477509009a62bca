package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/remap/internal/conv"
)

// Compression defines the compression algorithm used for the body.
type Compression uint8

const (
	// CompressionNone stores the body as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

// ErrUnknownCompression is returned for unsupported compression names or ids.
var ErrUnknownCompression = errors.New("unknown compression")

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

func (c Compression) valid() bool {
	return c <= CompressionZSTD
}

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

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// blockHeaderSize covers RawSize and StoredSize.
const blockHeaderSize = 8

// appendBlock appends [RawSize][StoredSize][Body] to dst.
func appendBlock(dst, data []byte, c Compression) ([]byte, error) {
	rawSize, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, fmt.Errorf("%w: body of %d bytes", ErrTooLarge, len(data))
	}

	var compressed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		compressed = compressZSTD(data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
	if err != nil {
		return nil, err
	}

	// Keep the raw body unless compression saves at least 10%.
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		dst = binary.LittleEndian.AppendUint32(dst, rawSize)
		dst = binary.LittleEndian.AppendUint32(dst, 0)
		return append(dst, data...), nil
	}

	dst = binary.LittleEndian.AppendUint32(dst, rawSize)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(compressed)))
	return append(dst, compressed...), nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func compressZSTD(data []byte) []byte {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil)
}

// readBlock decodes a block produced by appendBlock and reports how many
// bytes of data it consumed.
func readBlock(data []byte, c Compression) ([]byte, int, error) {
	if len(data) < blockHeaderSize {
		return nil, 0, fmt.Errorf("%w: block too small for header", ErrCorrupt)
	}

	rawSize := binary.LittleEndian.Uint32(data[0:])
	storedSize := binary.LittleEndian.Uint32(data[4:])
	body := data[blockHeaderSize:]

	if rawSize > MaxBodySize {
		return nil, 0, fmt.Errorf("%w: body of %d bytes", ErrTooLarge, rawSize)
	}

	if storedSize == 0 {
		if uint64(len(body)) < uint64(rawSize) {
			return nil, 0, fmt.Errorf("%w: raw block truncated", ErrCorrupt)
		}
		return body[:rawSize], blockHeaderSize + int(rawSize), nil
	}

	if uint64(len(body)) < uint64(storedSize) {
		return nil, 0, fmt.Errorf("%w: compressed block truncated", ErrCorrupt)
	}
	compressed := body[:storedSize]
	consumed := blockHeaderSize + int(storedSize)
	result := make([]byte, rawSize)

	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(compressed, result)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if uint32(n) != rawSize {
			return nil, 0, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return result, consumed, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(compressed, result[:0])
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if uint32(len(decoded)) != rawSize {
			return nil, 0, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return decoded, consumed, nil

	default:
		return nil, 0, fmt.Errorf("%w: compressed block with compression %v", ErrCorrupt, c)
	}
}
