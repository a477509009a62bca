package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/remap"
	"github.com/hupe1980/remap/almanac"
	"github.com/hupe1980/remap/codec"
	"github.com/hupe1980/remap/internal/hash"
	"github.com/hupe1980/remap/resource"
)

const (
	// Version is the snapshot format version written by Encode.
	Version uint8 = 1

	// MaxBodySize bounds the decoded definition size.
	MaxBodySize = 1 << 30

	checksumSize = 4
)

var magic = [4]byte{'R', 'M', 'A', 'P'}

var (
	// ErrBadMagic indicates data that is not a snapshot.
	ErrBadMagic = errors.New("not a remap snapshot")

	// ErrUnsupportedVersion indicates a snapshot written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")

	// ErrChecksum indicates a snapshot whose checksum does not match.
	ErrChecksum = errors.New("snapshot checksum mismatch")

	// ErrCorrupt indicates a structurally damaged snapshot.
	ErrCorrupt = errors.New("corrupt snapshot")

	// ErrTooLarge indicates a definition larger than MaxBodySize.
	ErrTooLarge = errors.New("snapshot too large")
)

// Info describes a snapshot without decoding its body.
type Info struct {
	Version     uint8
	Compression Compression
	Codec       string
	RawSize     uint32 // encoded definition size
	StoredSize  uint32 // body size on disk, 0 if stored raw
}

type options struct {
	compression Compression
	codec       codec.Codec
	resources   *resource.Controller
	logger      *remap.Logger
}

func defaultOptions() options {
	return options{
		compression: CompressionZSTD,
		codec:       codec.Default,
		logger:      remap.NoopLogger(),
	}
}

// Option configures snapshot encoding and IO.
type Option func(*options)

// WithCompression selects the body compression (default zstd).
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithCodec selects the codec for the definition (default codec.Default).
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithResourceController charges Save and Load against rc's IO budget.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) { o.resources = rc }
}

// WithLogger sets the logger used by Save and Load.
func WithLogger(l *remap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Encode serializes a definition.
func Encode(a *almanac.Almanac, optFns ...Option) ([]byte, error) {
	o := applyOptions(optFns)

	if !o.compression.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, o.compression)
	}

	name := o.codec.Name()
	if len(name) == 0 || len(name) > 255 {
		return nil, fmt.Errorf("snapshot: codec name %q must be 1-255 bytes", name)
	}
	if _, err := codec.ByName(name); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	body, err := o.codec.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode definition: %w", err)
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("%w: body of %d bytes", ErrTooLarge, len(body))
	}

	buf := make([]byte, 0, len(magic)+3+len(name)+blockHeaderSize+len(body)+checksumSize)
	buf = append(buf, magic[:]...)
	buf = append(buf, Version, uint8(o.compression), uint8(len(name)))
	buf = append(buf, name...)

	buf, err = appendBlock(buf, body, o.compression)
	if err != nil {
		return nil, err
	}

	return binary.LittleEndian.AppendUint32(buf, hash.CRC32C(buf)), nil
}

// Inspect validates the header and checksum and describes the snapshot.
func Inspect(data []byte) (Info, error) {
	info, _, err := parseHeader(data)
	return info, err
}

// parseHeader returns the header info and the block bytes (checksum excluded).
func parseHeader(data []byte) (Info, []byte, error) {
	if len(data) < len(magic) || !bytes.Equal(data[:len(magic)], magic[:]) {
		return Info{}, nil, ErrBadMagic
	}
	if len(data) < len(magic)+3+checksumSize {
		return Info{}, nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}

	payload, trailer := data[:len(data)-checksumSize], data[len(data)-checksumSize:]
	if hash.CRC32C(payload) != binary.LittleEndian.Uint32(trailer) {
		return Info{}, nil, ErrChecksum
	}

	info := Info{
		Version:     payload[4],
		Compression: Compression(payload[5]),
	}
	if info.Version != Version {
		return Info{}, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, info.Version)
	}
	if !info.Compression.valid() {
		return Info{}, nil, fmt.Errorf("%w: %d", ErrUnknownCompression, info.Compression)
	}

	nameLen := int(payload[6])
	rest := payload[7:]
	if len(rest) < nameLen+blockHeaderSize {
		return Info{}, nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	info.Codec = string(rest[:nameLen])
	block := rest[nameLen:]
	info.RawSize = binary.LittleEndian.Uint32(block[0:])
	info.StoredSize = binary.LittleEndian.Uint32(block[4:])

	return info, block, nil
}

// Decode deserializes a snapshot produced by Encode.
func Decode(data []byte) (*almanac.Almanac, error) {
	info, block, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	c, err := codec.ByName(info.Codec)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	body, n, err := readBlock(block, info.Compression)
	if err != nil {
		return nil, err
	}
	if n != len(block) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(block)-n)
	}

	var a almanac.Almanac
	if err := c.Unmarshal(body, &a); err != nil {
		return nil, fmt.Errorf("snapshot: decode definition: %w", err)
	}
	return &a, nil
}
