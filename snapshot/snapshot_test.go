package snapshot

import (
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/remap"
	"github.com/hupe1980/remap/almanac"
	"github.com/hupe1980/remap/codec"
	"github.com/hupe1980/remap/internal/hash"
	"github.com/hupe1980/remap/testutil"
)

func exampleAlmanac(t testing.TB) *almanac.Almanac {
	t.Helper()
	a, err := almanac.Parse(strings.NewReader(testutil.ExampleAlmanac))
	require.NoError(t, err)
	return a
}

func largeAlmanac(stages, segments int) *almanac.Almanac {
	rng := testutil.NewRNG(7)
	a := &almanac.Almanac{Seeds: []uint64{1, 2, 3}}
	for i := range stages {
		def := almanac.StageDef{Name: fmt.Sprintf("stage-%d", i)}
		for _, iv := range rng.Intervals(segments, 1<<20, 64) {
			def.Segments = append(def.Segments, remap.NewSegment(iv.Dest, iv.Start, iv.Length))
		}
		a.Stages = append(a.Stages, def)
	}
	return a
}

// reseal rewrites the checksum after a header has been tampered with.
func reseal(data []byte) []byte {
	n := len(data) - checksumSize
	binary.LittleEndian.PutUint32(data[n:], hash.CRC32C(data[:n]))
	return data
}

func TestRoundTrip(t *testing.T) {
	defs := map[string]*almanac.Almanac{
		"example": exampleAlmanac(t),
		"large":   largeAlmanac(4, 200),
		"empty":   {},
	}

	for name, a := range defs {
		for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
			for _, cd := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
				t.Run(fmt.Sprintf("%s/%s/%s", name, c, cd.Name()), func(t *testing.T) {
					data, err := Encode(a, WithCompression(c), WithCodec(cd))
					require.NoError(t, err)

					info, err := Inspect(data)
					require.NoError(t, err)
					assert.Equal(t, Version, info.Version)
					assert.Equal(t, c, info.Compression)
					assert.Equal(t, cd.Name(), info.Codec)

					got, err := Decode(data)
					require.NoError(t, err)
					if diff := cmp.Diff(a, got); diff != "" {
						t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
					}
				})
			}
		}
	}
}

func TestCompressionShrinksLargeDefinitions(t *testing.T) {
	a := largeAlmanac(8, 500)

	raw, err := Encode(a, WithCompression(CompressionNone))
	require.NoError(t, err)

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		data, err := Encode(a, WithCompression(c))
		require.NoError(t, err)

		info, err := Inspect(data)
		require.NoError(t, err)
		assert.NotZero(t, info.StoredSize, c.String())
		assert.Less(t, len(data), len(raw), c.String())
	}
}

func TestDecodeErrors(t *testing.T) {
	good, err := Encode(exampleAlmanac(t), WithCompression(CompressionLZ4))
	require.NoError(t, err)

	clone := func() []byte { return append([]byte(nil), good...) }

	t.Run("BadMagic", func(t *testing.T) {
		data := clone()
		data[0] = 'X'
		_, err := Decode(data)
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Decode(nil)
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Decode(good[:len(magic)+2])
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("Checksum", func(t *testing.T) {
		data := clone()
		data[len(data)-checksumSize-1] ^= 0xFF
		_, err := Decode(data)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("Version", func(t *testing.T) {
		data := clone()
		data[4] = Version + 1
		_, err := Decode(reseal(data))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("Compression", func(t *testing.T) {
		data := clone()
		data[5] = 9
		_, err := Decode(reseal(data))
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})

	t.Run("Codec", func(t *testing.T) {
		data := clone()
		data[7] = 'X' // first byte of the codec name
		_, err := Decode(reseal(data))
		assert.ErrorIs(t, err, codec.ErrUnknownCodec)
	})

	t.Run("TrailingBytes", func(t *testing.T) {
		data := clone()
		data = append(data[:len(data)-checksumSize], 0, 0, 0, 0, 0)
		_, err := Decode(reseal(data))
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestEncodeRejectsUnknownCompression(t *testing.T) {
	_, err := Encode(exampleAlmanac(t), WithCompression(Compression(7)))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

type customCodec struct{ codec.JSON }

func (customCodec) Name() string { return "custom" }

func TestEncodeRejectsUnregisteredCodec(t *testing.T) {
	_, err := Encode(exampleAlmanac(t), WithCodec(customCodec{}))
	assert.ErrorIs(t, err, codec.ErrUnknownCodec)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func BenchmarkEncode(b *testing.B) {
	a := largeAlmanac(8, 500)
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		b.Run(c.String(), func(b *testing.B) {
			for b.Loop() {
				if _, err := Encode(a, WithCompression(c)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
