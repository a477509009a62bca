// Package snapshot persists almanac definitions as compact, checksummed blobs.
//
// # Format
//
// All integers are little-endian.
//
//	Magic        [4]byte  "RMAP"
//	Version      uint8
//	Compression  uint8    0=none, 1=lz4, 2=zstd
//	CodecLen     uint8
//	Codec        [CodecLen]byte
//	RawSize      uint32   size of the encoded definition
//	StoredSize   uint32   size of the stored body, 0 if stored raw
//	Body         [StoredSize or RawSize]byte
//	Checksum     uint32   CRC32C of every preceding byte
//
// The codec name is recorded so a snapshot is always decoded with the codec
// that wrote it. If compression does not shrink the body by at least 10%, the
// body is stored raw.
//
// # Stores
//
// Save and Load move snapshots through any blobstore.Store (memory, local
// directory, MinIO, S3). Reads and writes are charged against the IO budget of
// an optional resource.Controller.
//
//	err := snapshot.Save(ctx, store, "almanac", a, snapshot.WithCompression(snapshot.CompressionLZ4))
//	a, err := snapshot.Load(ctx, store, "almanac")
package snapshot
