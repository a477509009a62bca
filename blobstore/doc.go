// Package blobstore provides storage abstraction for remap snapshots.
//
// Store is the interface for reading and writing immutable blobs. A snapshot
// is written once with Put and read back through Open.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral use
//   - LocalStore: local filesystem; reads are memory-mapped where supported
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
