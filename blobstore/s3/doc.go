// Package s3 provides an Amazon S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.NewFromConfig(ctx, "my-bucket", "snapshots/")
//	err = snapshot.Save(ctx, store, "almanac", def)
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads for large snapshots
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
