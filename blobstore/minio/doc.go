// Package minio provides a blobstore.Store for MinIO and other S3-compatible
// object stores, backed by github.com/minio/minio-go/v7.
//
// # Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
//	    Secure: false,
//	})
//	store := remapminio.NewStore(client, "snapshots", "remap/")
//	err = snapshot.Save(ctx, store, "almanac", def)
//
// NewFromEnv builds the client from MINIO_ENDPOINT, MINIO_ACCESS_KEY,
// MINIO_SECRET_KEY and MINIO_SECURE.
package minio
