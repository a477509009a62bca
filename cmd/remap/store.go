package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/hupe1980/remap/blobstore"
	"github.com/hupe1980/remap/blobstore/minio"
	"github.com/hupe1980/remap/blobstore/s3"
	"github.com/hupe1980/remap/codec"
)

// openStore resolves a --store value.
//
//	./dir, file:///dir        local directory
//	s3://bucket/prefix        Amazon S3, default AWS credential chain
//	minio://bucket/prefix     MinIO, configured by MINIO_* variables
func openStore(ctx context.Context, spec string) (blobstore.Store, error) {
	if !strings.Contains(spec, "://") {
		return blobstore.NewLocalStore(spec), nil
	}

	u, err := url.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid --store %q: %w", spec, err)
	}
	prefix := strings.TrimPrefix(u.Path, "/")

	switch u.Scheme {
	case "file":
		return blobstore.NewLocalStore(u.Host + u.Path), nil
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("invalid --store %q: missing bucket", spec)
		}
		return s3.NewFromConfig(ctx, u.Host, prefix)
	case "minio":
		if u.Host == "" {
			return nil, fmt.Errorf("invalid --store %q: missing bucket", spec)
		}
		return minio.NewFromEnv(u.Host, prefix)
	default:
		return nil, fmt.Errorf("invalid --store %q: unsupported scheme %q", spec, u.Scheme)
	}
}

func codecByName(name string) (codec.Codec, error) {
	if name == "" {
		return codec.Default, nil
	}
	return codec.ByName(name)
}
