package snapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/hupe1980/remap/almanac"
	"github.com/hupe1980/remap/blobstore"
	"github.com/hupe1980/remap/resource"
)

// Ext is the blob name suffix of stored snapshots.
const Ext = ".rmap"

// BlobName returns the blob name for a snapshot name.
func BlobName(name string) string {
	if strings.HasSuffix(name, Ext) {
		return name
	}
	return name + Ext
}

// Save encodes a definition and writes it to store.
func Save(ctx context.Context, store blobstore.Store, name string, a *almanac.Almanac, optFns ...Option) error {
	o := applyOptions(optFns)
	start := time.Now()

	data, err := Encode(a, optFns...)
	if err != nil {
		return err
	}

	if err := o.resources.AcquireIO(ctx, len(data)); err != nil {
		return err
	}

	blobName := BlobName(name)
	if err := store.Put(ctx, blobName, data); err != nil {
		return fmt.Errorf("snapshot: put %s: %w", blobName, err)
	}

	o.logger.Debug("snapshot saved",
		slog.String("blob", blobName),
		slog.Int("bytes", len(data)),
		slog.String("compression", o.compression.String()),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// Load reads and decodes a snapshot from store.
// A missing snapshot yields an error matching blobstore.ErrNotFound.
func Load(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*almanac.Almanac, error) {
	data, err := read(ctx, store, name, applyOptions(optFns))
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Stat reads a snapshot and describes it without decoding the definition.
func Stat(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (Info, error) {
	data, err := read(ctx, store, name, applyOptions(optFns))
	if err != nil {
		return Info{}, err
	}
	return Inspect(data)
}

// maxBlobSize bounds a stored snapshot: the largest body plus its framing.
const maxBlobSize = MaxBodySize + 1<<10

func read(ctx context.Context, store blobstore.Store, name string, o options) ([]byte, error) {
	start := time.Now()
	blobName := BlobName(name)

	blob, err := store.Open(ctx, blobName)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", blobName, err)
	}
	defer blob.Close()

	size := blob.Size()
	if size > maxBlobSize {
		return nil, fmt.Errorf("snapshot: read %s: %w: blob of %d bytes", blobName, ErrTooLarge, size)
	}

	// One full-size read keeps remote stores at a single ranged request.
	data := make([]byte, size)
	r := resource.NewRateLimitedReader(ctx, io.NewSectionReader(blob, 0, size), o.resources)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", blobName, err)
	}

	o.logger.Debug("snapshot read",
		slog.String("blob", blobName),
		slog.Int("bytes", len(data)),
		slog.Duration("duration", time.Since(start)),
	)
	return data, nil
}

// List returns the names of all snapshots in store, without the Ext suffix.
func List(ctx context.Context, store blobstore.Store) ([]string, error) {
	blobs, err := store.List(ctx, "")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, b := range blobs {
		if name, ok := strings.CutSuffix(b, Ext); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Delete removes a snapshot.
func Delete(ctx context.Context, store blobstore.Store, name string) error {
	return store.Delete(ctx, BlobName(name))
}
