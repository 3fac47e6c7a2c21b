package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotExist is returned when a remote object vanished between
// listing and download.
var ErrObjectNotExist = errors.New("storage: object does not exist")

// BlobStore abstracts the remote object store holding parquet
// snapshots. The production implementation is GCS; tests substitute an
// in-memory fake.
type BlobStore interface {
	// List returns the names of all objects under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// ListPrefixes returns the top-level folder names in the bucket.
	ListPrefixes(ctx context.Context) ([]string, error)
	// Download streams the named object into w.
	Download(ctx context.Context, object string, w io.Writer) error
}
