package di

import (
	"context"

	"fishdata/internal/storage"
	"fishdata/internal/structures"
)

// NewBlobStore builds the GCS-backed snapshot store. Client setup gets
// a background context; per-request work carries its own.
func NewBlobStore(conf *structures.Config) (storage.BlobStore, error) {
	return storage.NewGCSStore(context.Background(), conf)
}
