package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"fishdata/internal/structures"
)

// GCSStore reads parquet snapshots from a Google Cloud Storage bucket.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSStore(ctx context.Context, conf *structures.Config) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSStore{
		client: client,
		bucket: conf.Storage.Bucket,
	}, nil
}

func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &gcs.Query{Prefix: prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list gs://%s/%s: %w", s.bucket, prefix, err)
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

func (s *GCSStore) ListPrefixes(ctx context.Context) ([]string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &gcs.Query{Delimiter: "/"})

	var prefixes []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list prefixes gs://%s: %w", s.bucket, err)
		}
		if attrs.Prefix != "" {
			prefixes = append(prefixes, strings.TrimSuffix(attrs.Prefix, "/"))
		}
	}
	return prefixes, nil
}

func (s *GCSStore) Download(ctx context.Context, object string, w io.Writer) error {
	reader, err := s.client.Bucket(s.bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return ErrObjectNotExist
		}
		return fmt.Errorf("open gs://%s/%s: %w", s.bucket, object, err)
	}
	defer reader.Close()

	if _, err := io.Copy(w, reader); err != nil {
		return fmt.Errorf("download gs://%s/%s: %w", s.bucket, object, err)
	}
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
