package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"fishdata/internal/models"
	"fishdata/internal/providers"
	"fishdata/internal/structures"
)

// snapshotPattern matches versioned parquet filenames, e.g.
// trips-validated__20260120143613_7c6156d__.parquet. Capture group 1
// is the 14-digit YYYYMMDDHHMMSS timestamp.
var snapshotPattern = regexp.MustCompile(`^trips-\w+__(\d{14})_[a-f0-9]+__\.parquet$`)

// ParseSnapshotTimestamp extracts the version timestamp from a
// snapshot filename. Returns false for names outside the versioned
// naming convention.
func ParseSnapshotTimestamp(filename string) (string, bool) {
	m := snapshotPattern.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return m[1], true
}

type SnapshotResolverInterface interface {
	Resolve(ctx context.Context, country string, status models.DatasetStatus) (string, *models.DomainError)
	ListCountries(ctx context.Context) ([]string, error)
}

// SnapshotResolver locates the newest versioned snapshot for a
// (country, status) pair and materializes it on local disk. Downloads
// are cached by version, so a snapshot is fetched at most once per
// upstream rewrite.
type SnapshotResolver struct {
	store    BlobStore
	cacheDir string
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewSnapshotResolver(conf *structures.Config, store BlobStore, logger providers.Logger, metrics providers.MetricsProviderInterface) (*SnapshotResolver, error) {
	if err := os.MkdirAll(conf.Storage.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", conf.Storage.CacheDir, err)
	}
	return &SnapshotResolver{
		store:    store,
		cacheDir: conf.Storage.CacheDir,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

type snapshotVersion struct {
	timestamp string
	object    string
}

func (r *SnapshotResolver) Resolve(ctx context.Context, country string, status models.DatasetStatus) (string, *models.DomainError) {
	prefix := fmt.Sprintf("%s/%s/", strings.ToLower(country), status)

	names, err := r.store.List(ctx, prefix)
	if err != nil {
		return "", models.QueryFailed("failed to list snapshot storage", err)
	}

	var versions []snapshotVersion
	for _, name := range names {
		filename := name[strings.LastIndex(name, "/")+1:]
		ts, ok := ParseSnapshotTimestamp(filename)
		if !ok {
			continue
		}
		versions = append(versions, snapshotVersion{timestamp: ts, object: name})
	}

	if len(versions) == 0 {
		return "", models.NotFound(fmt.Sprintf("No data found for %s/%s", country, status))
	}

	// Newest version first. Timestamps are unique per upstream write,
	// a tie would pick whichever sorted first.
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].timestamp > versions[j].timestamp
	})
	latest := versions[0]

	localPath := filepath.Join(r.cacheDir, fmt.Sprintf("%s_%s_%s.parquet", strings.ToLower(country), status, latest.timestamp))

	if _, err := os.Stat(localPath); err == nil {
		r.metrics.IncSnapshotCacheHits()
		r.logger.Debugf(providers.TypeApp, "Snapshot cache hit: %s", localPath)
		return localPath, nil
	}

	if derr := r.download(ctx, latest.object, localPath, country, status); derr != nil {
		return "", derr
	}

	r.metrics.IncSnapshotDownloads()
	r.logger.Infof(providers.TypeApp, "Snapshot downloaded: %s -> %s", latest.object, localPath)
	return localPath, nil
}

// download fetches the object into localPath via a temp file and an
// atomic rename, so concurrent resolvers never observe a partial file.
func (r *SnapshotResolver) download(ctx context.Context, object, localPath, country string, status models.DatasetStatus) *models.DomainError {
	tmp, err := os.CreateTemp(r.cacheDir, ".download-*")
	if err != nil {
		return models.QueryFailed("failed to create snapshot temp file", err)
	}
	defer os.Remove(tmp.Name())

	if err := r.store.Download(ctx, object, tmp); err != nil {
		tmp.Close()
		if err == ErrObjectNotExist {
			return models.NotFound(fmt.Sprintf("No data found for %s/%s", country, status))
		}
		return models.QueryFailed("failed to download snapshot", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return models.QueryFailed("failed to sync snapshot file", err)
	}
	if err := tmp.Close(); err != nil {
		return models.QueryFailed("failed to close snapshot file", err)
	}
	if err := os.Rename(tmp.Name(), localPath); err != nil {
		return models.QueryFailed("failed to move snapshot into cache", err)
	}
	return nil
}

func (r *SnapshotResolver) ListCountries(ctx context.Context) ([]string, error) {
	prefixes, err := r.store.ListPrefixes(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(prefixes)
	return prefixes, nil
}
