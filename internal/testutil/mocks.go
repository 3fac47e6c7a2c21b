package testutil

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"fishdata/internal/models"
	"fishdata/internal/providers"
	"fishdata/internal/query"
	"fishdata/internal/storage"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLevel reports whether any recorded entry carries the level.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// every call per metric.
type MockMetrics struct {
	mu                sync.Mutex
	Requests          int
	CacheHits         int
	CacheMisses       int
	AuthFailures      int
	PermissionDenied  map[string]int
	SnapshotDownloads int
	SnapshotCacheHits int
	QueryObservations int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{PermissionDenied: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncAuthFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AuthFailures++
}

func (m *MockMetrics) IncPermissionDenied(dimension string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PermissionDenied[dimension]++
}

func (m *MockMetrics) IncSnapshotDownloads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotDownloads++
}

func (m *MockMetrics) IncSnapshotCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotCacheHits++
}

func (m *MockMetrics) ObserveQueryDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryObservations++
}

// MockAudit implements services.AuditServiceInterface and records
// every event type it sees.
type MockAudit struct {
	mu               sync.Mutex
	AuthSuccesses    []string
	AuthFailures     []string
	PermissionChecks []PermissionCheckCall
	DataAccesses     []DataAccessCall
	Closed           bool
}

type PermissionCheckCall struct {
	KeyName      string
	Endpoint     string
	Allowed      bool
	ErrorMessage string
}

type DataAccessCall struct {
	KeyName    string
	Endpoint   string
	StatusCode int
	DurationMs float64
}

func (m *MockAudit) AuthSuccess(keyName, _, _, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AuthSuccesses = append(m.AuthSuccesses, keyName)
}

func (m *MockAudit) AuthFailure(_, _, errorMessage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AuthFailures = append(m.AuthFailures, errorMessage)
}

func (m *MockAudit) PermissionCheck(keyName, _, endpoint, _ string, _ map[string]any, allowed bool, errorMessage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PermissionChecks = append(m.PermissionChecks, PermissionCheckCall{
		KeyName:      keyName,
		Endpoint:     endpoint,
		Allowed:      allowed,
		ErrorMessage: errorMessage,
	})
}

func (m *MockAudit) DataAccess(keyName, _, endpoint, _, _ string, _ map[string]any, statusCode int, durationMs float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DataAccesses = append(m.DataAccesses, DataAccessCall{
		KeyName:    keyName,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		DurationMs: durationMs,
	})
}

func (m *MockAudit) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// MockKeyring implements providers.KeyLookup and
// services.KeyringServiceInterface over a fixed key map.
type MockKeyring struct {
	Keys    map[string]*models.KeyConfig
	Reloads int
}

func (m *MockKeyring) Get(key string) (*models.KeyConfig, bool) {
	cfg, ok := m.Keys[key]
	return cfg, ok
}

func (m *MockKeyring) Count() int { return len(m.Keys) }

func (m *MockKeyring) Reload() error {
	m.Reloads++
	return nil
}

// FakeBlobStore is an in-memory storage.BlobStore for resolver tests.
type FakeBlobStore struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	Downloads []string
}

func NewFakeBlobStore() *FakeBlobStore {
	return &FakeBlobStore{Objects: make(map[string][]byte)}
}

func (f *FakeBlobStore) Put(name string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects[name] = data
}

func (f *FakeBlobStore) Delete(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Objects, name)
}

func (f *FakeBlobStore) List(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for name := range f.Objects {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			names = append(names, name)
		}
	}
	return names, nil
}

func (f *FakeBlobStore) ListPrefixes(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]bool)
	var prefixes []string
	for name := range f.Objects {
		for i := 0; i < len(name); i++ {
			if name[i] == '/' {
				if !seen[name[:i]] {
					seen[name[:i]] = true
					prefixes = append(prefixes, name[:i])
				}
				break
			}
		}
	}
	return prefixes, nil
}

func (f *FakeBlobStore) Download(_ context.Context, object string, w io.Writer) error {
	f.mu.Lock()
	data, ok := f.Objects[object]
	f.mu.Unlock()
	if !ok {
		return storage.ErrObjectNotExist
	}
	f.mu.Lock()
	f.Downloads = append(f.Downloads, object)
	f.mu.Unlock()
	_, err := io.Copy(w, bytes.NewReader(data))
	return err
}

// MockResolver implements storage.SnapshotResolverInterface with a
// fixed answer.
type MockResolver struct {
	Path      string
	Err       *models.DomainError
	Countries []string
	Calls     []string
}

func (m *MockResolver) Resolve(_ context.Context, country string, status models.DatasetStatus) (string, *models.DomainError) {
	m.Calls = append(m.Calls, country+"/"+string(status))
	if m.Err != nil {
		return "", m.Err
	}
	return m.Path, nil
}

func (m *MockResolver) ListCountries(_ context.Context) ([]string, error) {
	return m.Countries, nil
}

// MockEngine implements query.EngineInterface, recording the call and
// returning an injected stream.
type MockEngine struct {
	Stream     *query.RowStream
	Err        *models.DomainError
	Path       string
	Projection []string
	Filters    query.Filters
	Limit      int
}

func (m *MockEngine) Execute(_ context.Context, parquetPath string, projection []string, filters query.Filters, limit int) (*query.RowStream, *models.DomainError) {
	m.Path = parquetPath
	m.Projection = projection
	m.Filters = filters
	m.Limit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Stream, nil
}

func (m *MockEngine) Close() error { return nil }
