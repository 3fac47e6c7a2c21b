package providers

import "sync"

// nopLogger avoids an import cycle with testutil.
type nopLogger struct{}

func (nopLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (nopLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (nopLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Close()                                        {}

// countingMetrics records per-method call counts for middleware tests.
type countingMetrics struct {
	noopMetrics
	mu           sync.Mutex
	requests     int
	lastEndpoint string
	lastStatus   int
	cacheHits    int
	cacheMisses  int
	authFailures int
}

func (m *countingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	m.lastEndpoint = endpoint
	m.lastStatus = status
}

func (m *countingMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *countingMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

func (m *countingMetrics) IncAuthFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authFailures++
}
