package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fishdata/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncAuthFailures()
	IncPermissionDenied(dimension string)
	IncSnapshotDownloads()
	IncSnapshotCacheHits()
	ObserveQueryDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	authFailures      prometheus.Counter
	permissionDenied  *prometheus.CounterVec
	snapshotDownloads prometheus.Counter
	snapshotCacheHits prometheus.Counter
	queryDuration     prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncAuthFailures() {
	m.authFailures.Inc()
}

func (m *MetricsProvider) IncPermissionDenied(dimension string) {
	m.permissionDenied.WithLabelValues(dimension).Inc()
}

func (m *MetricsProvider) IncSnapshotDownloads() {
	m.snapshotDownloads.Inc()
}

func (m *MetricsProvider) IncSnapshotCacheHits() {
	m.snapshotCacheHits.Inc()
}

func (m *MetricsProvider) ObserveQueryDuration(duration time.Duration) {
	m.queryDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fishdata_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fishdata_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fishdata_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fishdata_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		authFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fishdata_auth_failures_total",
			Help: "Total number of failed authentication attempts",
		}),

		permissionDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fishdata_permission_denied_total",
			Help: "Total number of denied permission checks per dimension",
		}, []string{"dimension"}),

		snapshotDownloads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fishdata_snapshot_downloads_total",
			Help: "Total number of snapshot downloads from remote storage",
		}),

		snapshotCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fishdata_snapshot_cache_hits_total",
			Help: "Total number of snapshot requests served from the local cache",
		}),

		queryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fishdata_query_duration_seconds",
			Help:    "Duration of snapshot queries in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncAuthFailures()                                 {}
func (n *noopMetrics) IncPermissionDenied(_ string)                     {}
func (n *noopMetrics) IncSnapshotDownloads()                            {}
func (n *noopMetrics) IncSnapshotCacheHits()                            {}
func (n *noopMetrics) ObserveQueryDuration(_ time.Duration)             {}
