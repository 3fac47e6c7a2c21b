package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	metrics := &countingMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/data/landings", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1, metrics.requests)
	assert.Equal(t, "/api/v1/data/landings", metrics.lastEndpoint)
	assert.Equal(t, http.StatusTeapot, metrics.lastStatus)
}

func TestMetricsMiddleware_CollapsesMetadataPathParams(t *testing.T) {
	metrics := &countingMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/metadata/landings/fields/catch_kg", nil))

	assert.Equal(t, "/api/v1/metadata/{dataset}/fields/{field}", metrics.lastEndpoint)
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "/api/v1/data/landings", endpointLabel("/api/v1/data/landings"))
	assert.Equal(t, "/api/v1/metadata", endpointLabel("/api/v1/metadata"))
	assert.Equal(t, "/api/v1/metadata/countries", endpointLabel("/api/v1/metadata/countries"))
	assert.Equal(t, "/api/v1/metadata/{dataset}", endpointLabel("/api/v1/metadata/landings"))
	assert.Equal(t, "/api/v1/metadata/{dataset}/fields/{field}", endpointLabel("/api/v1/metadata/landings/fields/catch_kg"))
}

func TestMetricsMiddleware_DefaultsTo200(t *testing.T) {
	metrics := &countingMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec, status: http.StatusOK}
	assert.Equal(t, http.ResponseWriter(rec), sw.Unwrap())
}

func TestHTTPStatusBucket(t *testing.T) {
	assert.Equal(t, "2xx", httpStatusBucket(200))
	assert.Equal(t, "2xx", httpStatusBucket(204))
	assert.Equal(t, "3xx", httpStatusBucket(301))
	assert.Equal(t, "4xx", httpStatusBucket(404))
	assert.Equal(t, "5xx", httpStatusBucket(500))
}
