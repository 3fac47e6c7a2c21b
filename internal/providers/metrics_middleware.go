package providers

import (
	"net/http"
	"strings"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// endpointLabel collapses path parameters to their route placeholders
// so the metadata routes do not explode the metric label space with
// one series per dataset or field name.
func endpointLabel(path string) string {
	const metadataPrefix = "/api/v1/metadata/"
	if rest, ok := strings.CutPrefix(path, metadataPrefix); ok {
		if rest == "countries" {
			return path
		}
		if strings.Contains(rest, "/fields/") {
			return metadataPrefix + "{dataset}/fields/{field}"
		}
		return metadataPrefix + "{dataset}"
	}
	return path
}

func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		endpoint := endpointLabel(r.URL.Path)
		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, time.Since(start))
	})
}
