package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/warungpos/inventory/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counts and latencies.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics collection.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// idResources are path segments whose following segment is a record ID.
var idResources = map[string]bool{
	"transfers":       true,
	"adjustments":     true,
	"wastes":          true,
	"purchase-orders": true,
	"orders":          true,
	"stocks":          true,
	"inventory":       true,
}

// normalizePath replaces record IDs with :id to keep label cardinality low.
// /api/v1/transfers/01ABC123/ship -> /api/v1/transfers/:id/ship
func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i := 1; i < len(segments); i++ {
		if segments[i] == "" {
			continue
		}
		if idResources[segments[i-1]] {
			segments[i] = ":id"
		}
		// stocks routes carry a second ID segment for the ingredient
		if i >= 2 && segments[i-2] == "stocks" && segments[i-1] == ":id" {
			segments[i] = ":id"
		}
	}

	return strings.Join(segments, "/")
}
