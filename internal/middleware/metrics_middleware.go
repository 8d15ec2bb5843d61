package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"residencia-backend/internal/metrics"
)

// MetricsMiddleware records request counts and latency. Entity IDs are
// collapsed out of the path label to keep its cardinality bounded.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := routeLabel(r.URL.Path)
		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, path, strconv.Itoa(wrapped.statusCode),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method, path,
		).Observe(time.Since(start).Seconds())
	})
}

// routeLabel maps /api/<entity>/<id>/<verb> to /api/<entity>/{id}/<verb>.
// Segments with digits are IDs; named sub-routes like generate-monthly are
// kept as-is.
func routeLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if i > 2 && strings.ContainsAny(part, "0123456789") {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
