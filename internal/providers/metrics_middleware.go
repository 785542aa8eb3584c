package providers

import (
	"net/http"
	"time"
)

// statusWriter captures the status a handler writes. Handlers that
// never call WriteHeader count as 200, matching net/http's behavior.
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

// MetricsMiddleware records one request counter increment and one
// duration sample per call, labeled by path. Dashboards poll the
// entity endpoints every few seconds, so this is where serving cost
// shows up first.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		path := r.URL.Path
		metrics.IncRequestsTotal(path, sw.status)
		metrics.ObserveRequestDuration(path, time.Since(started))
	})
}
