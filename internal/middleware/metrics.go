package middleware

import (
	"net/http"
	"time"

	"github.com/pawmarket/api/internal/metrics"
)

// Metrics records request count and latency per route pattern. It reads
// r.Pattern after the mux has routed, so it must wrap the mux directly.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.ObserveHTTP(r.Method, pattern, rec.status, time.Since(start))
	})
}
