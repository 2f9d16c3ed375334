// Package metrics exposes the Prometheus instruments for the API. Register
// once at startup; the /metrics route serves them via promhttp.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pawmarket",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		},
		[]string{"method", "pattern", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pawmarket",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "pattern"},
	)

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pawmarket",
			Name:      "bookings_created_total",
			Help:      "Bookings created by service type code.",
		},
		[]string{"service_type"},
	)

	payoutsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pawmarket",
			Name:      "payouts_processed_total",
			Help:      "Payout pipeline transitions applied by the payout processor.",
		},
	)
)

// Register registers the Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookingsCreated, payoutsProcessed)
	})
}

// ObserveHTTP records one completed HTTP request.
func ObserveHTTP(method, pattern string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, pattern, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, pattern).Observe(duration.Seconds())
}

// IncBookingCreated counts a successfully created booking.
func IncBookingCreated(serviceType string) {
	bookingsCreated.WithLabelValues(serviceType).Inc()
}

// AddPayoutsProcessed counts payout state transitions.
func AddPayoutsProcessed(n int) {
	payoutsProcessed.Add(float64(n))
}
