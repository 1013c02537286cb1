// Package metrics provides Prometheus instrumentation.
//
// It pre-defines the standard HTTP metrics plus the storefront's own
// domain counters (orders, reservations, search) and gives you helpers to
// register custom metrics.
//
// Wire it up once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", metrics.Handler())
//
// Then scrape http://localhost:4000/metrics from Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─────────────────────────────────────────────
// Built-in HTTP metrics
// ─────────────────────────────────────────────

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "boutique",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "boutique",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// ResponseSize tracks the response body size in bytes.
	ResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "boutique",
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "Response body sizes in bytes.",
			Buckets:   []float64{100, 1_000, 10_000, 100_000, 1_000_000},
		},
		[]string{"method", "path"},
	)
)

// ─────────────────────────────────────────────
// Domain metrics
// ─────────────────────────────────────────────

var (
	// OrdersCreated counts successfully created orders.
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "boutique",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total orders created.",
	})

	// OrderTransitions counts status transitions applied by webhooks.
	OrderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "orders",
			Name:      "status_transitions_total",
			Help:      "Order status transitions, by resulting status.",
		},
		[]string{"status"}, // "paid" | "failed" | "pending-payment"
	)

	// ReservationConflicts counts reserve attempts rejected for lack of stock.
	ReservationConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "boutique",
		Subsystem: "inventory",
		Name:      "reservation_conflicts_total",
		Help:      "Reservations rejected because the product was out of stock.",
	})

	// SearchRequests counts catalog searches by the mode that served them.
	SearchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Search requests, by serving mode.",
		},
		[]string{"mode"}, // "remote" | "replica"
	)

	// IndexSyncs counts remote index refreshes by outcome.
	IndexSyncs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "search",
			Name:      "index_syncs_total",
			Help:      "Remote index synchronizations, by outcome.",
		},
		[]string{"outcome"}, // "synced" | "skipped" | "failed"
	)

	// QueueJobsProcessed counts processed queue jobs by status.
	QueueJobsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "queue",
			Name:      "jobs_processed_total",
			Help:      "Total queue jobs processed.",
		},
		[]string{"status"}, // "success" | "failed"
	)

	// QueueJobDuration tracks how long queue jobs take.
	QueueJobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "boutique",
			Subsystem: "queue",
			Name:      "job_duration_seconds",
			Help:      "Duration of queue job processing in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"job_type"},
	)

	// CacheHits / CacheMisses track cache effectiveness.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
		[]string{"driver"}, // "redis" | "memory"
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boutique",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
		[]string{"driver"},
	)
)

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry is the Prometheus registry used by the app.
// Register your own metrics against this.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	// Go runtime metrics (GC, goroutines, memory)
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	// OS process metrics (CPU, open FDs)
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		ResponseSize,
		OrdersCreated,
		OrderTransitions,
		ReservationConflicts,
		SearchRequests,
		IndexSyncs,
		QueueJobsProcessed,
		QueueJobDuration,
		CacheHits,
		CacheMisses,
	)
}

// Register lets you add your own prometheus.Collector to the registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ─────────────────────────────────────────────
// HTTP middleware
// ─────────────────────────────────────────────

// responseRecorder wraps http.ResponseWriter to capture status code and size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Middleware returns an http.Handler middleware that records Prometheus metrics
// for every request: duration histogram, total counter, in-flight gauge, response size.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path // raw path; normalize in high-cardinality APIs

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
			ResponseSize.WithLabelValues(r.Method, path).Observe(float64(rr.size))
		})
	}
}

// ─────────────────────────────────────────────
// /metrics endpoint handler
// ─────────────────────────────────────────────

// Handler returns an http.HandlerFunc that exposes the Prometheus metrics page.
// Mount it on GET /metrics in your router.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ─────────────────────────────────────────────
// Helpers for app code
// ─────────────────────────────────────────────

// RecordQueueJob records a queue job result.
func RecordQueueJob(jobType, status string, start time.Time) {
	QueueJobsProcessed.WithLabelValues(status).Inc()
	QueueJobDuration.WithLabelValues(jobType).Observe(time.Since(start).Seconds())
}
