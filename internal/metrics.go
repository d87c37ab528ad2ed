package internal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inventory-dashboard/pkg/importer"
)

// Metrics provides Prometheus metrics for HTTP requests and inventory loads
type Metrics struct {
	reqTotal     *prometheus.CounterVec
	reqLatency   *prometheus.HistogramVec
	items        prometheus.Gauge
	skipped      prometheus.Gauge
	loadDuration prometheus.Gauge
	registry     *prometheus.Registry
}

// NewMetrics creates a new Metrics instance with a private Prometheus registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	items := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_items",
		Help: "Items currently served by /api/inventory",
	})
	skipped := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_load_skipped_records",
		Help: "Records skipped by the last inventory load",
	})
	loadDuration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_load_duration_seconds",
		Help: "Duration of the last inventory load",
	})

	registry.MustRegister(reqTotal, reqLatency, items, skipped, loadDuration)

	return &Metrics{
		reqTotal:     reqTotal,
		reqLatency:   reqLatency,
		items:        items,
		skipped:      skipped,
		loadDuration: loadDuration,
		registry:     registry,
	}
}

// ObserveLoad records the outcome of an inventory load.
func (m *Metrics) ObserveLoad(summary importer.LoadSummary, elapsed time.Duration) {
	m.items.Set(float64(summary.Loaded))
	m.skipped.Set(float64(summary.Skipped))
	m.loadDuration.Set(elapsed.Seconds())
}

// Middleware returns a Chi middleware that collects metrics
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

			next.ServeHTTP(rw, r)

			// Use Chi's route pattern if available
			path := r.URL.Path
			if chiCtx := chi.RouteContext(r.Context()); chiCtx != nil && len(chiCtx.RoutePatterns) > 0 {
				path = chiCtx.RoutePatterns[len(chiCtx.RoutePatterns)-1]
			}

			status := http.StatusText(rw.code)
			m.reqTotal.WithLabelValues(r.Method, path, status).Inc()
			m.reqLatency.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler returns an http.Handler that serves Prometheus metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the HTTP status code
type statusRecorder struct {
	http.ResponseWriter
	code        int
	wroteHeader bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.wroteHeader {
		sr.code = code
		sr.wroteHeader = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.wroteHeader = true
	return sr.ResponseWriter.Write(b)
}
