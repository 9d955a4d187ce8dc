// Package observability collects Prometheus metrics for the application.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry and the application metric families.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	sweepsTotal      prometheus.Counter
	sweepsSkipped    prometheus.Counter
	expiredTotal     prometheus.Counter
	sweepRowFailures prometheus.Counter
}

// NewMetrics initialises the registry and base metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kurier_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kurier_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	sweeps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kurier_promotion_sweeps_total",
		Help: "Completed promotion expiry sweeps.",
	})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kurier_promotion_sweeps_skipped_total",
		Help: "Sweep ticks skipped because a sweep was still running.",
	})
	expired := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kurier_promotions_expired_total",
		Help: "Restaurant promotions reverted by the expiry sweep.",
	})
	rowFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kurier_promotion_sweep_row_failures_total",
		Help: "Rows the expiry sweep failed to revert.",
	})
	registry.MustRegister(requests, duration, sweeps, skipped, expired, rowFailures)
	return &Metrics{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:    requests,
		requestDuration:  duration,
		sweepsTotal:      sweeps,
		sweepsSkipped:    skipped,
		expiredTotal:     expired,
		sweepRowFailures: rowFailures,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records metrics for every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// SweepCompleted records one finished sweep with its row outcomes.
func (m *Metrics) SweepCompleted(expired, failed int) {
	if m == nil {
		return
	}
	m.sweepsTotal.Inc()
	m.expiredTotal.Add(float64(expired))
	m.sweepRowFailures.Add(float64(failed))
}

// SweepSkipped records a tick skipped due to a sweep still in progress.
func (m *Metrics) SweepSkipped() {
	if m == nil {
		return
	}
	m.sweepsSkipped.Inc()
}

// Registerer exposes the registry for custom metric registration.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
