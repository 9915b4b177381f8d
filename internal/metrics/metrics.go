// Package metrics exposes HTTP and inventory ledger counters in the
// Prometheus text format.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	inventorydomain "bloodbank/internal/domain/inventory"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bloodbank"

type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	units      *prometheus.CounterVec
	rejections *prometheus.CounterVec
}

// New builds a private registry so tests and multiple routers never collide
// on the global default registerer.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_units_total",
			Help:      "Blood units moved by committed ledger operations.",
		}, []string{"operation", "blood_type"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_rejections_total",
			Help:      "Ledger operations refused or rolled back, by reason.",
		}, []string{"operation", "reason"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.units,
		m.rejections,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records every request under its chi route pattern, never the raw
// path, so ids do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Credited(bloodType string, units int) {
	m.units.WithLabelValues("credit", bloodType).Add(float64(units))
}

func (m *Metrics) Debited(bloodType string, units int) {
	m.units.WithLabelValues("debit", bloodType).Add(float64(units))
}

func (m *Metrics) Transferred(bloodType string, units int) {
	m.units.WithLabelValues("transfer", bloodType).Add(float64(units))
}

func (m *Metrics) Rejected(operation string, err error) {
	m.rejections.WithLabelValues(operation, reason(err)).Inc()
}

func reason(err error) string {
	switch {
	case errors.Is(err, inventorydomain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, inventorydomain.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, inventorydomain.ErrUnknownReference):
		return "unknown_reference"
	case errors.Is(err, inventorydomain.ErrStockOverflow):
		return "stock_overflow"
	case errors.Is(err, inventorydomain.ErrDonorNotFound),
		errors.Is(err, inventorydomain.ErrRecipientNotFound),
		errors.Is(err, inventorydomain.ErrRequestNotFound):
		return "not_found"
	case errors.Is(err, inventorydomain.ErrRequestNotPending):
		return "not_pending"
	default:
		return "error"
	}
}
