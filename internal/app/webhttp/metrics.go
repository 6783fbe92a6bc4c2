package webhttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — коллекторы prometheus сервера галереи.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDurationSec *prometheus.HistogramVec
	UpstreamErrors     *prometheus.CounterVec
	UploadedBytes      prometheus.Counter
	RateLimitDropped   prometheus.Counter
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		RequestDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gallery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_upstream_errors_total",
			Help: "Total number of failed storage API calls.",
		}, []string{"op"}),
		UploadedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gallery_uploaded_bytes_total",
			Help: "Total number of bytes forwarded to the storage API.",
		}),
		RateLimitDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gallery_ratelimit_dropped_total",
			Help: "Total number of uploads rejected by the rate limiter.",
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDurationSec,
		m.UpstreamErrors,
		m.UploadedBytes,
		m.RateLimitDropped,
	)

	return m
}

// UpstreamError реализует imagesvc.Observer.
func (m *Metrics) UpstreamError(op string) {
	m.UpstreamErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) AddUploadedBytes(n int64) {
	m.UploadedBytes.Add(float64(n))
}

// Middleware размечает запросы шаблоном маршрута chi, а не сырым путём.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startedAt := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := strconv.Itoa(statusOf(ww))
		route := routePattern(r)
		m.RequestsTotal.WithLabelValues(route, r.Method, status).Inc()
		m.RequestDurationSec.WithLabelValues(route, r.Method, status).Observe(time.Since(startedAt).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "other"
}
