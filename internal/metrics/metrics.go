package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coocvt_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"route", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coocvt_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	conversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coocvt_conversions_total",
			Help: "Total number of coordinate conversions by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	conversionDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coocvt_conversion_duration_seconds",
			Help:    "Coordinate conversion duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
		[]string{"mode"},
	)

	bodiesConvertedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coocvt_bodies_converted_total",
			Help: "Total number of bodies passed through a conversion.",
		},
		[]string{"mode"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(conversionsTotal)
	prometheus.MustRegister(conversionDurationSeconds)
	prometheus.MustRegister(bodiesConvertedTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordConversion records one whole-population conversion call.
func RecordConversion(mode string, d time.Duration, bodies int, failed bool) {
	outcome := "success"
	if failed {
		outcome = "error"
	}
	conversionsTotal.WithLabelValues(mode, outcome).Inc()
	conversionDurationSeconds.WithLabelValues(mode).Observe(d.Seconds())
	bodiesConvertedTotal.WithLabelValues(mode).Add(float64(bodies))
}

// knownRoutes are the exact paths the server registers.
var knownRoutes = map[string]bool{
	"/healthz":        true,
	"/readyz":         true,
	"/metrics":        true,
	"/api/v1/convert": true,
	"/api/v1/version": true,
}

// normalizeRoute collapses unknown paths (bots, scanners, typos) to a single
// "other" label so request paths cannot blow up metric cardinality.
func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		route := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(route, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(duration)
	})
}
