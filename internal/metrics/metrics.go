package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "physim", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "status"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "physim", Name: "handler_errors_total", Help: "Requests answered with 5xx",
	})
	RequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "physim", Name: "http_request_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HandlerErrors, RequestDuration)
}

func Handler() http.Handler { return promhttp.Handler() }

// Middleware records request counts, error counts and latency.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		RequestDuration.Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		if ww.Status() >= 500 {
			HandlerErrors.Inc()
		}
	})
}
