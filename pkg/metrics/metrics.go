// Package metrics registers the engine's Prometheus collectors: HTTP
// request instrumentation plus solve-invocation counters, durations and
// feasibility outcomes.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry wraps the engine's Prometheus collectors and exposes the
// scrape handler.
type Registry struct {
	registry *prometheus.Registry
	handler  http.Handler

	httpDuration *prometheus.HistogramVec
	httpTotal    *prometheus.CounterVec

	solveDuration *prometheus.HistogramVec
	solveTotal    *prometheus.CounterVec
	solveQuality  prometheus.Histogram
}

// New registers every collector against a fresh registry.
func New() *Registry {
	reg := prometheus.NewRegistry()

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "varsity_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "varsity_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "varsity_solve_duration_seconds",
		Help:    "Duration of a single solve invocation",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})

	solveTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "varsity_solve_total",
		Help: "Total solve invocations by resulting status",
	}, []string{"status"})

	solveQuality := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "varsity_solve_quality",
		Help:    "Composite quality score of returned schedules",
		Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	})

	reg.MustRegister(httpDuration, httpTotal, solveDuration, solveTotal, solveQuality)

	return &Registry{
		registry:      reg,
		handler:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		httpDuration:  httpDuration,
		httpTotal:     httpTotal,
		solveDuration: solveDuration,
		solveTotal:    solveTotal,
		solveQuality:  solveQuality,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// ObserveHTTPRequest records one request's duration and status.
func (r *Registry) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	r.httpDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	r.httpTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// GinMiddleware returns middleware that records every request's
// duration and status against r. A nil Registry disables it.
func (r *Registry) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		r.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// ObserveSolve records one solve invocation's duration, resulting
// status, and (if the schedule was scored) its composite quality.
func (r *Registry) ObserveSolve(status string, duration time.Duration, quality float64) {
	if r == nil {
		return
	}
	r.solveDuration.WithLabelValues(status).Observe(duration.Seconds())
	r.solveTotal.WithLabelValues(status).Inc()
	r.solveQuality.Observe(quality)
}
