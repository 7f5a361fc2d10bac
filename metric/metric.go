package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var instance *Metrics

func init() {
	instance = newMetrics()
}

// GetInstance returns the singleton metrics.
func GetInstance() *Metrics {
	return instance
}

// Metrics struct contains all the metrics.
type Metrics struct {
	resolutionCounter *prometheus.CounterVec
	cacheHitCounter   prometheus.Counter
	feedbackCounter   prometheus.Counter
	resolveHistogram  prometheus.Histogram
	requestCounter    *prometheus.CounterVec
}

func newMetrics() *Metrics {
	metrics := &Metrics{
		resolutionCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dpofinder_resolutions_total",
				Help: "Total number of address resolutions by status.",
			}, []string{"status"}),
		cacheHitCounter: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dpofinder_cache_hits_total",
				Help: "Total number of resolution and suggestion cache hits.",
			}),
		feedbackCounter: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dpofinder_feedback_total",
				Help: "Total number of user correction reports.",
			}),
		resolveHistogram: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dpofinder_resolve_seconds",
				Help:    "Histogram of matching engine latency.",
				Buckets: prometheus.DefBuckets,
			}),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dpofinder_http_requests_total",
				Help: "Total number of HTTP requests by route and status code.",
			}, []string{"method", "route", "status"}),
	}
	prometheus.MustRegister(
		metrics.resolutionCounter,
		metrics.cacheHitCounter,
		metrics.feedbackCounter,
		metrics.resolveHistogram,
		metrics.requestCounter,
	)
	return metrics
}

// RecordResolution counts one resolution and observes its latency.
func (metrics *Metrics) RecordResolution(status string, elapsed time.Duration) {
	metrics.resolutionCounter.WithLabelValues(status).Inc()
	metrics.resolveHistogram.Observe(elapsed.Seconds())
}

// RecordCacheHit counts one cache hit.
func (metrics *Metrics) RecordCacheHit() {
	metrics.cacheHitCounter.Inc()
}

// RecordRequest counts one handled HTTP request.
func (metrics *Metrics) RecordRequest(method, route, status string) {
	metrics.requestCounter.WithLabelValues(method, route, status).Inc()
}

// RecordFeedback counts one user correction report.
func (metrics *Metrics) RecordFeedback() {
	metrics.feedbackCounter.Inc()
}

// HTTPHandler returns the HTTP handler for the metrics endpoint.
func (metrics *Metrics) HTTPHandler() http.Handler {
	return promhttp.Handler()
}
