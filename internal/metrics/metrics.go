package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recogate",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "recogate",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2, 5, 10, 30},
	}, []string{"method", "path"})

	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recogate",
		Name:      "upstream_requests_total",
		Help:      "Total requests to content sources by source name and result status.",
	}, []string{"source", "status"})

	UpstreamRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "recogate",
		Name:      "upstream_request_duration_seconds",
		Help:      "Content source request duration in seconds.",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"source"})

	FallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recogate",
		Name:      "static_fallbacks_total",
		Help:      "Requests answered from static data after an upstream miss, by category.",
	}, []string{"category"})

	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "recogate",
		Name:      "cache_hits_total",
		Help:      "Total number of response cache hits.",
	})

	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "recogate",
		Name:      "cache_misses_total",
		Help:      "Total number of response cache misses.",
	})

	CacheEvictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "recogate",
		Name:      "cache_evictions_total",
		Help:      "Expired entries removed by the periodic sweep.",
	})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		FallbacksTotal,
		CacheHitsTotal,
		CacheMissesTotal,
		CacheEvictionsTotal,
	)
}

// ObserveUpstream records one call to a content source.
func ObserveUpstream(source string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	UpstreamRequestsTotal.WithLabelValues(source, status).Inc()
	UpstreamRequestDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}
