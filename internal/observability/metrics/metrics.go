// Package metrics provides Prometheus instrumentation for dexgate.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	enabled  bool
	initOnce sync.Once

	// HTTP metrics
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec

	// Settings resolution metrics
	resolveTotal    *prometheus.CounterVec
	enrichmentTotal *prometheus.CounterVec
	staleDiscarded  prometheus.Counter
	cacheHits       prometheus.Counter

	// Readiness metrics
	readinessTotal *prometheus.CounterVec
	faviconReloads prometheus.Counter
	wsClients      prometheus.Gauge
)

// Init initializes the metrics system. Collectors are registered once per process.
func Init(enabledFlag bool) {
	enabled = enabledFlag
	if !enabled {
		return
	}

	initOnce.Do(register)
}

func register() {
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dexgate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dexgate_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	resolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dexgate_settings_resolve_total",
			Help: "Total number of domain settings resolutions by outcome",
		},
		[]string{"outcome"},
	)

	enrichmentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dexgate_factory_enrichment_total",
			Help: "Total number of factory info reads by status",
		},
		[]string{"status"},
	)

	staleDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dexgate_settings_stale_discarded_total",
			Help: "Fetch results dropped because the chain changed or a newer fetch started",
		},
	)

	cacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dexgate_settings_cache_hits_total",
			Help: "Chain switches served from the snapshot cache",
		},
	)

	readinessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dexgate_readiness_transitions_total",
			Help: "Readiness recomputations by resulting state",
		},
		[]string{"state"},
	)

	faviconReloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dexgate_favicon_reloads_total",
			Help: "Full reloads requested because the favicon changed",
		},
	)

	wsClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dexgate_event_clients",
			Help: "Connected websocket event clients",
		},
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	if !enabled {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	}
	return promhttp.Handler()
}

// Enabled returns whether metrics are enabled.
func Enabled() bool {
	return enabled
}
