// Package metrics provides Prometheus metrics for the leadscore service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the leadscore service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Scoring metrics
	leadsScored     prometheus.Counter
	leadsByTier     *prometheus.GaugeVec
	scoringFailures prometheus.Counter

	// Refresh cycle metrics
	refreshTotal    prometheus.Counter
	refreshFailures prometheus.Counter
	refreshDuration prometheus.Histogram
	refreshLastUnix prometheus.Gauge

	// Collaborator metrics
	fetchErrors   prometheus.Counter
	notifications *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "leadscore",
		subsystem:        "scoring",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.leadsScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leads_scored_total",
		Help:      "Total number of leads scored.",
	})
	m.leadsByTier = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leads_by_tier",
		Help:      "Lead count per tier as of the last refresh cycle.",
	}, []string{"tier"})
	m.scoringFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_failures_total",
		Help:      "Leads skipped because identity validation failed.",
	})

	m.refreshTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "refresh",
		Name:      "cycles_total",
		Help:      "Total number of refresh cycles executed.",
	})
	m.refreshFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "refresh",
		Name:      "cycle_failures_total",
		Help:      "Refresh cycles that ended with an error.",
	})
	m.refreshDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "refresh",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of refresh cycles in seconds.",
		Buckets:   m.histogramBuckets,
	})
	m.refreshLastUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "refresh",
		Name:      "last_cycle_unix",
		Help:      "Unix timestamp of the last completed refresh cycle.",
	})

	m.fetchErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "crm",
		Name:      "fetch_errors_total",
		Help:      "Errors encountered while fetching leads from the CRM source.",
	})
	m.notifications = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "deliveries_total",
		Help:      "Notification delivery attempts by kind and result.",
	}, []string{"kind", "result"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordLeadsScored increments the scored-leads counter by n.
func RecordLeadsScored(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.leadsScored.Add(float64(n))
}

// SetTierCounts publishes the per-tier lead counts from the last cycle.
func SetTierCounts(hot, warm, cold int) {
	if !globalManager.enabled {
		return
	}
	globalManager.leadsByTier.WithLabelValues("hot").Set(float64(hot))
	globalManager.leadsByTier.WithLabelValues("warm").Set(float64(warm))
	globalManager.leadsByTier.WithLabelValues("cold").Set(float64(cold))
}

// RecordScoringFailure increments the skipped-lead counter.
func RecordScoringFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.scoringFailures.Inc()
}

// RecordRefreshCycle records the outcome of one refresh cycle.
func RecordRefreshCycle(seconds float64, failed bool) {
	if !globalManager.enabled {
		return
	}
	globalManager.refreshTotal.Inc()
	globalManager.refreshDuration.Observe(seconds)
	if failed {
		globalManager.refreshFailures.Inc()
		return
	}
	globalManager.refreshLastUnix.SetToCurrentTime()
}

// RecordFetchError increments the CRM fetch error counter.
func RecordFetchError() {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchErrors.Inc()
}

// RecordNotification records a notification delivery attempt.
// kind is "hot_lead" or "summary"; result is derived from delivered.
func RecordNotification(kind string, delivered bool) {
	if !globalManager.enabled {
		return
	}
	result := "ok"
	if !delivered {
		result = "failed"
	}
	globalManager.notifications.WithLabelValues(kind, result).Inc()
}

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records the duration of an HTTP request in seconds.
func RecordHTTPRequestDuration(endpoint, method string, seconds float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
}
