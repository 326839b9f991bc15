package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "fixstatus"

// Metrics implements ports.Metrics on a private Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	remoteCalls    *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec
	cacheLookups   *prometheus.CounterVec
	queueWait      prometheus.Histogram
	resolutions    *prometheus.CounterVec
}

// NewMetrics registers the application collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		remoteCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "github_requests_total",
			Help:      "GitHub API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		remoteDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "github_request_duration_seconds",
			Help:      "GitHub API request latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8), // 50ms to ~6.4s
		}, []string{"endpoint"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "inclusion_cache_lookups_total",
			Help:      "Inclusion cache lookups by outcome",
		}, []string{"outcome"}),
		queueWait: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "dispatch_queue_wait_seconds",
			Help:      "Time a remote call spent queued before running",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "resolutions_total",
			Help:      "Resolved queries by reference kind",
		}, []string{"kind"}),
	}
}

// RemoteCall records one call to the code host.
func (m *Metrics) RemoteCall(endpoint, outcome string, elapsed time.Duration) {
	m.remoteCalls.WithLabelValues(endpoint, outcome).Inc()
	m.remoteDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// CacheLookup records a cache hit or miss.
func (m *Metrics) CacheLookup(outcome string) {
	m.cacheLookups.WithLabelValues(outcome).Inc()
}

// QueueWait records the time a call spent queued.
func (m *Metrics) QueueWait(elapsed time.Duration) {
	m.queueWait.Observe(elapsed.Seconds())
}

// Resolution records a resolved query by reference kind.
func (m *Metrics) Resolution(kind string) {
	m.resolutions.WithLabelValues(kind).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
