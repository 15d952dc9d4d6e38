package providers

import (
	"activitybot/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(query string)
	IncCacheMisses(query string)
	ObservePersistenceDuration(duration time.Duration)
	IncEventsTotal(eventType string)
	IncReportsTotal(report string, ok bool)
	SetTrackedTotals(users, days, weeks int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	eventsTotal         *prometheus.CounterVec
	reportsTotal        *prometheus.CounterVec
	trackedTotal        *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(query string) {
	m.cacheHits.WithLabelValues(query).Inc()
}

func (m *MetricsProvider) IncCacheMisses(query string) {
	m.cacheMisses.WithLabelValues(query).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncEventsTotal(eventType string) {
	m.eventsTotal.WithLabelValues(eventType).Inc()
}

func (m *MetricsProvider) IncReportsTotal(report string, ok bool) {
	result := "sent"
	if !ok {
		result = "failed"
	}
	m.reportsTotal.WithLabelValues(report, result).Inc()
}

func (m *MetricsProvider) SetTrackedTotals(users, days, weeks int) {
	m.trackedTotal.WithLabelValues("users").Set(float64(users))
	m.trackedTotal.WithLabelValues("days").Set(float64(days))
	m.trackedTotal.WithLabelValues("weeks").Set(float64(weeks))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "activitybot_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "activitybot_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "activitybot_cache_hits_total",
			Help: "Query cache hits by query kind",
		}, []string{"query"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "activitybot_cache_misses_total",
			Help: "Query cache misses by query kind",
		}, []string{"query"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "activitybot_persistence_duration_seconds",
			Help:    "Duration of data file writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		eventsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "activitybot_events_total",
			Help: "Total number of tracked chat events",
		}, []string{"type"}),

		reportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "activitybot_reports_total",
			Help: "Scheduled reports by outcome",
		}, []string{"report", "result"}),

		trackedTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "activitybot_tracked_total",
			Help: "Number of tracked users, days and weeks in the data file",
		}, []string{"kind"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                            {}
func (n *noopMetrics) IncCacheMisses(_ string)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncEventsTotal(_ string)                          {}
func (n *noopMetrics) IncReportsTotal(_ string, _ bool)                 {}
func (n *noopMetrics) SetTrackedTotals(_, _, _ int)                     {}
