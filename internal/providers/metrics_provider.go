package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"untisd/internal/structures"
)

// Poll outcome labels.
const (
	PollOutcomeSuccess   = "success"
	PollOutcomeAuthError = "auth_error"
	PollOutcomeFetchErr  = "fetch_error"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncPollsTotal(outcome string)
	ObservePollDuration(duration time.Duration)
	SetLessonsTotal(count int)
	SetCalendarEventsTotal(count int)
	SetLastPollSuccess(ts time.Time)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	pollsTotal          *prometheus.CounterVec
	pollDuration        prometheus.Histogram
	lessonsTotal        prometheus.Gauge
	calendarEventsTotal prometheus.Gauge
	lastPollSuccess     prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncPollsTotal(outcome string) {
	m.pollsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObservePollDuration(duration time.Duration) {
	m.pollDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetLessonsTotal(count int) {
	m.lessonsTotal.Set(float64(count))
}

func (m *MetricsProvider) SetCalendarEventsTotal(count int) {
	m.calendarEventsTotal.Set(float64(count))
}

func (m *MetricsProvider) SetLastPollSuccess(ts time.Time) {
	m.lastPollSuccess.Set(float64(ts.Unix()))
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
			Name: "untisd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "untisd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "untisd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "untisd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		pollsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "untisd_polls_total",
			Help: "Total number of WebUntis poll cycles by outcome",
		}, []string{"outcome"}),

		pollDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "untisd_poll_duration_seconds",
			Help:    "Duration of WebUntis poll cycles in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		lessonsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "untisd_lessons_total",
			Help: "Number of lessons in the current snapshot",
		}),

		calendarEventsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "untisd_calendar_events_total",
			Help: "Number of calendar events in the current snapshot",
		}),

		lastPollSuccess: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "untisd_last_poll_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful poll",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncPollsTotal(_ string)                           {}
func (n *noopMetrics) ObservePollDuration(_ time.Duration)              {}
func (n *noopMetrics) SetLessonsTotal(_ int)                            {}
func (n *noopMetrics) SetCalendarEventsTotal(_ int)                     {}
func (n *noopMetrics) SetLastPollSuccess(_ time.Time)                   {}
