// Package metrics provides Prometheus metrics for the starkverb quiz service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the quiz service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	sessionsStarted prometheus.Counter
	sessionsGraded  prometheus.Counter
	answersGraded   prometheus.Counter
	answersCorrect  prometheus.Counter
	sessionScore    prometheus.Histogram

	// Corpus metrics
	corpusSize         prometheus.Gauge
	corpusReloads      prometheus.Counter
	corpusReloadErrors prometheus.Counter

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
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
		namespace:        "starkverb",
		subsystem:        "quiz",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.sessionsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_started_total",
		Help:      "Total number of quiz sessions handed out",
	})

	m.sessionsGraded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_graded_total",
		Help:      "Total number of submitted sessions graded",
	})

	m.answersGraded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "answers_graded_total",
		Help:      "Total number of conjugation forms graded",
	})

	m.answersCorrect = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "answers_correct_total",
		Help:      "Total number of conjugation forms graded correct",
	})

	m.sessionScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_score_percentage",
		Help:      "Distribution of session score percentages",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})

	m.corpusSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corpus_size",
		Help:      "Number of verbs currently loaded in the corpus",
	})

	m.corpusReloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corpus_reloads_total",
		Help:      "Total number of successful corpus reloads",
	})

	m.corpusReloadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corpus_reload_errors_total",
		Help:      "Total number of failed corpus reloads",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP error responses by endpoint and type",
		},
		[]string{"endpoint", "method", "error_type"},
	)
}

// Package-level helpers recording on the global manager.

func RecordSessionStarted() {
	globalManager.sessionsStarted.Inc()
}

func RecordSessionGraded(score int) {
	globalManager.sessionsGraded.Inc()
	globalManager.sessionScore.Observe(float64(score))
}

func RecordAnswersGraded(total, correct int) {
	globalManager.answersGraded.Add(float64(total))
	globalManager.answersCorrect.Add(float64(correct))
}

func UpdateCorpusSize(size int) {
	globalManager.corpusSize.Set(float64(size))
}

func RecordCorpusReload() {
	globalManager.corpusReloads.Inc()
}

func RecordCorpusReloadError() {
	globalManager.corpusReloadErrors.Inc()
}

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom registry serving /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
