// Package metrics provides Prometheus metrics for the oracle prediction service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultRefreshInterval = 10 * time.Second

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Ingestion
	matchesIngested  prometheus.Counter
	matchesDuplicate prometheus.Counter
	matchesTotal     prometheus.Gauge

	// Training and model state
	trainingsTotal   prometheus.Counter
	trainingFailures prometheus.Counter
	trainingDuration prometheus.Histogram
	modelAccuracy    prometheus.Gauge
	lastTrainedUnix  prometheus.Gauge
	teamsTracked     prometheus.Gauge
	venuesTracked    prometheus.Gauge

	// Serving
	predictionsServed     prometheus.Counter
	predictionLatency     prometheus.Histogram
	predictionCacheHits   prometheus.Counter
	predictionCacheMisses prometheus.Counter
	insightsServed        prometheus.Counter

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueTotal  prometheus.Counter
	queueDequeueTotal  prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByType      *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec
	errorLatency      *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "oracle",
		subsystem:        "predictor",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat metric declarations
	auto := promauto.With(m.registry)

	m.matchesIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "matches_ingested_total",
		Help: "Total number of match records appended to the log",
	})
	m.matchesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "matches_duplicate_total",
		Help: "Total number of duplicate match submissions detected",
	})
	m.matchesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "matches_total",
		Help: "Number of match records in the durable log",
	})

	m.trainingsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "trainings_total",
		Help: "Total number of completed training cycles",
	})
	m.trainingFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "training_failures_total",
		Help: "Total number of failed training attempts",
	})
	m.trainingDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "training_duration_milliseconds",
		Help:    "Full-history recompute plus persistence duration in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.modelAccuracy = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "model_accuracy_percent",
		Help: "In-sample backtest accuracy of the last training cycle",
	})
	m.lastTrainedUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "model_last_trained_unix",
		Help: "Unix timestamp of the last successful training cycle",
	})
	m.teamsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "teams_tracked",
		Help: "Number of teams in the current model snapshot",
	})
	m.venuesTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "venues_tracked",
		Help: "Number of venues in the current model snapshot",
	})

	m.predictionsServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "predictions_served_total",
		Help: "Total number of predictions served",
	})
	m.predictionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "prediction_latency_milliseconds",
		Help:    "Prediction computation latency in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.predictionCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "prediction_cache_hits_total",
		Help: "Total number of prediction cache hits",
	})
	m.predictionCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "prediction_cache_misses_total",
		Help: "Total number of prediction cache misses",
	})
	m.insightsServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "insights_served_total",
		Help: "Total number of team insight reports served",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Current size of the match-event queue",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Maximum match-event queue capacity",
	})
	m.queueEnqueueTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_total",
		Help: "Total number of events enqueued",
	})
	m.queueDequeueTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeue_total",
		Help: "Total number of events dequeued",
	})
	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_errors_total",
		Help: "Total number of rejected enqueues (full or closed queue)",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Number of append workers",
	})
	m.workerProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "worker_processing_latency_milliseconds",
		Help:    "Per-event worker processing latency in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total",
		Help: "Total number of worker processing errors",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem,
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem,
			Name:    "http_request_duration_milliseconds",
			Help:    "HTTP request duration in milliseconds",
			Buckets: m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem,
			Name: "errors_by_component_total",
			Help: "Errors by component and type",
		},
		[]string{"component", "error_type"},
	)
	m.errorsByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem,
			Name: "errors_by_type_total",
			Help: "Errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem,
			Name: "errors_by_endpoint_total",
			Help: "HTTP errors by endpoint, method and type",
		},
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem,
			Name:    "error_latency_milliseconds",
			Help:    "Latency of failed operations in milliseconds",
			Buckets: m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_memory_bytes",
		Help: "Current allocated heap bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_goroutines",
		Help: "Current number of goroutines",
	})
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "system_gc_pause_milliseconds",
		Help:    "Average GC pause time in milliseconds",
		Buckets: m.histogramBuckets,
	})
}

// Ingestion helpers.

func RecordMatchIngested()     { globalManager.matchesIngested.Inc() }
func RecordMatchDuplicate()    { globalManager.matchesDuplicate.Inc() }
func UpdateMatchesTotal(n int) { globalManager.matchesTotal.Set(float64(n)) }

// Training helpers.

func RecordTraining()                     { globalManager.trainingsTotal.Inc() }
func RecordTrainingFailure()              { globalManager.trainingFailures.Inc() }
func RecordTrainingDuration(ms float64)   { globalManager.trainingDuration.Observe(ms) }
func UpdateModelAccuracy(percent float64) { globalManager.modelAccuracy.Set(percent) }
func UpdateLastTrainedAt(unixSecs int64)  { globalManager.lastTrainedUnix.Set(float64(unixSecs)) }
func UpdateTeamsTracked(n int)            { globalManager.teamsTracked.Set(float64(n)) }
func UpdateVenuesTracked(n int)           { globalManager.venuesTracked.Set(float64(n)) }

// Serving helpers.

func RecordPredictionServed()            { globalManager.predictionsServed.Inc() }
func RecordPredictionLatency(ms float64) { globalManager.predictionLatency.Observe(ms) }
func RecordPredictionCacheHit()          { globalManager.predictionCacheHits.Inc() }
func RecordPredictionCacheMiss()         { globalManager.predictionCacheMisses.Inc() }
func RecordInsightServed()               { globalManager.insightsServed.Inc() }

// Queue helpers.

func UpdateQueueSize(size int)         { globalManager.queueSize.Set(float64(size)) }
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }
func RecordQueueEnqueue()              { globalManager.queueEnqueueTotal.Inc() }
func RecordQueueDequeue()              { globalManager.queueDequeueTotal.Inc() }
func RecordQueueEnqueueError()         { globalManager.queueEnqueueErrors.Inc() }

// Worker helpers.

func UpdateWorkerCount(count int)              { globalManager.workerCount.Set(float64(count)) }
func RecordWorkerProcessingLatency(ms float64) { globalManager.workerProcessingLatency.Observe(ms) }
func RecordWorkerError()                       { globalManager.workerErrors.Inc() }

// HTTP helpers.

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// Error helpers.

func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

func RecordErrorLatency(component, errorType string, ms float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(ms)
}

// System helpers.

func UpdateSystemMemoryUsage(bytes uint64)    { globalManager.systemMemoryUsage.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(count int)    { globalManager.systemGoroutineCount.Set(float64(count)) }
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry exposes the custom registry for the metrics endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
