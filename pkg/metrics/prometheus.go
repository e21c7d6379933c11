// Package metrics provides Prometheus metrics for the momentum engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the momentum service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core Business Metrics
	tracesBuilt       prometheus.Counter
	traceSamples      prometheus.Histogram
	eventsDropped     prometheus.Counter
	similarityQueries prometheus.Counter
	sampleFallbacks   prometheus.Counter
	predictions       *prometheus.CounterVec
	narratives        prometheus.Counter

	// Operational Health Metrics
	fingerprintCount prometheus.Gauge
	ingestQueueSize  prometheus.Gauge
	ingestWorkers    prometheus.Gauge

	// Ingest Pipeline Metrics
	ingestProcessed prometheus.Counter
	ingestSkipped   prometheus.Counter
	ingestFailed    prometheus.Counter
	ingestLatency   prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Store Metrics
	storeInsertLatency prometheus.Histogram
	storeQueryLatency  prometheus.Histogram

	// Enhanced Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "momentum",
		subsystem:        "engine",
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

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Register on the configured registry (custom by default).
	auto := promauto.With(m.registry)

	// Core Business Metrics
	m.tracesBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "traces_built_total",
		Help:      "Total number of momentum traces built from play events",
	})

	m.traceSamples = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trace_samples",
		Help:      "Histogram of samples per built momentum trace",
		Buckets:   []float64{0, 10, 25, 50, 100, 200, 400, 800},
	})

	m.eventsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_dropped_total",
		Help:      "Total number of play events dropped as unusable (indicates feed quality)",
	})

	m.similarityQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "similarity_queries_total",
		Help:      "Total number of similar-game searches served",
	})

	m.sampleFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "similarity_sample_fallbacks_total",
		Help:      "Total number of searches answered from the sample library (store too small)",
	})

	m.predictions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "run_predictions_total",
			Help:      "Total number of run predictions by confidence band",
		},
		[]string{"confidence"},
	)

	m.narratives = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "narratives_total",
		Help:      "Total number of narratives synthesized",
	})

	// Operational Health Metrics
	m.fingerprintCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fingerprint_count",
		Help:      "Number of game fingerprints currently stored (business scale)",
	})

	m.ingestQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_queue_size",
		Help:      "Current size of the ingest job queue (backlog indicator)",
	})

	m.ingestWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_worker_count",
		Help:      "Current number of ingest workers (processing capacity)",
	})

	// Ingest Pipeline Metrics
	m.ingestProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_processed_total",
		Help:      "Total number of games ingested successfully",
	})

	m.ingestSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_skipped_total",
		Help:      "Total number of games skipped because they were already stored",
	})

	m.ingestFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_failed_total",
		Help:      "Total number of games that failed ingestion",
	})

	m.ingestLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_latency_milliseconds",
		Help:      "Per-game ingest latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Store Metrics
	m.storeInsertLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_insert_latency_milliseconds",
		Help:      "Fingerprint store insert latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_latency_milliseconds",
		Help:      "Fingerprint store query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Enhanced Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "error_latency_milliseconds",
			Help:      "Latency of operations that resulted in errors",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordTraceBuilt increments the trace counter and observes its size.
func RecordTraceBuilt(samples int) {
	globalManager.tracesBuilt.Inc()
	globalManager.traceSamples.Observe(float64(samples))
}

// RecordEventDropped increments the dropped-event counter.
func RecordEventDropped() {
	globalManager.eventsDropped.Inc()
}

// RecordSimilarityQuery increments the similarity query counter.
func RecordSimilarityQuery() {
	globalManager.similarityQueries.Inc()
}

// RecordSampleFallback increments the sample library fallback counter.
func RecordSampleFallback() {
	globalManager.sampleFallbacks.Inc()
}

// RecordPrediction increments the prediction counter for a confidence band.
func RecordPrediction(confidence string) {
	globalManager.predictions.WithLabelValues(confidence).Inc()
}

// RecordNarrative increments the narrative counter.
func RecordNarrative() {
	globalManager.narratives.Inc()
}

// UpdateFingerprintCount sets the stored fingerprint count.
func UpdateFingerprintCount(count int) {
	globalManager.fingerprintCount.Set(float64(count))
}

// UpdateIngestQueueSize sets the current ingest queue size.
func UpdateIngestQueueSize(size int) {
	globalManager.ingestQueueSize.Set(float64(size))
}

// UpdateIngestWorkerCount sets the current ingest worker count.
func UpdateIngestWorkerCount(count int) {
	globalManager.ingestWorkers.Set(float64(count))
}

// Ingest Pipeline Metrics Functions.

// RecordIngestProcessed increments the processed-game counter.
func RecordIngestProcessed() {
	globalManager.ingestProcessed.Inc()
}

// RecordIngestSkipped increments the skipped-game counter.
func RecordIngestSkipped() {
	globalManager.ingestSkipped.Inc()
}

// RecordIngestFailed increments the failed-game counter.
func RecordIngestFailed() {
	globalManager.ingestFailed.Inc()
}

// RecordIngestLatency records per-game ingest latency in milliseconds.
func RecordIngestLatency(latencyMs float64) {
	globalManager.ingestLatency.Observe(latencyMs)
}

// HTTP Performance Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Store Metrics Functions.

// RecordStoreInsertLatency records fingerprint store insert latency.
func RecordStoreInsertLatency(latencyMs float64) {
	globalManager.storeInsertLatency.Observe(latencyMs)
}

// RecordStoreQueryLatency records fingerprint store query latency.
func RecordStoreQueryLatency(latencyMs float64) {
	globalManager.storeQueryLatency.Observe(latencyMs)
}

// Enhanced Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
