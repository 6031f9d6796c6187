package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the laughter analysis service
type Metrics struct {
	// File processing metrics
	FilesProcessed prometheus.Counter
	FileFailures   prometheus.Counter
	FileDuration   prometheus.Histogram
	AudioDuration  prometheus.Histogram

	// Feature extraction metrics
	FramesExtracted prometheus.Counter
	ExtractionTime  prometheus.Histogram

	// Inference metrics
	InferenceRequests prometheus.Counter
	InferenceFailures prometheus.Counter
	InferenceDuration prometheus.Histogram

	// Laughter detection metrics
	InstancesDetected prometheus.Counter
	InstanceDuration  prometheus.Histogram
	SmoothingSkipped  prometheus.Counter

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPErrors          *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		// File processing metrics
		FilesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "laugh_files_processed_total",
			Help: "Total number of audio files analyzed",
		}),
		FileFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "laugh_file_failures_total",
			Help: "Total number of audio files that failed analysis",
		}),
		FileDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "laugh_file_processing_duration_seconds",
			Help:    "Wall-clock time spent analyzing one audio file",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~7 minutes
		}),
		AudioDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "laugh_audio_duration_seconds",
			Help:    "Duration of analyzed audio files in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~68 minutes
		}),

		// Feature extraction metrics
		FramesExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "laugh_frames_extracted_total",
			Help: "Total number of feature frames extracted",
		}),
		ExtractionTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "laugh_feature_extraction_duration_seconds",
			Help:    "Time spent extracting features per file",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		}),

		// Inference metrics
		InferenceRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "laugh_inference_requests_total",
			Help: "Total number of classifier inference requests sent",
		}),
		InferenceFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "laugh_inference_failures_total",
			Help: "Total number of failed classifier inference requests",
		}),
		InferenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "laugh_inference_duration_seconds",
			Help:    "Duration of classifier inference requests",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~2 minutes
		}),

		// Laughter detection metrics
		InstancesDetected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "laugh_instances_detected_total",
			Help: "Total number of laughter instances detected",
		}),
		InstanceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "laugh_instance_duration_seconds",
			Help:    "Duration of detected laughter instances",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 8), // 50ms to ~6s
		}),
		SmoothingSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "laugh_smoothing_skipped_total",
			Help: "Total number of files where the probability sequence was too short to smooth",
		}),

		// HTTP API metrics
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "laugh_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "laugh_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		HTTPErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "laugh_http_errors_total",
			Help: "Total number of HTTP errors",
		}, []string{"method", "endpoint", "error_type"}),
	}
}

// RecordFileProcessed records a completed file analysis
func (m *Metrics) RecordFileProcessed(wallSeconds, audioSeconds float64) {
	m.FilesProcessed.Inc()
	m.FileDuration.Observe(wallSeconds)
	m.AudioDuration.Observe(audioSeconds)
}

// RecordFileFailure increments the file failure counter
func (m *Metrics) RecordFileFailure() {
	m.FileFailures.Inc()
}

// RecordFramesExtracted records a feature extraction pass
func (m *Metrics) RecordFramesExtracted(frames int, extractionSeconds float64) {
	m.FramesExtracted.Add(float64(frames))
	m.ExtractionTime.Observe(extractionSeconds)
}

// RecordInferenceRequest increments the inference requests counter
func (m *Metrics) RecordInferenceRequest(durationSeconds float64) {
	m.InferenceRequests.Inc()
	m.InferenceDuration.Observe(durationSeconds)
}

// RecordInferenceFailure increments the inference failures counter
func (m *Metrics) RecordInferenceFailure() {
	m.InferenceFailures.Inc()
}

// RecordInstance records a detected laughter instance
func (m *Metrics) RecordInstance(durationSeconds float64) {
	m.InstancesDetected.Inc()
	m.InstanceDuration.Observe(durationSeconds)
}

// RecordSmoothingSkipped increments the counter of files where smoothing
// was bypassed
func (m *Metrics) RecordSmoothingSkipped() {
	m.SmoothingSkipped.Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, durationSeconds float64) {
	m.HTTPRequests.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)
}

// RecordHTTPError records an HTTP error
func (m *Metrics) RecordHTTPError(method, endpoint, errorType string) {
	m.HTTPErrors.WithLabelValues(method, endpoint, errorType).Inc()
}
