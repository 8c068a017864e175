package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	pipelineTotal         *prometheus.CounterVec
	pipelineDuration      *prometheus.HistogramVec
	embeddingDegraded     *prometheus.CounterVec
	rankedProductsPerCall *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragsearch",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragsearch",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ragsearch",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	pipelineTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragsearch",
			Subsystem: "pipeline",
			Name:      "operations_total",
			Help:      "Total pipeline operations by outcome.",
		},
		[]string{"service", "operation", "status"},
	)
	pipelineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragsearch",
			Subsystem: "pipeline",
			Name:      "operation_duration_seconds",
			Help:      "Pipeline operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)
	embeddingDegraded := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragsearch",
			Subsystem: "pipeline",
			Name:      "embedding_degraded_total",
			Help:      "Total operations that shipped with an empty embedding.",
		},
		[]string{"service", "operation"},
	)
	rankedProductsPerCall := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragsearch",
			Subsystem: "pipeline",
			Name:      "ranked_products",
			Help:      "Distribution of reconciled products per successful search.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10, 13},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		pipelineTotal,
		pipelineDuration,
		embeddingDegraded,
		rankedProductsPerCall,
	)

	return &HTTPServerMetrics{
		registry:              registry,
		requestTotal:          requestTotal,
		requestDuration:       requestDuration,
		requestInFlight:       requestInFlight,
		pipelineTotal:         pipelineTotal,
		pipelineDuration:      pipelineDuration,
		embeddingDegraded:     embeddingDegraded,
		rankedProductsPerCall: rankedProductsPerCall,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *HTTPServerMetrics) RecordPipelineOperation(service, operation, status string, duration time.Duration) {
	if status == "" {
		status = "unknown"
	}
	m.pipelineTotal.WithLabelValues(service, operation, status).Inc()
	m.pipelineDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordEmbeddingDegraded(service, operation string) {
	m.embeddingDegraded.WithLabelValues(service, operation).Inc()
}

func (m *HTTPServerMetrics) RecordRankedProducts(service string, count int) {
	m.rankedProductsPerCall.WithLabelValues(service).Observe(float64(count))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
