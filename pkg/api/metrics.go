package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the viewer API.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	decodesTotal    *prometheus.CounterVec
	decodeDuration  *prometheus.HistogramVec
	recordsDecoded  *prometheus.CounterVec
	authFailedTotal prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mechtbl_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mechtbl_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mechtbl_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),
		decodesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mechtbl_table_decodes_total",
				Help: "Total number of table decode operations",
			},
			[]string{"table", "status"},
		),
		decodeDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mechtbl_table_decode_duration_seconds",
				Help:    "Table decode duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"table"},
		),
		recordsDecoded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mechtbl_records_decoded_total",
				Help: "Total number of records decoded",
			},
			[]string{"table"},
		),
		authFailedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mechtbl_auth_failures_total",
				Help: "Total number of rejected API keys",
			},
		),
	}
}

// RecordDecode records one table decode operation.
func (m *Metrics) RecordDecode(table string, records int, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.decodesTotal.WithLabelValues(table, status).Inc()
	m.decodeDuration.WithLabelValues(table).Observe(duration.Seconds())
	if success {
		m.recordsDecoded.WithLabelValues(table).Add(float64(records))
	}
}

// RecordAuthFailure records a rejected API key.
func (m *Metrics) RecordAuthFailure() {
	m.authFailedTotal.Inc()
}

// InstrumentHandler instruments an HTTP handler with request metrics.
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		duration := time.Since(start)
		m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
