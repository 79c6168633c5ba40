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

const namespace = "sa"

var knownPaths = map[string]struct{}{
	"/healthz":                {},
	"/metrics":                {},
	"/openapi.yaml":           {},
	"/v1/districts/recommend": {},
	"/v1/profiles/recommend":  {},
	"/v1/accounts/signup":     {},
	"/v1/accounts/login":      {},
	"/v1/admin/census":        {},
	"/v1/admin/census/reload": {},
}

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	districtRecommendations *prometheus.CounterVec
	schemesRecommended      *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	districtRecommendations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advisor",
			Name:      "district_recommendations_total",
			Help:      "District recommendation requests by outcome.",
		},
		[]string{"service", "outcome"},
	)
	schemesRecommended := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advisor",
			Name:      "schemes_recommended_total",
			Help:      "Schemes emitted by each recommendation engine.",
		},
		[]string{"service", "engine"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		districtRecommendations,
		schemesRecommended,
	)

	return &HTTPServerMetrics{
		registry:                registry,
		requestTotal:            requestTotal,
		requestDuration:         requestDuration,
		requestInFlight:         requestInFlight,
		districtRecommendations: districtRecommendations,
		schemesRecommended:      schemesRecommended,
	}
}

// Registerer lets the postal and census collectors share the /metrics registry.
func (m *HTTPServerMetrics) Registerer() prometheus.Registerer {
	return m.registry
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
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
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath keeps label cardinality bounded when clients probe random URLs.
func normalizePath(path string) string {
	if _, ok := knownPaths[path]; ok {
		return path
	}
	return "unmatched"
}

func (m *HTTPServerMetrics) RecordDistrictRecommendation(service, outcome string, schemes int) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.districtRecommendations.WithLabelValues(service, outcome).Inc()
	if schemes > 0 {
		m.schemesRecommended.WithLabelValues(service, "district").Add(float64(schemes))
	}
}

func (m *HTTPServerMetrics) RecordProfileRecommendation(service string, schemes int) {
	if schemes > 0 {
		m.schemesRecommended.WithLabelValues(service, "profile").Add(float64(schemes))
	}
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
