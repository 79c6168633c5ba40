package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

type PostalMetrics struct {
	service string

	lookupsTotal *prometheus.CounterVec
	breakerState *prometheus.GaugeVec
}

func NewPostalMetrics(service string, registerer prometheus.Registerer) *PostalMetrics {
	lookupsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "postal",
			Name:      "lookups_total",
			Help:      "Pincode lookups by status, failure kind and cache use.",
		},
		[]string{"service", "status", "failure", "cached"},
	)
	breakerState := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Breaker state per operation: 0 closed, 1 half-open, 2 open.",
		},
		[]string{"service", "operation"},
	)

	registerer.MustRegister(lookupsTotal, breakerState)

	return &PostalMetrics{
		service:      service,
		lookupsTotal: lookupsTotal,
		breakerState: breakerState,
	}
}

func (m *PostalMetrics) ObservePostalLookup(status domain.PostalStatus, failure domain.PostalFailure, cached bool) {
	m.lookupsTotal.WithLabelValues(m.service, string(status), string(failure), strconv.FormatBool(cached)).Inc()
}

func (m *PostalMetrics) ObserveBreakerState(operation string, _ gobreaker.State, to gobreaker.State) {
	var value float64
	switch to {
	case gobreaker.StateHalfOpen:
		value = 1
	case gobreaker.StateOpen:
		value = 2
	}
	m.breakerState.WithLabelValues(m.service, operation).Set(value)
}
