package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type CensusMetrics struct {
	service string

	reloadTotal     *prometheus.CounterVec
	districtsLoaded prometheus.Gauge
	lastSuccess     prometheus.Gauge
}

func NewCensusMetrics(service string, registerer prometheus.Registerer) *CensusMetrics {
	reloadTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "census",
			Name:      "reloads_total",
			Help:      "Census table reloads by status.",
		},
		[]string{"service", "status"},
	)
	districtsLoaded := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "census",
			Name:      "districts_loaded",
			Help:      "Districts in the active census table.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	lastSuccess := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "census",
			Name:      "last_reload_success_timestamp_seconds",
			Help:      "Unix time of the last successful reload.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registerer.MustRegister(reloadTotal, districtsLoaded, lastSuccess)

	return &CensusMetrics{
		service:         service,
		reloadTotal:     reloadTotal,
		districtsLoaded: districtsLoaded,
		lastSuccess:     lastSuccess,
	}
}

// ObserveCensusReload leaves the districts gauge alone on failure since the
// previous table stays active.
func (m *CensusMetrics) ObserveCensusReload(districts int, err error) {
	if err != nil {
		m.reloadTotal.WithLabelValues(m.service, "error").Inc()
		return
	}
	m.reloadTotal.WithLabelValues(m.service, "success").Inc()
	m.districtsLoaded.Set(float64(districts))
	m.lastSuccess.Set(float64(time.Now().Unix()))
}
