package backend

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	mutations *prometheus.CounterVec
	absences  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roster",
			Name:      "mutations_total",
			Help:      "Number of handled mutations by entity, operation and outcome.",
		}, []string{"entity", "operation", "outcome"}),
		absences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roster",
			Name:      "absences_total",
			Help:      "Number of recorded absences.",
		}),
	}
	reg.MustRegister(m.mutations, m.absences)
	return m
}

func (m *metrics) observe(entity, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.mutations.WithLabelValues(entity, operation, outcome).Inc()
}
