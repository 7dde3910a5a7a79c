package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CheckinsTotal     prometheus.Counter
	CheckinsRejected  prometheus.Counter
	AuthFailuresTotal prometheus.Counter
}

// New registers the counters on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the counters on the given registerer; tests pass a fresh
// registry to avoid duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CheckinsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "tally_checkins_total",
			Help: "Total number of accepted check-ins",
		}),
		CheckinsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "tally_checkins_rejected_total",
			Help: "Total number of check-ins rejected by the cooldown gate",
		}),
		AuthFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "tally_auth_failures_total",
			Help: "Total number of failed dashboard login attempts",
		}),
	}
}

func (m *Metrics) IncrementCheckins() {
	m.CheckinsTotal.Inc()
}

func (m *Metrics) IncrementRejected() {
	m.CheckinsRejected.Inc()
}

func (m *Metrics) IncrementAuthFailures() {
	m.AuthFailuresTotal.Inc()
}
