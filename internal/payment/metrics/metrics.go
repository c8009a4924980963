package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the settlement simulator.
type Metrics struct {
	Initiated   prometheus.Counter
	Settlements *prometheus.CounterVec
	Retries     prometheus.Counter
}

// New creates and registers the settlement metrics.
func New() *Metrics {
	return &Metrics{
		Initiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "janseva_payments_initiated_total",
			Help: "Payments initiated for approved applications",
		}),
		Settlements: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "janseva_payment_settlements_total",
			Help: "Settlement attempts resolved, labelled by outcome",
		}, []string{"outcome"}),
		Retries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "janseva_payment_retries_total",
			Help: "Failed payments moved back to processing",
		}),
	}
}

// IncInitiated counts one initiated payment.
func (m *Metrics) IncInitiated() {
	if m == nil {
		return
	}
	m.Initiated.Inc()
}

// IncSettlement counts one resolved settlement attempt.
func (m *Metrics) IncSettlement(outcome string) {
	if m == nil {
		return
	}
	m.Settlements.WithLabelValues(outcome).Inc()
}

// IncRetry counts one retry.
func (m *Metrics) IncRetry() {
	if m == nil {
		return
	}
	m.Retries.Inc()
}
