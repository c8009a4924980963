package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the application lifecycle.
type Metrics struct {
	Submitted   prometheus.Counter
	Transitions *prometheus.CounterVec
}

// New creates and registers the lifecycle metrics.
func New() *Metrics {
	return &Metrics{
		Submitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "janseva_applications_submitted_total",
			Help: "Applications submitted by citizens",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "janseva_application_transitions_total",
			Help: "Lifecycle transitions applied, labelled by target status",
		}, []string{"status"}),
	}
}

// IncSubmitted counts one submission.
func (m *Metrics) IncSubmitted() {
	if m == nil {
		return
	}
	m.Submitted.Inc()
}

// IncTransition counts one applied transition.
func (m *Metrics) IncTransition(status string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(status).Inc()
}
