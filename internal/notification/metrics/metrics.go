package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the notification dispatcher.
type Metrics struct {
	Created *prometheus.CounterVec
}

// New creates and registers the notification metrics.
func New() *Metrics {
	return &Metrics{
		Created: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "janseva_notifications_created_total",
			Help: "Notifications recorded, labelled by severity",
		}, []string{"severity"}),
	}
}

// IncCreated counts one recorded notification.
func (m *Metrics) IncCreated(severity string) {
	if m == nil {
		return
	}
	m.Created.WithLabelValues(severity).Inc()
}
