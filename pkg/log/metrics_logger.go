package log

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsLogger counts collection events in Prometheus counters.
type MetricsLogger struct {
	events  *prometheus.CounterVec
	lookups *prometheus.CounterVec
}

// NewMetricsLogger creates a MetricsLogger and registers its collectors
// with reg.
func NewMetricsLogger(reg prometheus.Registerer) (*MetricsLogger, error) {
	m := &MetricsLogger{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "subscriber",
			Name:      "events_total",
			Help:      "Collection events by kind.",
		}, []string{"kind"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "subscriber",
			Name:      "lookups_total",
			Help:      "Identity lookups by result.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{m.events, m.lookups} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Log increments the counters matching the event.
func (m *MetricsLogger) Log(event Event) {
	m.events.WithLabelValues(event.Kind.String()).Inc()

	if event.Kind == KindLookup {
		result := "miss"
		if event.Matched {
			result = "hit"
		}
		m.lookups.WithLabelValues(result).Inc()
	}
}

// Compile-time interface satisfaction check.
var _ Logger = (*MetricsLogger)(nil)
