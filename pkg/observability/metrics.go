package observability

import (
	"context"

	"github.com/aretw0/arbor/pkg/behaviour"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports tick and node statistics to Prometheus.
// Register it as a tree visitor for per-node counts and install Hooks for
// per-tick counts and durations.
type Metrics struct {
	nodeVisits   *prometheus.CounterVec
	nodeStatus   *prometheus.GaugeVec
	ticks        *prometheus.CounterVec
	tickDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		nodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_node_visits_total",
				Help: "Total number of node visits by resulting status",
			},
			[]string{"node", "status"},
		),
		nodeStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "arbor_node_status",
				Help: "Status of each node at its last visit (0 invalid, 1 running, 2 success, 3 failure)",
			},
			[]string{"node"},
		),
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_ticks_total",
				Help: "Total number of tree ticks by root status",
			},
			[]string{"root_status"},
		),
		tickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "arbor_tick_duration_seconds",
				Help:    "Duration of a full tree tick",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.nodeVisits, m.nodeStatus, m.ticks, m.tickDuration)
	}
	return m
}

func (m *Metrics) Initialise() {}

func (m *Metrics) Full() bool { return false }

// Run records one node visit.
func (m *Metrics) Run(b behaviour.Behaviour) {
	m.nodeVisits.WithLabelValues(b.Name(), b.Status().String()).Inc()
	m.nodeStatus.WithLabelValues(b.Name()).Set(float64(b.Status()))
}

// Hooks returns lifecycle hooks recording tick totals and durations.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTickEnd: func(_ context.Context, e *domain.TickEvent) {
			m.ticks.WithLabelValues(e.RootStatus.String()).Inc()
			m.tickDuration.Observe(e.Duration.Seconds())
		},
	}
}
