package fire

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the combustion counters exported on /metrics.
type Metrics struct {
	ignitions     *prometheus.CounterVec
	burnedOut     prometheus.Counter
	heatTransfers prometheus.Counter
	burning       prometheus.Gauge
	tickSeconds   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ignitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fire",
			Name:      "ignitions_total",
			Help:      "Entities that started burning, by cause.",
		}, []string{"cause"}),
		burnedOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fire",
			Name:      "burned_out_total",
			Help:      "Entities destroyed after burning for their full duration.",
		}),
		heatTransfers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fire",
			Name:      "heat_transfers_total",
			Help:      "Heat deltas applied to unignited neighbours.",
		}),
		burning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fire",
			Name:      "burning_entities",
			Help:      "Entities on fire at the end of the last tick.",
		}),
		tickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fire",
			Name:      "tick_seconds",
			Help:      "Wall time spent in one combustion tick.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	reg.MustRegister(m.ignitions, m.burnedOut, m.heatTransfers, m.burning, m.tickSeconds)
	return m
}
