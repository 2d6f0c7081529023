package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the simulator.
type Metrics struct {
	Simulations      *prometheus.CounterVec // labels: kind={single,batch}
	ImpactEnergyTons prometheus.Histogram
	TsunamiTriggered prometheus.Counter

	RequestDuration *prometheus.HistogramVec // labels: route
	CatalogSize     prometheus.Gauge
}

// NewMetrics creates and registers all simulator metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Simulations,
		m.ImpactEnergyTons,
		m.TsunamiTriggered,
		m.RequestDuration,
		m.CatalogSize,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "simulations_total",
			Help:      "Impact estimates computed, by request kind.",
		}, []string{"kind"}),
		ImpactEnergyTons: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "impact_sim",
			Name:      "impact_energy_tnt_tons",
			Help:      "TNT-equivalent tonnage of simulated impacts.",
			Buckets:   prometheus.ExponentialBuckets(1e3, 10, 10),
		}),
		TsunamiTriggered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impact_sim",
			Name:      "tsunami_triggered_total",
			Help:      "Simulations whose impact location generated a tsunami.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "impact_sim",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by route.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route"}),
		CatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "impact_sim",
			Name:      "catalog_size",
			Help:      "Asteroids currently in the catalog.",
		}),
	}
}
