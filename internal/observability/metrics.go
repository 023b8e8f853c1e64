package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "temperature_heatmap"

// Metrics holds the Prometheus collectors for one fetch-and-render run.
type Metrics struct {
	FetchDuration prometheus.Histogram
	FetchErrors   *prometheus.CounterVec // labels: kind={transport,status,decode,invalid}
	RecordsLoaded prometheus.Gauge

	RenderDuration prometheus.Histogram
	CellsRendered  prometheus.Gauge
	LastSuccess    prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the dataset request, including body decode.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Dataset fetch failures by kind.",
		}, []string{"kind"}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Monthly records in the last successfully loaded dataset.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of chart layout plus page serialisation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		CellsRendered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cells_rendered",
			Help:      "Heat-map cells written to the last page.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last page written.",
		}),
	}
}

// Collectors returns every collector in m, for registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.FetchDuration,
		m.FetchErrors,
		m.RecordsLoaded,
		m.RenderDuration,
		m.CellsRendered,
		m.LastSuccess,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.Collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// WriteTextfile writes everything g gathers to path in the Prometheus text
// format, for the node_exporter textfile collector. The write is atomic.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
