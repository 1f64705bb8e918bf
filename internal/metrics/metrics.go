// Package metrics exposes per-run pipeline counters on a private
// Prometheus registry. A CLI run can dump the registry in node_exporter
// textfile format; nothing here starts an HTTP listener.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "snpscan"

// Metrics is safe for concurrent use. A nil *Metrics is a valid no-op.
type Metrics struct {
	reg *prometheus.Registry

	stageItems    *prometheus.GaugeVec
	stageDuration *prometheus.HistogramVec
	sources       *prometheus.CounterVec
	runs          *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		stageItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_items",
			Help:      "Items produced by each pipeline stage in the last run",
		}, []string{"stage"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"stage"}),
		sources: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "sources_total",
			Help:      "Input sources processed by kind and outcome",
		}, []string{"kind", "status"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome",
		}, []string{"status"}),
	}
	m.reg.MustRegister(m.stageItems, m.stageDuration, m.sources, m.runs)
	return m
}

// Registry returns the underlying registry (for tests and exporters).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// ObserveStage records a stage's output size and duration.
func (m *Metrics) ObserveStage(stage string, items int, d time.Duration) {
	if m == nil {
		return
	}
	m.stageItems.WithLabelValues(stage).Set(float64(items))
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Source counts one input source; status is "ok" or "failed".
func (m *Metrics) Source(kind, status string) {
	if m == nil {
		return
	}
	m.sources.WithLabelValues(kind, status).Inc()
}

// Run counts one pipeline run; status is "ok", "empty" or "error".
func (m *Metrics) Run(status string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
}

// WriteTextfile dumps the registry for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.reg)
}
