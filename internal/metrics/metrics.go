// Package metrics records synonymize run counters in a Prometheus registry
// and writes them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "specify_synonymize"

// Recorder collects counters for a single run.
// A nil *Recorder discards everything.
type Recorder struct {
	registry   *prometheus.Registry
	records    *prometheus.GaugeVec
	intents    *prometheus.GaugeVec
	statements *prometheus.CounterVec
	duration   prometheus.Gauge
	lastRun    prometheus.Gauge
}

// NewRecorder creates a recorder backed by its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Records loaded at the start of the run, by kind.",
		}, []string{"kind"}),
		intents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "intents",
			Help:      "Intents derived by the matcher, by kind.",
		}, []string{"kind"}),
		statements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "statements_total",
			Help:      "Mutating statements executed, by kind and result.",
		}, []string{"kind", "result"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the run finished.",
		}),
	}
	r.registry.MustRegister(r.records, r.intents, r.statements, r.duration, r.lastRun)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Records sets the loaded record count for a kind (synonym, accepted, authority)
func (r *Recorder) Records(kind string, n int) {
	if r == nil {
		return
	}
	r.records.WithLabelValues(kind).Set(float64(n))
}

// Intents sets the derived intent count for a kind (accepted, synonym, link)
func (r *Recorder) Intents(kind string, n int) {
	if r == nil {
		return
	}
	r.intents.WithLabelValues(kind).Set(float64(n))
}

// Statement counts one executed statement
func (r *Recorder) Statement(kind string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.statements.WithLabelValues(kind, result).Inc()
}

// Finish records the run duration
func (r *Recorder) Finish(d time.Duration) {
	if r == nil {
		return
	}
	r.duration.Set(d.Seconds())
	r.lastRun.SetToCurrentTime()
}

// WriteTextfile writes all metrics to path in the Prometheus text format
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
