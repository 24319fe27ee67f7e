// Package metrics exposes search activity as Prometheus series.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdrpinto/gridastar"
)

// Metrics groups the collectors registered by New. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	steps    prometheus.Counter
	runs     *prometheus.CounterVec
	expanded prometheus.Histogram
	boards   prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		steps: factory.NewCounter(prometheus.CounterOpts{
			Name: "gridastar_steps_total",
			Help: "Total search steps executed",
		}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gridastar_runs_total",
			Help: "Finished searches by outcome",
		}, []string{"outcome"}),
		expanded: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridastar_expanded_nodes",
			Help:    "Nodes closed per finished search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
		boards: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gridastar_boards",
			Help: "Boards currently held by connected clients",
		}),
	}
}

// Step counts one executed step.
func (m *Metrics) Step() {
	if m == nil {
		return
	}
	m.steps.Inc()
}

// Finished records a search that reached a terminal state.
func (m *Metrics) Finished(state gridastar.State, expanded int) {
	if m == nil || !state.Terminal() {
		return
	}
	m.runs.WithLabelValues(state.String()).Inc()
	m.expanded.Observe(float64(expanded))
}

// BoardOpened and BoardClosed track live boards.
func (m *Metrics) BoardOpened() {
	if m != nil {
		m.boards.Inc()
	}
}

func (m *Metrics) BoardClosed() {
	if m != nil {
		m.boards.Dec()
	}
}
