// Package prometheus exposes the completion engine's run counters.  The
// engine is a batch tool, so the metrics are registered against an injected
// registerer and typically pushed or scraped by the embedding process.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters surfaced by a completion run.  A nil *Metrics
// is valid and records nothing, so callers can leave monitoring unwired.
type Metrics struct {
	subPathwaysGenerated prometheus.Counter
	uniquePathways       prometheus.Counter
	selectedPathways     prometheus.Counter
	emptyMasterPathways  prometheus.Counter
	runDuration          prometheus.Histogram
}

// NewMetrics registers the engine counters with reg and returns the handle.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		subPathwaysGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "completion_subpathways_generated_total",
			Help: "Sub-pathways generated across all master pathways",
		}),
		uniquePathways: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "completion_unique_pathways_total",
			Help: "Structurally-unique pathways after deduplication",
		}),
		selectedPathways: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "completion_selected_pathways_total",
			Help: "Pathways retained by the global top-K filter",
		}),
		emptyMasterPathways: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "completion_empty_master_pathways_total",
			Help: "Master pathways that produced zero sub-pathways",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "completion_run_duration_seconds",
			Help:    "Wall-clock duration of completion runs",
			Buckets: []float64{.1, .5, 1, 5, 10, 30, 60, 300, 600},
		}),
	}
	reg.MustRegister(
		m.subPathwaysGenerated,
		m.uniquePathways,
		m.selectedPathways,
		m.emptyMasterPathways,
		m.runDuration,
	)
	return m
}

// ObserveRun records the counters of one completed run.
func (m *Metrics) ObserveRun(generated, unique, selected, emptyMasters int, seconds float64) {
	if m == nil {
		return
	}
	m.subPathwaysGenerated.Add(float64(generated))
	m.uniquePathways.Add(float64(unique))
	m.selectedPathways.Add(float64(selected))
	m.emptyMasterPathways.Add(float64(emptyMasters))
	m.runDuration.Observe(seconds)
}
