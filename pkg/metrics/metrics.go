// Package metrics records policy decisions as prometheus metrics.
package metrics

import (
	"time"

	"github.com/olimci/depcat/pkg/policy"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns a private registry, so metrics from one run never leak into
// another. A nil *Recorder discards everything.
type Recorder struct {
	registry *prometheus.Registry

	decisions       *prometheus.CounterVec
	manifestEntries prometheus.Gauge
	checkDuration   prometheus.Histogram
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depcat_decisions_total",
				Help: "Number of dependency requests resolved, by decision and strictness.",
			},
			[]string{"decision", "strictness"},
		),
		manifestEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "depcat_manifest_entries",
				Help: "Number of coordinates in the last manifest loaded.",
			},
		),
		checkDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "depcat_check_duration_seconds",
				Help:    "Time taken to check a workspace against the manifest.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	r.registry.MustRegister(r.decisions, r.manifestEntries, r.checkDuration)

	// Pre-create every series so absent decisions export as 0.
	for _, kind := range []policy.Kind{policy.Accept, policy.Reject, policy.Warn} {
		for _, level := range []policy.Strictness{policy.Strict, policy.Loosely, policy.Loose} {
			r.decisions.WithLabelValues(kind.String(), level.String())
		}
	}

	return r
}

func (r *Recorder) ObserveDecision(d policy.Decision, level policy.Strictness) {
	if r == nil {
		return
	}
	r.decisions.WithLabelValues(d.Kind.String(), level.String()).Inc()
}

func (r *Recorder) SetManifestEntries(n int) {
	if r == nil {
		return
	}
	r.manifestEntries.Set(float64(n))
}

func (r *Recorder) ObserveCheck(d time.Duration) {
	if r == nil {
		return
	}
	r.checkDuration.Observe(d.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node exporter's textfile collector. The write is atomic.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
