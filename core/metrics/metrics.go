// Package metrics records batch outcomes in a private Prometheus registry.
// A batch job has no scrape endpoint, so the registry is written out in the
// node-exporter textfile format when the run ends.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "reviewprep"

// Outcome label values for the regions counter.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder holds the batch collectors.
type Recorder struct {
	registry *prometheus.Registry
	regions  *prometheus.CounterVec
	rows     *prometheus.CounterVec
	failures *prometheus.CounterVec
	lastRun  prometheus.Gauge
	duration prometheus.Gauge
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		regions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "regions_total",
			Help:      "Regions processed, by outcome.",
		}, []string{"outcome"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Rows seen by stage: read, written or dropped.",
		}, []string{"stage"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Region failures by error kind.",
		}, []string{"kind"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last batch finished.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last batch.",
		}),
	}
	r.registry.MustRegister(r.regions, r.rows, r.failures, r.lastRun, r.duration)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RegionSucceeded counts a processed region and its rows.
func (r *Recorder) RegionSucceeded(read, written int) {
	r.regions.WithLabelValues(OutcomeSuccess).Inc()
	r.rows.WithLabelValues("read").Add(float64(read))
	r.rows.WithLabelValues("written").Add(float64(written))
	r.rows.WithLabelValues("dropped").Add(float64(read - written))
}

// RegionChecked counts a region that went through a dry run. Only the rows
// read are recorded since nothing was written.
func (r *Recorder) RegionChecked(read int) {
	r.regions.WithLabelValues(OutcomeSuccess).Inc()
	r.rows.WithLabelValues("read").Add(float64(read))
}

// RegionFailed counts a failed region under its error kind.
func (r *Recorder) RegionFailed(kind string) {
	r.regions.WithLabelValues(OutcomeFailure).Inc()
	r.failures.WithLabelValues(kind).Inc()
}

// BatchFinished stamps the end of the run.
func (r *Recorder) BatchFinished(started, finished time.Time) {
	r.lastRun.Set(float64(finished.Unix()))
	r.duration.Set(finished.Sub(started).Seconds())
}

// WriteTextfile writes the registry to path for the textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
