// Package export bridges recorder data into external metrics systems.
package export

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mantleflow/timing/pkg/timing"
)

// Collector exposes a recorder's aggregated hit table as Prometheus
// counters, labeled by routine, file and line. Collect reads a snapshot of
// the recorder, so it must run either after Stop or from the goroutine that
// owns the recorder.
type Collector struct {
	rec     *timing.Recorder
	hits    *prometheus.Desc
	seconds *prometheus.Desc
}

// NewCollector returns a collector over rec. Register it with a Prometheus
// registry to publish the data.
func NewCollector(rec *timing.Recorder) *Collector {
	labels := []string{"routine", "file", "line"}
	return &Collector{
		rec: rec,
		hits: prometheus.NewDesc(
			"mantleflow_api_hits_total",
			"Recorded calls per instrumented routine and call site.",
			labels, nil,
		),
		seconds: prometheus.NewDesc(
			"mantleflow_api_seconds_total",
			"Wall-clock seconds spent per instrumented routine and call site.",
			labels, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.seconds
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.rec.Snapshot("")
	for _, e := range snap.Entries {
		line := strconv.Itoa(e.Line)
		ch <- prometheus.MustNewConstMetric(
			c.hits, prometheus.CounterValue, float64(e.Count), e.Name, e.File, line)
		ch <- prometheus.MustNewConstMetric(
			c.seconds, prometheus.CounterValue, e.Total, e.Name, e.File, line)
	}
}
