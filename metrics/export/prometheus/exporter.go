package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/credgate/credgate"
	"github.com/credgate/credgate/metrics/export/internaldefs"
)

type metricsSource interface {
	MetricsSnapshot() credgate.MetricsSnapshot
}

// Collector adapts pipeline metrics to the prometheus.Collector interface.
// Every scrape takes one snapshot and renders it as const metrics.
type Collector struct {
	source       metricsSource
	counterDescs map[credgate.MetricID]*prometheus.Desc
	histDescs    map[credgate.MetricID]*prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector builds a collector reading from source, typically a
// *credgate.Pipeline.
func NewCollector(source metricsSource) *Collector {
	c := &Collector{
		source:       source,
		counterDescs: make(map[credgate.MetricID]*prometheus.Desc, len(internaldefs.CounterDefs)),
		histDescs:    make(map[credgate.MetricID]*prometheus.Desc, len(internaldefs.HistogramDefs)),
	}
	for _, def := range internaldefs.CounterDefs {
		c.counterDescs[def.ID] = prometheus.NewDesc(def.Name, def.Help, nil, nil)
	}
	for _, def := range internaldefs.HistogramDefs {
		c.histDescs[def.ID] = prometheus.NewDesc(def.Name, def.Help, nil, nil)
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, def := range internaldefs.CounterDefs {
		ch <- c.counterDescs[def.ID]
	}
	for _, def := range internaldefs.HistogramDefs {
		ch <- c.histDescs[def.ID]
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c == nil || c.source == nil {
		return
	}

	snapshot := c.source.MetricsSnapshot()

	for _, def := range internaldefs.CounterDefs {
		ch <- prometheus.MustNewConstMetric(
			c.counterDescs[def.ID],
			prometheus.CounterValue,
			float64(snapshot.Counters[def.ID]),
		)
	}

	for _, def := range internaldefs.HistogramDefs {
		cumulative := internaldefs.CumulativeBuckets(
			internaldefs.NormalizeBuckets(snapshot.Histograms[def.ID]),
		)

		buckets := make(map[float64]uint64, len(internaldefs.HistogramUpperBounds))
		for i, bound := range internaldefs.HistogramUpperBounds {
			buckets[bound] = cumulative[i]
		}
		count := cumulative[len(cumulative)-1]

		// Sum is not tracked in core snapshots; exposed as zero.
		ch <- prometheus.MustNewConstHistogram(c.histDescs[def.ID], count, 0, buckets)
	}
}

// Handler registers the collector in a fresh registry and returns the scrape
// endpoint for it.
func Handler(source metricsSource) (http.Handler, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(NewCollector(source)); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}
