package input

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes a Metrics tracker to a prometheus registry. Values are
// read from a snapshot on every scrape.
type Collector struct {
	metrics *Metrics

	events       *prometheus.Desc
	results      *prometheus.Desc
	bytesWritten *prometheus.Desc
	errors       *prometheus.Desc
	consumed     *prometheus.Desc
	latency      *prometheus.Desc
	uptime       *prometheus.Desc
}

// NewCollector creates a collector for m. Metric names are prefixed with
// namespace.
func NewCollector(m *Metrics, namespace string) *Collector {
	name := func(n string) string {
		return prometheus.BuildFQName(namespace, "input", n)
	}
	return &Collector{
		metrics: m,
		events: prometheus.NewDesc(name("events_total"),
			"Input events resolved, by device.", []string{"device"}, nil),
		results: prometheus.NewDesc(name("results_total"),
			"Resolution results, by kind.", []string{"kind"}, nil),
		bytesWritten: prometheus.NewDesc(name("bytes_written_total"),
			"Bytes written to the controlled process.", nil, nil),
		errors: prometheus.NewDesc(name("errors_total"),
			"Delivery errors.", nil, nil),
		consumed: prometheus.NewDesc(name("hook_consumed_total"),
			"Events consumed by hooks before resolution.", nil, nil),
		latency: prometheus.NewDesc(name("latency_seconds"),
			"Recent latency, by stage and statistic.", []string{"stage", "stat"}, nil),
		uptime: prometheus.NewDesc(name("uptime_seconds"),
			"Time since the metrics were last reset.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.events
	ch <- c.results
	ch <- c.bytesWritten
	ch <- c.errors
	ch <- c.consumed
	ch <- c.latency
	ch <- c.uptime
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.metrics.Snapshot()

	counter := func(desc *prometheus.Desc, v uint64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(v), labels...)
	}
	counter(c.events, s.KeyEvents, "key")
	counter(c.events, s.MouseEvents, "mouse")
	counter(c.results, s.Actions, "action")
	counter(c.results, s.ByteResults, "bytes")
	counter(c.results, s.Selections, "selection")
	counter(c.results, s.Unhandled, "unhandled")
	counter(c.bytesWritten, s.BytesWritten)
	counter(c.errors, s.Errors)
	counter(c.consumed, s.HookConsumptions)

	gauge := func(stage, stat string, seconds float64) {
		ch <- prometheus.MustNewConstMetric(c.latency, prometheus.GaugeValue, seconds, stage, stat)
	}
	gauge("resolve", "avg", s.AvgResolveLatency.Seconds())
	gauge("resolve", "p99", s.P99ResolveLatency.Seconds())
	gauge("resolve", "peak", s.PeakResolveLatency.Seconds())
	gauge("action", "avg", s.AvgActionLatency.Seconds())
	gauge("action", "p99", s.P99ActionLatency.Seconds())
	gauge("action", "peak", s.PeakActionLatency.Seconds())

	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, s.Uptime.Seconds())
}
