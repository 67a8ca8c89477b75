// Package metrics exposes a pagecache.Cache's statistics as Prometheus
// metrics, grounded on talyz-systemd_exporter's systemd.Collector
// (prometheus.NewDesc/MustNewConstMetric, a Describe/Collect pair over a
// fixed set of *prometheus.Desc fields).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"pagecore/kernel/pagecache"
)

const namespace = "pagecache"

// Collector adapts a *pagecache.Cache into a prometheus.Collector,
// exposing its allocation and residency statistics as gauges plus two
// counters for out-of-memory and eviction events.
type Collector struct {
	cache *pagecache.Cache

	freePages           *prometheus.Desc
	cachedKiB           *prometheus.Desc
	kernelReservedKiB   *prometheus.Desc
	physicalReservedKiB *prometheus.Desc
	totalPages          *prometheus.Desc
	oomTotal            *prometheus.Desc
	evictionsTotal      *prometheus.Desc
}

// NewCollector returns a Collector wrapping cache.
func NewCollector(cache *pagecache.Cache) *Collector {
	return &Collector{
		cache: cache,
		freePages: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "free_pages"),
			"Number of frames currently on the free list.", nil, nil,
		),
		cachedKiB: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "cached_kib"),
			"KiB of frames currently published in the hash index.", nil, nil,
		),
		kernelReservedKiB: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "kernel_reserved_kib"),
			"KiB of frames reserved for the kernel image.", nil, nil,
		),
		physicalReservedKiB: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "physical_reserved_kib"),
			"KiB of frames reserved by the firmware memory map.", nil, nil,
		),
		totalPages: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "total_pages"),
			"Number of usable (non-reserved) frames counted at initialization.", nil, nil,
		),
		oomTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "oom_total"),
			"Number of times AllocateFrame found the free list still empty after a reclaim wait.", nil, nil,
		),
		evictionsTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "evictions_total"),
			"Number of times AllocateFrame evicted a frame's cache identity to reuse it.", nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.freePages
	ch <- c.cachedKiB
	ch <- c.kernelReservedKiB
	ch <- c.physicalReservedKiB
	ch <- c.totalPages
	ch <- c.oomTotal
	ch <- c.evictionsTotal
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.cache.Stats()

	ch <- prometheus.MustNewConstMetric(c.freePages, prometheus.GaugeValue, float64(stats.FreePages))
	ch <- prometheus.MustNewConstMetric(c.cachedKiB, prometheus.GaugeValue, float64(stats.CachedKiB))
	ch <- prometheus.MustNewConstMetric(c.kernelReservedKiB, prometheus.GaugeValue, float64(stats.KernelReservedKiB))
	ch <- prometheus.MustNewConstMetric(c.physicalReservedKiB, prometheus.GaugeValue, float64(stats.PhysicalReservedKiB))
	ch <- prometheus.MustNewConstMetric(c.totalPages, prometheus.GaugeValue, float64(stats.TotalPages))
	ch <- prometheus.MustNewConstMetric(c.oomTotal, prometheus.CounterValue, float64(stats.OutOfMemoryEvents))
	ch <- prometheus.MustNewConstMetric(c.evictionsTotal, prometheus.CounterValue, float64(stats.EvictionEvents))
}
