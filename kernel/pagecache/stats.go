package pagecache

import "pagecore/kernel/mem"

// Stats is a point-in-time snapshot of the cache's counters, exposed to
// clients directly and, via metrics.Collector, to Prometheus.
type Stats struct {
	FreePages             int
	CachedKiB             uint64
	KernelReservedKiB     uint64
	PhysicalReservedKiB   uint64
	TotalPages            int
	OutOfMemoryEvents     uint64
	EvictionEvents        uint64
}

// pagesToKiB mirrors the original kernel's "<<= 2" unit conversion for a
// 4 KiB page size: pages * (page size / 1024).
func pagesToKiB(pages int) uint64 {
	return uint64(pages) * mem.PageSize.KiB()
}

// Stats snapshots the cache's counters. Reading them takes the same mask
// used for list/counter edits so the snapshot is internally consistent.
func (c *Cache) Stats() Stats {
	c.mask()
	defer c.unmask()

	return Stats{
		FreePages:           c.freeList.length,
		CachedKiB:           pagesToKiB(c.hashIndex.count()),
		KernelReservedKiB:   pagesToKiB(c.kernelReservedPages),
		PhysicalReservedKiB: pagesToKiB(c.physicalReservedPages),
		TotalPages:          c.totalPages,
		OutOfMemoryEvents:   c.oomEvents,
		EvictionEvents:      c.evictCount,
	}
}
