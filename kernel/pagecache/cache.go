package pagecache

import (
	"pagecore/kernel/blockio"
	"pagecore/kernel/kfmt"
	"pagecore/kernel/mem"
	"pagecore/kernel/sched"
)

// DefaultFreeWatermark is the hysteresis threshold: after a release pushes
// free_pages past this count, blocked allocators are woken. Picking a
// small constant fraction avoids thrashing where a single woken allocator
// immediately re-exhausts the list.
const DefaultFreeWatermark = 4

// Config controls the shape of a Cache at construction time.
type Config struct {
	// FrameCount is the total number of frames in the table. Required.
	FrameCount int

	// BucketCount is the number of hash buckets. Required; should be
	// sized from FrameCount and available memory.
	BucketCount int

	// FreeWatermark overrides DefaultFreeWatermark when non-zero.
	FreeWatermark int

	// Logger receives out-of-memory and initialization diagnostics. If
	// nil, kfmt.Stderr is used.
	Logger kfmt.Logger

	// BufferCache is consulted by FillForRead for dirty-buffer lookups
	// and read-through buffers. Required.
	BufferCache blockio.BufferCache
}

// Cache owns the physical frame table, free list, hash index, and the
// statistics counters. Every exported method masks the same
// single lock for its list/counter edits, mirroring a real kernel's
// system-wide interrupt masking: the mask is not scoped per free-list or
// per-bucket because the original primitive it models isn't either.
//
// That same lock is reused as the sleep/wakeup rendezvous point (via
// kernel/sched.WaitQueue, which requires a sync.Locker for its
// sync.Cond): this is what makes the check-predicate-then-sleep sequence in
// AllocateFrame and lockFrame atomic with respect to a concurrent Wakeup,
// the same atomicity interrupt masking buys the original kernel around
// sleep_on.
type Cache struct {
	wq *sched.WaitQueue

	table     []frame
	freeList  *freeList
	hashIndex *hashIndex

	freeWatermark int
	totalPages    int

	kernelReservedPages   int
	physicalReservedPages int

	oomEvents  uint64
	evictCount uint64

	log         kfmt.Logger
	bufferCache blockio.BufferCache
}

// NewCache allocates an empty Cache with cfg.FrameCount frames, all
// reserved and with no data bytes. Call Init to populate the table from a
// memory map before using the cache.
func NewCache(cfg Config) *Cache {
	if cfg.FrameCount <= 0 {
		panic("pagecache: FrameCount must be positive")
	}
	if cfg.BucketCount <= 0 {
		panic("pagecache: BucketCount must be positive")
	}
	if cfg.BufferCache == nil {
		panic("pagecache: BufferCache is required")
	}

	watermark := cfg.FreeWatermark
	if watermark == 0 {
		watermark = DefaultFreeWatermark
	}

	logger := cfg.Logger
	if logger == nil {
		logger = kfmt.Stderr
	}

	table := make([]frame, cfg.FrameCount)
	for i := range table {
		table[i] = frame{
			number:   i,
			reserved: true,
			freePrev: noFrame,
			freeNext: noFrame,
			hashPrev: noFrame,
			hashNext: noFrame,
		}
	}

	return &Cache{
		wq:            sched.New(),
		table:         table,
		freeList:      newFreeList(table),
		hashIndex:     newHashIndex(table, cfg.BucketCount),
		freeWatermark: watermark,
		log:           logger,
		bufferCache:   cfg.BufferCache,
	}
}

// PageSize is the frame size every Cache operates in.
const PageSize = int(mem.PageSize)

// ValidFrame reports whether n is a frame number within this cache's table.
func (c *Cache) ValidFrame(n int) bool {
	return n >= 0 && n < len(c.table)
}

func (c *Cache) frameAt(n int) *frame {
	if !c.ValidFrame(n) {
		panic("pagecache: invalid frame number")
	}
	return &c.table[n]
}

func (c *Cache) toFrame(i int) Frame {
	f := &c.table[i]
	return Frame{Number: f.number, Data: f.data}
}
