package pagecache

// AllocateFrame hands out a free frame with a loan count of one. While the
// free list is empty it wakes the (notional) reclaimer and sleeps
// uninterruptibly on the cache's wait queue; on wake it re-checks once. If
// the list is still empty, it logs an out-of-memory diagnostic and returns
// ErrOutOfMemory rather than retrying forever — there is no OOM killer here
// to escalate to.
func (c *Cache) AllocateFrame() (Frame, error) {
	c.mask()

	if c.freeList.empty() {
		c.wakeReclaimer()
		c.wq.Sleep()

		if c.freeList.empty() {
			c.oomEvents++
			c.unmask()
			c.log.Warnf("allocate_frame: out of memory, %d frames total", c.totalPages)
			return Frame{}, ErrOutOfMemory
		}
	}

	i := c.freeList.popHead()
	f := &c.table[i]
	if f.inHash {
		c.hashIndex.remove(i)
		c.evictCount++
	}

	f.loanCount = 1
	f.key = CacheKey{}

	c.unmask()
	return c.toFrame(i), nil
}

// wakeReclaimer stands in for waking a reclaimer task. This subsystem has
// no reclaimer of its own (buffer-cache writeback and swap-out live
// elsewhere), so there is nothing to actually notify; it exists as a named
// call site for where that notification would go, and is not itself an
// out-of-memory event — only the declare-OOM branch in AllocateFrame counts
// as one.
func (c *Cache) wakeReclaimer() {}

// LookupCached resurrects a reclaimable frame on a cache hit without I/O and
// without disturbing hash membership. If the frame was sitting on the free
// list (loan count zero), it is pulled off before the loan count is
// incremented; both that check and AllocateFrame's popHead run under the
// same mask, so a concurrent allocation can never steal a frame this call is
// about to resurrect.
func (c *Cache) LookupCached(inodeID uint64, offset int64) (Frame, bool) {
	c.mask()
	defer c.unmask()

	i := c.hashIndex.lookup(CacheKey{InodeID: inodeID, Offset: offset})
	if i == noFrame {
		return Frame{}, false
	}

	f := &c.table[i]
	if f.loanCount == 0 {
		c.freeList.remove(i)
	}
	f.loanCount++
	return c.toFrame(i), true
}

// ReleaseFrame decrements the loan count; at zero the frame rejoins the
// free list, head-inserted if it carries no cache identity (hot and reused
// immediately) or tail-inserted if it does (reclaimed only once truly free
// frames run out). Once free_pages crosses FreeWatermark, blocked
// allocators are woken outside the mask to avoid thrashing a single waiter
// back to sleep immediately.
func (c *Cache) ReleaseFrame(n int) {
	if !c.ValidFrame(n) {
		panic("pagecache: release of invalid frame number")
	}

	c.mask()
	f := &c.table[n]
	f.loanCount--
	if f.loanCount < 0 {
		c.unmask()
		panic("pagecache: release of frame with zero loan count")
	}
	if f.loanCount > 0 {
		c.unmask()
		return
	}

	if f.key.cached() {
		c.freeList.pushTail(n)
	} else {
		c.freeList.pushHead(n)
	}
	crossedWatermark := c.freeList.length > c.freeWatermark
	c.unmask()

	if crossedWatermark {
		c.wq.Wakeup()
	}
}

// EvictForInode removes every frame currently cached under inodeID from the
// hash index without otherwise disturbing their free-list membership. A
// frame's cache identity is a weak back-reference, not a strong one: it
// never keeps an inode alive, so an inode must be able to demand eviction
// of its cached frames before the last strong reference to it is dropped.
func (c *Cache) EvictForInode(inodeID uint64) {
	c.mask()
	defer c.unmask()

	for i := range c.table {
		f := &c.table[i]
		if f.inHash && f.key.InodeID == inodeID {
			c.hashIndex.remove(i)
		}
	}
}
