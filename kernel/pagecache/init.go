package pagecache

// MemoryMap answers whether a physical address the firmware reported is
// usable RAM, standing in for the BIOS/firmware memory map.
type MemoryMap interface {
	Usable(addr int64) bool
}

// InitConfig supplies the boot-time parameters the frame table is walked
// with.
type InitConfig struct {
	// FrameBase is the physical address of frame 0.
	FrameBase int64

	// KernelEntry and KernelEnd bound the kernel image span
	// [KernelEntry, KernelEnd); frames inside it are kernel-reserved.
	KernelEntry, KernelEnd int64

	// Map reports which physical addresses the firmware memory map lists
	// as usable; frames outside the kernel image that Map rejects are
	// physical-reserved.
	Map MemoryMap
}

// Init walks the frame table by frame number, classifying each as
// kernel-reserved, physical-reserved, or free, and snapshots total_pages
// from the resulting free_pages count. Frames here are
// already zeroed and reserved by NewCache, matching "hash buckets and
// descriptor fields are zeroed before the loop"; Init only has to flip the
// ones that turn out to be free.
//
// Usable frames are tail-inserted into the free list in ascending frame
// order (mirroring the original kernel's page_init, which always links a
// newly discovered free frame in just before the list head rather than
// promoting it), so the free list starts out ordered by frame number and
// the first frames handed out by AllocateFrame are the lowest-numbered
// ones.
func (c *Cache) Init(cfg InitConfig) {
	c.mask()
	defer c.unmask()

	for i := range c.table {
		addr := cfg.FrameBase + int64(i)*int64(PageSize)
		f := &c.table[i]

		switch {
		case addr >= cfg.KernelEntry && addr < cfg.KernelEnd:
			f.reserved = true
			c.kernelReservedPages++
		case !cfg.Map.Usable(addr):
			f.reserved = true
			c.physicalReservedPages++
		default:
			f.reserved = false
			f.data = make([]byte, PageSize)
			c.freeList.pushTail(i)
		}
	}

	c.totalPages = c.freeList.length
	c.log.Warnf("page cache initialized: %d total, %d free, %d kernel-reserved, %d physical-reserved",
		c.totalPages, c.freeList.length, c.kernelReservedPages, c.physicalReservedPages)
}
