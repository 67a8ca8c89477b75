package pagecache

// mask and unmask bracket every critical section that edits free-list,
// hash-chain, or counter state — the Go reading of "save flags, disable
// interrupts, restore flags". They alias the Cache's wait queue lock
// directly since that lock also serves as the sync.Cond locker Sleep/Wakeup
// use; see the Cache doc comment.
func (c *Cache) mask() {
	c.wq.Lock()
}

func (c *Cache) unmask() {
	c.wq.Unlock()
}

// lockFrame acquires frame i's busy lock: under the mask, if busy, sleep
// uninterruptibly and retry on wake; otherwise set the flag and return.
// Callers must call unlockFrame when done. The caller must NOT already hold
// the mask.
func (c *Cache) lockFrame(i int) {
	c.mask()
	defer c.unmask()

	f := &c.table[i]
	for f.busy {
		c.wq.Sleep()
	}
	f.busy = true
}

// unlockFrame releases frame i's busy lock and wakes every sleeper waiting
// on any condition this Cache's wait queue serves. Since this Cache shares
// one wait queue across every busy frame and the allocator, a broadcast
// wakes more goroutines than a per-address wakeup would; each re-checks its
// own predicate under the mask after waking, so the extra wakeups only cost
// a little spurious work, never correctness.
func (c *Cache) unlockFrame(i int) {
	c.mask()
	f := &c.table[i]
	f.busy = false
	c.unmask()
	c.wq.Wakeup()
}
