package pagecache

// hashIndex is a chained hash table mapping CacheKey to frame table index.
// Buckets are a fixed-size vector of head indices, sized from available
// memory by the caller; each bucket is a doubly linked list threaded
// through frame.hashPrev/hashNext so removal is O(1) given a frame index,
// without walking the chain.
//
// Callers must hold the Cache's spinlock for every method here.
type hashIndex struct {
	table   []frame
	buckets []int // bucket head index, or noFrame
}

func newHashIndex(table []frame, bucketCount int) *hashIndex {
	h := &hashIndex{table: table, buckets: make([]int, bucketCount)}
	for i := range h.buckets {
		h.buckets[i] = noFrame
	}
	return h
}

// bucketFor computes (inodeID XOR offset) mod bucketCount. Offsets are
// always page-aligned by the time they reach this layer.
func (h *hashIndex) bucketFor(key CacheKey) int {
	return int((key.InodeID ^ uint64(key.Offset)) % uint64(len(h.buckets)))
}

// lookup walks the bucket for key and returns the frame index holding it,
// or noFrame if absent.
func (h *hashIndex) lookup(key CacheKey) int {
	b := h.bucketFor(key)
	for i := h.buckets[b]; i != noFrame; i = h.table[i].hashNext {
		if h.table[i].key == key {
			return i
		}
	}
	return noFrame
}

// insert publishes frame i under key, at the head of its bucket. i must not
// already be on a hash chain.
func (h *hashIndex) insert(i int, key CacheKey) {
	f := &h.table[i]
	if f.inHash {
		panic("pagecache: insert on frame already in hash index")
	}

	b := h.bucketFor(key)
	head := h.buckets[b]

	f.key = key
	f.hashPrev = noFrame
	f.hashNext = head
	if head != noFrame {
		h.table[head].hashPrev = i
	}
	h.buckets[b] = i
	f.inHash = true
}

// remove evicts frame i from whatever bucket it is on. It is a no-op if the
// frame has no cache identity.
func (h *hashIndex) remove(i int) {
	f := &h.table[i]
	if !f.inHash {
		return
	}

	b := h.bucketFor(f.key)
	if f.hashPrev != noFrame {
		h.table[f.hashPrev].hashNext = f.hashNext
	} else {
		h.buckets[b] = f.hashNext
	}
	if f.hashNext != noFrame {
		h.table[f.hashNext].hashPrev = f.hashPrev
	}

	f.hashPrev, f.hashNext = noFrame, noFrame
	f.inHash = false
	f.key = CacheKey{}
}

// count returns the number of frames currently published in the index.
func (h *hashIndex) count() int {
	n := 0
	for b := range h.buckets {
		for i := h.buckets[b]; i != noFrame; i = h.table[i].hashNext {
			n++
		}
	}
	return n
}
