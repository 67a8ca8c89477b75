package pagecache

// freeList is a circular doubly linked list of reclaimable frames, threaded
// through frame.freePrev/freeNext indices rather than heap-allocated nodes:
// frames never move once the table is allocated, so index-based links are
// both safe and cheap. headIdx is noFrame when the list is empty; otherwise
// it names the next frame AllocateFrame will hand out.
//
// Callers must hold the Cache's spinlock for every method here: these
// mutate shared pointer state and are the Go analogue of the
// interrupt-masked list surgery against a fixed-size frame table.
type freeList struct {
	table   []frame
	headIdx int
	length  int
}

func newFreeList(table []frame) *freeList {
	return &freeList{table: table, headIdx: noFrame}
}

func (l *freeList) empty() bool {
	return l.headIdx == noFrame
}

// pushHead inserts frame i at the head of the list: used when a frame is
// released with no cache identity, so a fresh anonymous frame is handed out
// again immediately (MRU over anonymous frames).
func (l *freeList) pushHead(i int) {
	f := &l.table[i]
	if l.empty() {
		f.freePrev, f.freeNext = i, i
		l.headIdx = i
	} else {
		head := l.headIdx
		tail := l.table[head].freePrev

		f.freeNext = head
		f.freePrev = tail
		l.table[tail].freeNext = i
		l.table[head].freePrev = i
		l.headIdx = i
	}
	f.onFreeList = true
	l.length++
}

// pushTail inserts frame i at the tail of the list: used when a frame is
// released still holding a cache identity, so cached content is reclaimed
// only after the truly free frames are exhausted (LRU over cached frames).
func (l *freeList) pushTail(i int) {
	if l.empty() {
		l.pushHead(i)
		return
	}
	head := l.headIdx
	tail := l.table[head].freePrev
	f := &l.table[i]

	f.freeNext = head
	f.freePrev = tail
	l.table[tail].freeNext = i
	l.table[head].freePrev = i
	f.onFreeList = true
	l.length++
}

// popHead removes and returns the frame at the head of the list. Callers
// must check empty() first; popHead panics on an empty list since every
// caller in this package already serializes on the emptiness predicate.
func (l *freeList) popHead() int {
	if l.empty() {
		panic("pagecache: popHead on empty free list")
	}
	i := l.headIdx
	l.remove(i)
	return i
}

// remove unlinks frame i from the list. It is a no-op if the frame is not
// currently on the list.
func (l *freeList) remove(i int) {
	f := &l.table[i]
	if !f.onFreeList {
		return
	}

	if f.freeNext == i {
		// sole element
		l.headIdx = noFrame
	} else {
		l.table[f.freePrev].freeNext = f.freeNext
		l.table[f.freeNext].freePrev = f.freePrev
		if l.headIdx == i {
			l.headIdx = f.freeNext
		}
	}

	f.freePrev, f.freeNext = noFrame, noFrame
	f.onFreeList = false
	l.length--
}
