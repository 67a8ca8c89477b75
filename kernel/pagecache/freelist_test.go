package pagecache

import "testing"

func newTestTable(n int) []frame {
	table := make([]frame, n)
	for i := range table {
		table[i] = frame{number: i, freePrev: noFrame, freeNext: noFrame, hashPrev: noFrame, hashNext: noFrame}
	}
	return table
}

func TestFreeListEmptyInitially(t *testing.T) {
	l := newFreeList(newTestTable(4))
	if !l.empty() {
		t.Fatal("expected new free list to be empty")
	}
}

func TestFreeListPushHeadOrdering(t *testing.T) {
	table := newTestTable(4)
	l := newFreeList(table)

	l.pushHead(0)
	l.pushHead(1)
	l.pushHead(2)

	if l.headIdx != 2 {
		t.Fatalf("expected frame 2 at head, got %d", l.headIdx)
	}
	if l.length != 3 {
		t.Fatalf("length = %d; want 3", l.length)
	}
}

func TestFreeListPushTailKeepsHead(t *testing.T) {
	table := newTestTable(4)
	l := newFreeList(table)

	l.pushHead(0)
	l.pushTail(1)
	l.pushTail(2)

	if l.headIdx != 0 {
		t.Fatalf("expected frame 0 to remain at head, got %d", l.headIdx)
	}
	if l.length != 3 {
		t.Fatalf("length = %d; want 3", l.length)
	}
}

func TestFreeListPopHeadRemovesAndReturnsHead(t *testing.T) {
	table := newTestTable(4)
	l := newFreeList(table)

	l.pushTail(0)
	l.pushTail(1)
	l.pushTail(2)

	got := l.popHead()
	if got != 0 {
		t.Fatalf("popHead() = %d; want 0", got)
	}
	if l.length != 2 {
		t.Fatalf("length after pop = %d; want 2", l.length)
	}
	if table[0].onFreeList {
		t.Fatal("popped frame should no longer be marked onFreeList")
	}
}

func TestFreeListRemoveSoleElementEmptiesList(t *testing.T) {
	table := newTestTable(4)
	l := newFreeList(table)

	l.pushHead(0)
	l.remove(0)

	if !l.empty() {
		t.Fatal("expected list to be empty after removing sole element")
	}
}

func TestFreeListRemoveMiddleElement(t *testing.T) {
	table := newTestTable(4)
	l := newFreeList(table)

	l.pushTail(0)
	l.pushTail(1)
	l.pushTail(2)

	l.remove(1)

	if l.length != 2 {
		t.Fatalf("length = %d; want 2", l.length)
	}
	if table[1].onFreeList {
		t.Fatal("removed frame should not be marked onFreeList")
	}

	// walk the remaining ring and confirm frame 1 is gone
	seen := map[int]bool{}
	cur := l.headIdx
	for i := 0; i < l.length; i++ {
		seen[cur] = true
		cur = table[cur].freeNext
	}
	if seen[1] {
		t.Fatal("frame 1 still reachable from the list")
	}
	if !seen[0] || !seen[2] {
		t.Fatal("expected frames 0 and 2 to remain reachable")
	}
}

func TestFreeListRemoveNotOnListIsNoop(t *testing.T) {
	table := newTestTable(4)
	l := newFreeList(table)
	l.pushHead(0)

	l.remove(1) // 1 was never inserted

	if l.length != 1 {
		t.Fatalf("length = %d; want 1", l.length)
	}
}

func TestFreeListCircularity(t *testing.T) {
	table := newTestTable(3)
	l := newFreeList(table)

	l.pushTail(0)
	l.pushTail(1)
	l.pushTail(2)

	head := l.headIdx
	tail := table[head].freePrev
	if table[tail].freeNext != head {
		t.Fatal("list is not circular: tail.next should wrap to head")
	}
}
