package pagecache

import (
	"sync"
	"testing"
)

func TestLockFrameExcludesConcurrentAccessors(t *testing.T) {
	c := newTestCache(t, 2, 4)
	initAllFree(t, c)

	f, err := c.AllocateFrame()
	if err != nil {
		t.Fatal(err)
	}
	defer c.ReleaseFrame(f.Number)

	const n = 50
	var wg sync.WaitGroup
	counter := 0

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			c.lockFrame(f.Number)
			counter++
			c.unlockFrame(f.Number)
		}()
	}
	wg.Wait()

	if counter != n {
		t.Fatalf("counter = %d; want %d (lock should have excluded all accessors)", counter, n)
	}
}

func TestLockFrameBlocksUntilUnlocked(t *testing.T) {
	c := newTestCache(t, 2, 4)
	initAllFree(t, c)

	f, err := c.AllocateFrame()
	if err != nil {
		t.Fatal(err)
	}
	defer c.ReleaseFrame(f.Number)

	c.lockFrame(f.Number)

	acquired := make(chan struct{})
	go func() {
		c.lockFrame(f.Number)
		close(acquired)
		c.unlockFrame(f.Number)
	}()

	select {
	case <-acquired:
		t.Fatal("second lockFrame should not have acquired while held")
	default:
	}

	c.unlockFrame(f.Number)

	select {
	case <-acquired:
	case <-timeoutChan():
		t.Fatal("second lockFrame was never granted after unlock")
	}
}
