// Package sync provides the mutual-exclusion primitive used to model the
// "mask interrupts" critical sections that the page cache core performs
// around free-list, hash-chain, and counter edits.
//
// The original kernel this subsystem is modeled on runs on a single CPU and
// protects these sections by disabling interrupts for their (short)
// duration. Since this repository runs on the regular Go scheduler across
// any number of OS threads, that primitive is represented instead by a
// Spinlock: a short spinlock around each list or counter edit.
package sync

import (
	"runtime"
	"sync/atomic"
)

var (
	// yieldFn is called by Acquire between failed attempts so that a
	// blocked spin doesn't starve the goroutine holding the lock. Tests
	// substitute this to make contention deterministic.
	yieldFn = runtime.Gosched
)

// Spinlock implements a lock where each task trying to acquire it busy-waits
// until the lock becomes available. It is intended only for short critical
// sections — never held across a blocking call.
type Spinlock struct {
	state uint32
}

// Acquire blocks until the lock can be acquired by the calling goroutine.
// Re-acquiring a lock already held by the same goroutine deadlocks it.
func (l *Spinlock) Acquire() {
	for !l.TryToAcquire() {
		yieldFn()
	}
}

// TryToAcquire attempts to acquire the lock without blocking and reports
// whether it succeeded.
func (l *Spinlock) TryToAcquire() bool {
	return atomic.CompareAndSwapUint32(&l.state, 0, 1)
}

// Release relinquishes a held lock. Calling Release on an unheld lock has
// no effect beyond leaving it unlocked.
func (l *Spinlock) Release() {
	atomic.StoreUint32(&l.state, 0)
}

// Lock and Unlock alias Acquire and Release so that *Spinlock satisfies
// sync.Locker, which lets kernel/sched use it directly as a sync.Cond's L.
func (l *Spinlock) Lock()   { l.Acquire() }
func (l *Spinlock) Unlock() { l.Release() }
