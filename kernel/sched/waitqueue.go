// Package sched models the uninterruptible sleep/wakeup protocol that the
// allocator and per-frame busy lock use to block a caller until another
// goroutine makes progress possible, without missing a wakeup that races
// with the check that precedes the sleep.
package sched

import (
	gosync "sync"

	"pagecore/kernel/sync"
)

// WaitQueue is a single rendezvous point that callers Sleep on while a
// predicate they care about (a free frame becoming available, a busy frame
// unlocking) is false, and that another goroutine calls Wakeup on after
// changing state the predicate depends on.
//
// A single WaitQueue is shared by every predicate a Cache can block on,
// mirroring the fact that masking interrupts on the original kernel this is
// modeled on is a system-wide act, not one scoped to a single object: a
// wakeup may be spurious with respect to the condition a particular caller
// is waiting for, so callers must always re-check their predicate in a loop
// after Sleep returns.
type WaitQueue struct {
	lock sync.Spinlock
	cond *gosync.Cond
}

// New returns a ready-to-use WaitQueue.
func New() *WaitQueue {
	wq := &WaitQueue{}
	wq.cond = gosync.NewCond(&wq.lock)
	return wq
}

// Lock acquires the wait queue's guard lock. Callers hold this lock while
// testing a predicate and while mutating the state the predicate reads, so
// that a Wakeup from another goroutine can never land between the check and
// the Sleep.
func (wq *WaitQueue) Lock() {
	wq.lock.Acquire()
}

// Unlock releases the guard lock acquired by Lock.
func (wq *WaitQueue) Unlock() {
	wq.lock.Release()
}

// Sleep blocks the calling goroutine until a Wakeup is observed. The caller
// must hold the guard lock (via Lock) before calling Sleep; Sleep releases
// it while blocked and reacquires it before returning, exactly like
// sync.Cond.Wait. Because the wakeup may be spurious or may correspond to a
// different predicate than the one the caller is waiting on, callers must
// loop: re-test their predicate after Sleep returns and Sleep again if it
// still doesn't hold.
func (wq *WaitQueue) Sleep() {
	wq.cond.Wait()
}

// Wakeup wakes every goroutine blocked in Sleep. The caller should hold the
// guard lock while changing the state a sleeper's predicate depends on, and
// may call Wakeup either before or after releasing it; broadcasting (rather
// than signaling a single sleeper) matches the original kernel's wakeup,
// which wakes every task blocked on a resource and lets them race to
// re-check their own predicate.
func (wq *WaitQueue) Wakeup() {
	wq.cond.Broadcast()
}
