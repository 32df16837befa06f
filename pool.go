package taskmux

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	catrate "github.com/joeycumines/go-catrate"
)

// backgroundPool is the scheduler's set of OS-thread-bound driver
// loops. It starts with minSpare loops running and can grow up to
// maxThreads when notify() sees sustained pressure, throttled by a
// go-catrate limiter so a burst of Spawn/Yield calls can't stampede
// into spawning a thread per task.
type backgroundPool struct {
	sched      *Scheduler
	minSpare   int
	maxThreads int

	growthLimiter *catrate.Limiter

	active atomic.Int32
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func newBackgroundPool(s *Scheduler, minSpare, maxThreads int, notifyRates map[time.Duration]int) *backgroundPool {
	return &backgroundPool{
		sched:         s,
		minSpare:      minSpare,
		maxThreads:    maxThreads,
		growthLimiter: catrate.NewLimiter(notifyRates),
		stopCh:        make(chan struct{}),
	}
}

func (p *backgroundPool) start() {
	for i := 0; i < p.minSpare; i++ {
		p.spawnDriver()
	}
}

func (p *backgroundPool) spawnDriver() {
	p.active.Add(1)
	p.wg.Add(1)
	go p.driverLoop()
}

// driverLoop pulls runnable tasks off the scheduler's queue and
// switches into them, parking on the scheduler's wait word whenever the
// queue is empty. Pinned to its OS thread for the lifetime of the loop:
// a Context switch resumes a task goroutine that may carry thread-local
// assumptions of its own (cgo callbacks, syscall-heavy code), so the
// driver that jumps into it should not migrate threads mid-task.
func (p *backgroundPool) driverLoop() {
	defer p.wg.Done()
	defer p.active.Add(-1)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case <-p.stopCh:
			return
		default:
		}

		if t := p.sched.queue.get(); t != nil {
			if !p.sched.queue.empty() {
				// more left behind: let another driver pick it up
				p.sched.notifyRunnable()
			}
			p.sched.switchInto(t)
			continue
		}

		p.sched.wake.Wait()
	}
}

// notify wakes idle driver loops for n newly runnable tasks and, if
// sustained pressure warrants it, grows the pool. The wake-word signal
// itself is never rate limited: a missed wakeup could strand a parked
// driver indefinitely. Only the (optional, best-effort) decision to
// spin up an additional OS thread is throttled.
func (p *backgroundPool) notify(n int) {
	if n <= 0 {
		return
	}
	p.sched.wake.Notify(n)
	p.maybeGrow()
}

func (p *backgroundPool) maybeGrow() {
	if int(p.active.Load()) >= p.maxThreads {
		return
	}
	if p.sched.wake.WaitCount() > 0 {
		// someone is already idle and about to pick up the work
		return
	}
	if _, ok := p.growthLimiter.Allow("grow"); !ok {
		return
	}
	p.spawnDriver()
}

// stop signals every driver loop to exit after its current task (if
// any) and waits for them all to return.
func (p *backgroundPool) stop() {
	close(p.stopCh)
	p.sched.wake.NotifyAll()
	p.wg.Wait()
}
