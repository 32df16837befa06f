package taskmux

import (
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-taskmux/internal/waitword"
)

// Scheduler owns a runnable queue and a background pool of OS-thread
// bound driver loops that pull tasks off it and switch into them. It is
// the M:N part of the package: many Tasks (the "M"), each one a
// goroutine parked on its own Context, multiplexed onto a handful of
// locked-OS-thread driver loops (the "N").
type Scheduler struct {
	queue    *runQueue
	runners  sync.Map // uint64 goroutine id -> *runnerState
	registry *taskRegistry
	metrics  *schedulerMetrics
	logger   *taskLogger
	wake     *waitword.Word

	pool *backgroundPool

	closing atomic.Bool
}

// NewScheduler constructs a Scheduler and starts its background driver
// pool. Callers should Shutdown it when done to stop the pool cleanly.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	cfg := defaultSchedulerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Scheduler{
		queue:    newRunQueue(),
		registry: newTaskRegistry(),
		metrics:  newSchedulerMetrics(),
		logger:   cfg.logger,
		wake:     waitword.New(),
	}
	s.pool = newBackgroundPool(s, cfg.minSpare, cfg.maxThreads, cfg.notifyRates)
	s.pool.start()
	return s
}

func (s *Scheduler) registerTask(t *Task) {
	s.registry.add(t)
	s.metrics.tasksSpawned.Add(1)
}

func (s *Scheduler) deregisterTask(t *Task) {
	s.registry.remove(t)
	s.metrics.tasksFinished.Add(1)
}

// notifyRunnable wakes at most one idle driver loop; used whenever a
// single new task becomes runnable (Spawn, Yield).
func (s *Scheduler) notifyRunnable() {
	s.pool.notify(1)
}

// notifyRunnableMany wakes idle driver loops for a batch of tasks that
// just became runnable at once (an Awaitable releasing its wait list).
func (s *Scheduler) notifyRunnableMany(n int) {
	if n <= 0 {
		return
	}
	s.pool.notify(n)
}

// switchInto transfers control to t from the calling driver loop and
// blocks until t yields, joins, or finishes.
func (s *Scheduler) switchInto(t *Task) {
	s.setCurrentTask(t)
	start := s.metrics.beginSwitch()
	t.ctx.jumpInto()
	s.metrics.endSwitch(start)
	s.setCurrentTask(nil)
}

// Stats is a point-in-time snapshot of scheduler activity, exported for
// diagnostics and logging.
type Stats struct {
	LiveTasks     int
	TasksSpawned  uint64
	TasksFinished uint64
	Switches      uint64
}

// Stats returns a snapshot of the scheduler's current counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		LiveTasks:     s.registry.len(),
		TasksSpawned:  s.metrics.tasksSpawned.Load(),
		TasksFinished: s.metrics.tasksFinished.Load(),
		Switches:      s.metrics.switches.Load(),
	}
}

// Shutdown stops the background driver pool. In-flight tasks are left
// to finish on whichever driver loop currently holds them; Shutdown
// does not cancel running tasks (cancellation of running tasks is out
// of scope for this scheduler).
func (s *Scheduler) Shutdown() {
	if !s.closing.CompareAndSwap(false, true) {
		return
	}
	s.pool.stop()
}
