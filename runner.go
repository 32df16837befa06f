package taskmux

import "github.com/joeycumines/go-taskmux/internal/gid"

// runnerState is the driver goroutine's running-task bookkeeping: which
// Task, if any, this particular OS-thread-bound driver loop is
// currently switched into. Go has no native goroutine-local storage, so
// this is keyed by the driver goroutine's runtime-assigned ID (gid),
// extracted the same safe way internal/gid always does: parsing the
// header line of runtime.Stack, never go:linkname into runtime
// internals.
type runnerState struct {
	current *Task
}

func (s *Scheduler) runnerFor(id uint64) *runnerState {
	if v, ok := s.runners.Load(id); ok {
		return v.(*runnerState)
	}
	rs := &runnerState{}
	actual, _ := s.runners.LoadOrStore(id, rs)
	return actual.(*runnerState)
}

// currentTask returns the Task the calling driver goroutine is
// currently switched into, or nil if called from outside any driver
// loop.
func (s *Scheduler) currentTask() *Task {
	return s.runnerFor(gid.Current()).current
}

func (s *Scheduler) setCurrentTask(t *Task) {
	s.runnerFor(gid.Current()).current = t
}

// CurrentTask returns the Task running on whichever driver loop calls
// it — useful from inside a panic handler or log hook installed on a
// driver goroutine, to report which task it was switched into at the
// time. Returns nil if called from a goroutine that is not one of the
// scheduler's own driver loops.
func (s *Scheduler) CurrentTask() *Task {
	return s.currentTask()
}
