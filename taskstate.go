package taskmux

import "sync/atomic"

// TaskState is the lifecycle stage of a Task, stored atomically so the
// scheduler, the task's own goroutine, and anyone joining it can read it
// without a lock.
type TaskState int32

const (
	// TaskRunning covers both "currently executing" and "runnable, sitting
	// in the queue waiting for a turn" — the queue membership itself is
	// the only distinction that matters, and that's tracked by list
	// ownership, not by a separate state value.
	TaskRunning TaskState = iota
	// TaskWaiting means the task is blocked on an Awaitable (a join) and
	// is not in any run queue; moving it back to TaskRunning and
	// re-enqueuing it is the Awaitable's release path's job.
	TaskWaiting
	// TaskFinished means the task's body has returned; its Awaitable has
	// already been released and its stack region freed.
	TaskFinished
)

func (s TaskState) String() string {
	switch s {
	case TaskRunning:
		return "running"
	case TaskWaiting:
		return "waiting"
	case TaskFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// atomicTaskState is the storage type embedded in Task.
type atomicTaskState struct {
	v atomic.Int32
}

func (a *atomicTaskState) load() TaskState {
	return TaskState(a.v.Load())
}

func (a *atomicTaskState) store(s TaskState) {
	a.v.Store(int32(s))
}

func (a *atomicTaskState) compareAndSwap(old, new TaskState) bool {
	return a.v.CompareAndSwap(int32(old), int32(new))
}
