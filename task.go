package taskmux

import (
	"fmt"
	"sync/atomic"

	"github.com/joeycumines/go-taskmux/internal/assert"
	"github.com/joeycumines/go-taskmux/internal/gid"
	"github.com/joeycumines/go-taskmux/internal/stackalloc"
)

var nextTaskID atomic.Uint64

// Task is one unit of cooperative, one-shot work: a function that runs
// to completion (or panics) exactly once, yielding control back to the
// scheduler between steps instead of being preempted.
//
// A Task's next field (list.go) means it must never sit on more than
// one list at a time: the runnable queue's buffer or stacks, or some
// Awaitable's wait list. Whoever currently holds it owns next until
// they hand the task off.
type Task struct {
	next atomic.Pointer[Task]

	id       uint64
	name     string
	priority atomic.Int32
	state    atomicTaskState

	sched *Scheduler
	ctx   *Context
	done  *Awaitable
	body  func(*Task)

	region        *stackalloc.Region
	stackSizeHint int

	// goroutineID is captured once, at the start of runTrampoline, and
	// never changes again: the task's body runs in exactly one goroutine
	// for its whole lifetime. Yield and Join use it to assert they were
	// called from that goroutine and not from somewhere else entirely.
	goroutineID uint64
}

// TaskOption configures a Task at spawn time.
type TaskOption func(*Task)

// WithPriority sets the task's initial scheduling priority.
func WithPriority(p Priority) TaskOption {
	return func(t *Task) { t.priority.Store(int32(clampPriority(p))) }
}

// WithName attaches a diagnostic name, surfaced in logs and the task
// registry but otherwise inert.
func WithName(name string) TaskOption {
	return func(t *Task) { t.name = name }
}

// WithStackSize overrides the scratch region size stackalloc.Allocate
// reserves for the task.
func WithStackSize(size int) TaskOption {
	return func(t *Task) { t.stackSizeHint = size }
}

// Spawn creates a task bound to sched running body, and makes it
// runnable. body receives the Task itself so it can call Yield, Join,
// or SetPriority on its own handle.
//
// Spawn never blocks: the task's goroutine starts immediately but parks
// on its Context until the scheduler actually switches into it.
func Spawn(sched *Scheduler, body func(*Task), opts ...TaskOption) *Task {
	if sched == nil {
		panic("taskmux: Spawn requires a non-nil Scheduler")
	}
	if body == nil {
		panic("taskmux: Spawn requires a non-nil body")
	}
	if sched.closing.Load() {
		panic(ErrSchedulerClosed)
	}

	t := &Task{
		id:    nextTaskID.Add(1),
		sched: sched,
		ctx:   makeContext(),
		done:  &Awaitable{},
		body:  body,
	}
	t.priority.Store(int32(PriorityNormal))
	for _, opt := range opts {
		opt(t)
	}

	size := t.stackSizeHint
	region, err := stackalloc.Allocate(size)
	if err != nil {
		panic(fmt.Errorf("taskmux: allocating scratch region for task %d: %w", t.id, err))
	}
	t.region = region

	sched.registerTask(t)
	go runTrampoline(t)
	sched.queue.put(t)
	sched.notifyRunnable()
	return t
}

// ID returns the task's scheduler-unique identifier.
func (t *Task) ID() uint64 { return t.id }

// Name returns the diagnostic name given via WithName, or "".
func (t *Task) Name() string { return t.name }

// State returns the task's current lifecycle stage.
func (t *Task) State() TaskState { return t.state.load() }

// Priority returns the task's current scheduling lane.
func (t *Task) Priority() Priority { return Priority(t.priority.Load()) }

// SetPriority changes the task's scheduling lane. Safe to call from any
// goroutine, including the task's own body or another task entirely;
// takes effect the next time the task is placed back on the runnable
// queue, not retroactively for a slot it already occupies.
func (t *Task) SetPriority(p Priority) {
	t.priority.Store(int32(clampPriority(p)))
}

// Yield cooperatively hands control back to the scheduler, re-enqueuing
// itself as runnable so it gets another turn later. Must be called
// from inside the task's own body, never from another goroutine.
func (t *Task) Yield() {
	assert.That(gid.Current() == t.goroutineID, ErrNotInTask.Error())
	t.sched.queue.put(t)
	t.sched.notifyRunnable()
	t.ctx.parkSelf()
}

// Join blocks the calling task until other has finished. If other has
// already finished, Join returns immediately. Must be called from
// inside the task's own body; joining a task from outside any task's
// body (e.g. the owning OS thread that's driving the scheduler loop) is
// a programming error the scheduler does not protect against.
func (t *Task) Join(other *Task) {
	assert.That(gid.Current() == t.goroutineID, ErrNotInTask.Error())
	if other == nil || other == t {
		return
	}
	if !other.done.wait(t) {
		return
	}
	t.state.store(TaskWaiting)
	t.ctx.parkSelf()
	t.state.store(TaskRunning)
}

// Finished reports whether the task has run to completion.
func (t *Task) Finished() bool {
	return t.state.load() == TaskFinished
}

// runTrampoline is the task goroutine's entry point: it waits for the
// scheduler's first switch in, runs the body exactly once, and on
// return (however it returns) tears down the task's resources and
// releases anyone joined on it.
func runTrampoline(t *Task) {
	t.goroutineID = gid.Current()
	t.ctx.awaitStart()

	defer func() {
		r := recover()
		if err := stackalloc.Free(t.region); err != nil && t.sched.logger != nil {
			t.sched.logger.logStackFreeError(t, err)
		}
		if r != nil && t.sched.logger != nil {
			t.sched.logger.logTaskPanic(t, r)
		}
		t.sched.deregisterTask(t)
		if woken := t.done.release(); woken != nil {
			n := listLen(woken)
			for w := woken; w != nil; w = w.next.Load() {
				w.state.store(TaskRunning)
			}
			t.sched.queue.putList(woken)
			t.sched.notifyRunnableMany(n)
		}
		t.state.store(TaskFinished)
		t.ctx.finish()
	}()

	t.body(t)
}
