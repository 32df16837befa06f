package taskmux

import (
	"sync"
	"weak"
)

// taskRegistry tracks every live task for diagnostics (Scheduler.Stats,
// future introspection tooling) without itself being the reason a
// finished task's memory sticks around: entries are weak.Pointer, so a
// task that's already been removed but whose registry entry lags
// behind a missed remove call still lets the runtime collect it.
// Removal is deterministic in the common path (runTrampoline always
// calls deregisterTask); the weak pointer is a second line of defense,
// not the primary bookkeeping mechanism.
type taskRegistry struct {
	mu    sync.Mutex
	tasks map[uint64]weak.Pointer[Task]
}

func newTaskRegistry() *taskRegistry {
	return &taskRegistry{tasks: make(map[uint64]weak.Pointer[Task])}
}

func (r *taskRegistry) add(t *Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.id] = weak.Make(t)
}

func (r *taskRegistry) remove(t *Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, t.id)
}

func (r *taskRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// snapshot returns every currently-resolvable live task, scavenging any
// entries whose weak pointer has already gone nil along the way.
func (r *taskRegistry) snapshot() []*Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Task, 0, len(r.tasks))
	for id, wp := range r.tasks {
		if t := wp.Value(); t != nil {
			out = append(out, t)
		} else {
			delete(r.tasks, id)
		}
	}
	return out
}
