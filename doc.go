// Package taskmux implements an M:N cooperative task scheduler: many
// lightweight, one-shot Tasks multiplexed onto a small pool of
// OS-thread-bound driver loops.
//
// A Task runs to completion once it starts; between steps it
// cooperatively yields control back to whichever driver loop is
// currently running it (Task.Yield), or blocks until another task
// finishes (Task.Join). Nothing preempts a running task, there is no
// work-stealing between independent Schedulers, and a finished task's
// resources are released exactly once.
//
// Typical use:
//
//	sched := taskmux.NewScheduler()
//	defer sched.Shutdown()
//
//	var t *taskmux.Task
//	t = taskmux.Spawn(sched, func(self *taskmux.Task) {
//		for i := 0; i < 3; i++ {
//			self.Yield()
//		}
//	})
package taskmux
