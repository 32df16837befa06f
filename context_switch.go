package taskmux

// Context is this module's stand-in for the assembly-level
// make_context/jump_context pair a stackful-coroutine scheduler usually
// needs. Go gives user code no way to hand a goroutine a foreign stack
// or resume it at an arbitrary saved register state, so instead of
// switching stacks, a Context hands control back and forth between two
// goroutines that are both already running: the task's own goroutine,
// parked on resume, and whichever goroutine is currently acting as
// scheduler, parked on yield. Exactly one side is ever unblocked at a
// time, which is what a real context switch guarantees too — it's just
// bought here with a pair of capacity-1 channels instead of a stack
// pointer swap.
type Context struct {
	resume chan struct{}
	yield  chan struct{}
}

// makeContext allocates a fresh, not-yet-started Context. The capacity
// of 1 on both channels means the side that reaches its send first
// never blocks waiting for the other side to be ready to receive.
func makeContext() *Context {
	return &Context{
		resume: make(chan struct{}, 1),
		yield:  make(chan struct{}, 1),
	}
}

// jumpInto transfers control to the task goroutine owning this context
// and blocks the caller until that goroutine yields or finishes.
// Called from the scheduler side.
func (c *Context) jumpInto() {
	c.resume <- struct{}{}
	<-c.yield
}

// parkSelf signals the scheduler that this task has paused here, then
// blocks until the next jumpInto resumes it. Called from inside the
// task's own goroutine, never from the scheduler side.
func (c *Context) parkSelf() {
	c.yield <- struct{}{}
	<-c.resume
}

// awaitStart blocks a brand-new task goroutine until the scheduler's
// first jumpInto, so construction and first execution stay decoupled.
func (c *Context) awaitStart() {
	<-c.resume
}

// finish signals the scheduler that the task's body has returned and
// there will be no further jumpInto for this context. Unlike parkSelf
// it does not wait for a resume afterward.
func (c *Context) finish() {
	c.yield <- struct{}{}
}
