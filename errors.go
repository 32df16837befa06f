package taskmux

import "errors"

// ErrSchedulerClosed is the panic value Spawn raises when called after
// Shutdown.
var ErrSchedulerClosed = errors.New("taskmux: scheduler is shut down")

// ErrNotInTask's message is what the debug-build assertion in Yield and
// Join reports when they are called from a goroutine other than the
// task's own body.
var ErrNotInTask = errors.New("taskmux: not called from within a task body")
