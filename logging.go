package taskmux

import (
	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
)

// taskLogger wraps a logiface logger backed by izerolog/zerolog so
// Scheduler and Task internals have one place to call into for
// structured diagnostics, rather than threading a raw *zerolog.Logger
// through every component. The wrapped logger's event type is fixed to
// izerolog's, so a different logiface adapter would need a change to
// taskLogger and NewLogger too.
type taskLogger struct {
	log *logiface.Logger[*izerolog.Event]
}

// NewLogger wraps an already-constructed logiface logger (built with
// izerolog.WithZerolog and whatever zerolog.Logger the caller chose)
// for use with WithLogger.
func NewLogger(log *logiface.Logger[*izerolog.Event]) *taskLogger {
	return &taskLogger{log: log}
}

func (l *taskLogger) logTaskPanic(t *Task, recovered any) {
	if l == nil || l.log == nil {
		return
	}
	l.log.Err().
		Uint64("task_id", t.id).
		Str("task_name", t.name).
		Interface("recovered", recovered).
		Log("task panicked")
}

func (l *taskLogger) logStackFreeError(t *Task, err error) {
	if l == nil || l.log == nil {
		return
	}
	l.log.Err().
		Err(err).
		Uint64("task_id", t.id).
		Str("task_name", t.name).
		Log("failed to release task scratch region")
}
