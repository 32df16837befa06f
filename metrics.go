package taskmux

import "sync/atomic"

// schedulerMetrics are the scheduler's running counters. Deliberately
// plain atomics rather than a full metrics-library integration: Stats
// exposes them as a snapshot for whatever the embedding application
// wants to export them through (Prometheus, logiface fields, etc).
type schedulerMetrics struct {
	_             [cacheLinePad]byte
	tasksSpawned  atomic.Uint64
	_             [cacheLinePad]byte
	tasksFinished atomic.Uint64
	_             [cacheLinePad]byte
	switches      atomic.Uint64
}

func newSchedulerMetrics() *schedulerMetrics {
	return &schedulerMetrics{}
}

// switchToken is an opaque marker from beginSwitch to endSwitch. It
// carries no timestamp: wall-clock switch latency isn't tracked here
// (a Context switch is a couple of channel sends, not worth the
// overhead of a time.Now() per switch on the hot path), only the count.
type switchToken struct{}

func (m *schedulerMetrics) beginSwitch() switchToken {
	return switchToken{}
}

func (m *schedulerMetrics) endSwitch(switchToken) {
	m.switches.Add(1)
}
