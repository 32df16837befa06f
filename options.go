package taskmux

import "time"

// schedulerConfig holds the resolved configuration a NewScheduler call
// builds from its defaults and SchedulerOptions, grouped here rather
// than kept as Scheduler fields so the zero-value building logic stays
// in one place.
type schedulerConfig struct {
	minSpare    int
	maxThreads  int
	logger      *taskLogger
	notifyRates map[time.Duration]int
}

func defaultSchedulerConfig() schedulerConfig {
	return schedulerConfig{
		minSpare:   1,
		maxThreads: 8,
		logger:     nil,
		notifyRates: map[time.Duration]int{
			time.Millisecond:       50,
			10 * time.Millisecond:  200,
			100 * time.Millisecond: 1000,
		},
	}
}

// SchedulerOption configures a Scheduler at construction time.
type SchedulerOption func(*schedulerConfig)

// WithMinSpareThreads sets the number of driver loops the background
// pool keeps running even when idle, so a sudden burst of Spawn calls
// doesn't have to pay thread-creation latency before work starts.
func WithMinSpareThreads(n int) SchedulerOption {
	return func(c *schedulerConfig) {
		if n > 0 {
			c.minSpare = n
		}
	}
}

// WithMaxThreads caps how many driver loops the background pool will
// ever run concurrently.
func WithMaxThreads(n int) SchedulerOption {
	return func(c *schedulerConfig) {
		if n > 0 {
			c.maxThreads = n
		}
	}
}

// WithLogger attaches a structured logger (see logging.go) the
// scheduler and its tasks report lifecycle events and errors through.
// A nil logger (the default) disables logging entirely.
func WithLogger(l *taskLogger) SchedulerOption {
	return func(c *schedulerConfig) { c.logger = l }
}

// WithNotifyRates overrides the per-window rate limits applied to the
// background pool's decision to start another driver loop, keyed by
// window size. The driver wakeup itself is never rate limited; see
// pool.go's notify and maybeGrow.
func WithNotifyRates(rates map[time.Duration]int) SchedulerOption {
	return func(c *schedulerConfig) {
		if len(rates) > 0 {
			c.notifyRates = rates
		}
	}
}
