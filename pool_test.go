package taskmux

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackgroundPool_StartSpawnsMinSpareDrivers(t *testing.T) {
	s := NewScheduler(WithMinSpareThreads(3), WithMaxThreads(6))
	defer s.Shutdown()

	require.Equal(t, int32(3), s.pool.active.Load())
}

func TestBackgroundPool_NeverGrowsPastMaxThreads(t *testing.T) {
	s := NewScheduler(
		WithMinSpareThreads(1),
		WithMaxThreads(2),
		WithNotifyRates(map[time.Duration]int{time.Microsecond: 1000}),
	)
	defer s.Shutdown()

	for i := 0; i < 50; i++ {
		s.pool.notify(1)
	}

	require.LessOrEqual(t, int(s.pool.active.Load()), 2)
}

func TestBackgroundPool_StopWaitsForAllDrivers(t *testing.T) {
	s := NewScheduler(WithMinSpareThreads(2), WithMaxThreads(2))
	s.Shutdown()

	require.Equal(t, int32(0), s.pool.active.Load())
}
