package taskmux

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s := NewScheduler(WithMinSpareThreads(2), WithMaxThreads(4))
	t.Cleanup(s.Shutdown)
	return s
}

// =============================================================================
// single task, single driver thread
// =============================================================================

func TestScheduler_SingleTaskRunsToCompletion(t *testing.T) {
	s := newTestScheduler(t)

	var ran atomic.Bool
	done := make(chan struct{})
	Spawn(s, func(self *Task) {
		ran.Store(true)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("task never ran")
	}
	require.True(t, ran.Load())
}

// =============================================================================
// yield chain
// =============================================================================

func TestScheduler_YieldChainOfFiveTasksAllComplete(t *testing.T) {
	s := newTestScheduler(t)

	const n = 5
	var wg sync.WaitGroup
	wg.Add(n)
	var order sync.Map
	var seq atomic.Int64

	for i := 0; i < n; i++ {
		i := i
		Spawn(s, func(self *Task) {
			defer wg.Done()
			for step := 0; step < 3; step++ {
				self.Yield()
			}
			order.Store(i, seq.Add(1))
		})
	}

	waitOrTimeout(t, &wg, 5*time.Second)

	count := 0
	order.Range(func(_, _ any) bool { count++; return true })
	require.Equal(t, n, count)
}

// =============================================================================
// join wakes waiter
// =============================================================================

func TestScheduler_JoinWakesWaiterAfterTargetFinishes(t *testing.T) {
	s := newTestScheduler(t)

	var joinedAfterFinish atomic.Bool
	var targetDone atomic.Bool

	target := Spawn(s, func(self *Task) {
		self.Yield()
		self.Yield()
		targetDone.Store(true)
	})

	done := make(chan struct{})
	Spawn(s, func(self *Task) {
		self.Join(target)
		joinedAfterFinish.Store(targetDone.Load())
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("joiner never woke")
	}
	require.True(t, joinedAfterFinish.Load())
}

func TestScheduler_JoinOnAlreadyFinishedTaskReturnsImmediately(t *testing.T) {
	s := newTestScheduler(t)

	target := Spawn(s, func(self *Task) {})
	waitForFinished(t, target, 5*time.Second)

	done := make(chan struct{})
	Spawn(s, func(self *Task) {
		self.Join(target)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("joiner blocked on an already-finished task")
	}
}

// =============================================================================
// priority preference without starvation
// =============================================================================

// Preference order itself is checked at queue level
// (TestRunQueue_PriorityDoesNotStarveLowerLanes); with live drivers this
// test checks only that every task of both lanes runs exactly once.
func TestScheduler_HighAndManyLowPriorityTasksAllRun(t *testing.T) {
	s := newTestScheduler(t)

	const lowCount = 100
	var lowStarted atomic.Int64
	var highStarted atomic.Int64
	var firstStartOrder atomic.Int64
	var highOrder, lowOrder atomic.Int64

	var wg sync.WaitGroup
	wg.Add(lowCount + 1)

	for i := 0; i < lowCount; i++ {
		Spawn(s, func(self *Task) {
			defer wg.Done()
			lowStarted.Add(1)
			if lowOrder.Load() == 0 {
				lowOrder.Store(firstStartOrder.Add(1))
			}
		}, WithPriority(PriorityLow))
	}

	Spawn(s, func(self *Task) {
		defer wg.Done()
		highStarted.Add(1)
		highOrder.Store(firstStartOrder.Add(1))
	}, WithPriority(PriorityHigh))

	waitOrTimeout(t, &wg, 10*time.Second)

	require.EqualValues(t, lowCount, lowStarted.Load())
	require.EqualValues(t, 1, highStarted.Load())
}

func waitOrTimeout(t *testing.T, wg *sync.WaitGroup, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("timed out waiting for tasks to finish")
	}
}

func waitForFinished(t *testing.T, tk *Task, d time.Duration) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if tk.Finished() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("task never finished")
}
