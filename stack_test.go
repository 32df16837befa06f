package taskmux

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockFreeStack_PushPopAllOrder(t *testing.T) {
	var s lockFreeStack
	require.True(t, s.empty())

	a, b, c := &Task{id: 1}, &Task{id: 2}, &Task{id: 3}
	wasEmpty := s.push(a)
	assert.True(t, wasEmpty)
	wasEmpty = s.push(b)
	assert.False(t, wasEmpty)
	s.push(c)
	require.False(t, s.empty())

	head := s.popAll()
	require.True(t, s.empty())

	// LIFO: last pushed comes out first.
	require.Equal(t, uint64(3), head.id)
	require.Equal(t, uint64(2), head.next.Load().id)
	require.Equal(t, uint64(1), head.next.Load().next.Load().id)
	require.Nil(t, head.next.Load().next.Load().next.Load())
}

func TestLockFreeStack_PopAllOnEmpty(t *testing.T) {
	var s lockFreeStack
	require.Nil(t, s.popAll())
}

func TestLockFreeStack_PushList(t *testing.T) {
	var s lockFreeStack
	a, b := &Task{id: 1}, &Task{id: 2}
	a.next.Store(b)
	s.pushList(a, b)

	head := s.popAll()
	require.Equal(t, uint64(1), head.id)
	require.Equal(t, uint64(2), head.next.Load().id)
}

func TestLockFreeStack_ConcurrentPushNeverLosesATask(t *testing.T) {
	var s lockFreeStack
	const n = 2000

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			s.push(&Task{id: id})
		}(uint64(i))
	}
	wg.Wait()

	require.Equal(t, n, listLen(s.popAll()))
}
