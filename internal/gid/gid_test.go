package gid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrent_DistinctGoroutinesGetDistinctIDs(t *testing.T) {
	const n = 20
	ids := make([]uint64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			ids[i] = Current()
		}()
	}
	wg.Wait()

	seen := make(map[uint64]struct{}, n)
	for _, id := range ids {
		require.NotZero(t, id)
		_, dup := seen[id]
		require.False(t, dup, "goroutine ID %d reported more than once", id)
		seen[id] = struct{}{}
	}
}

func TestCurrent_StableWithinSameGoroutine(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		first := Current()
		for i := 0; i < 5; i++ {
			require.Equal(t, first, Current())
		}
	}()
	<-done
}

func TestParseHeader(t *testing.T) {
	id, ok := parseHeader([]byte("goroutine 42 [running]:\nmore stack info"))
	require.True(t, ok)
	require.Equal(t, uint64(42), id)

	_, ok = parseHeader([]byte("not a goroutine header"))
	require.False(t, ok)

	_, ok = parseHeader([]byte("goroutine"))
	require.False(t, ok)

	_, ok = parseHeader([]byte("goroutine notanumber [running]:"))
	require.False(t, ok)
}
