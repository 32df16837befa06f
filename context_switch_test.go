package taskmux

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestContext_RendezvousHandoff(t *testing.T) {
	ctx := makeContext()
	var order []string

	go func() {
		ctx.awaitStart()
		order = append(order, "task-start")
		ctx.parkSelf()
		order = append(order, "task-resume")
		ctx.finish()
	}()

	ctx.jumpInto()
	require.Equal(t, []string{"task-start"}, order)

	ctx.jumpInto()
	require.Equal(t, []string{"task-start", "task-resume"}, order)
}

func TestContext_JumpIntoBlocksUntilYieldOrFinish(t *testing.T) {
	ctx := makeContext()
	started := make(chan struct{})

	go func() {
		ctx.awaitStart()
		close(started)
		time.Sleep(20 * time.Millisecond)
		ctx.finish()
	}()

	done := make(chan struct{})
	go func() {
		ctx.jumpInto()
		close(done)
	}()

	<-started
	select {
	case <-done:
		t.Fatal("jumpInto returned before the task goroutine signaled finish")
	case <-time.After(5 * time.Millisecond):
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("jumpInto never returned after finish")
	}
}
