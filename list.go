package taskmux

import "sync/atomic"

// Every Task carries an intrusive "next" link so it can be threaded onto
// exactly one list at a time: the runnable queue's hot buffer, one of
// its priority stacks, or an Awaitable's wait list. The link is an
// atomic.Pointer rather than a plain *Task because it is written inside
// the lock-free stack's and the Awaitable's CAS loops and read by
// whichever goroutine later drains those lists.

// listLen walks an intrusive Task list and counts its elements. Used by
// tests and by runTrampoline to count the tasks a released wait list
// makes runnable.
func listLen(head *Task) int {
	n := 0
	for head != nil {
		n++
		head = head.next.Load()
	}
	return n
}

// listTail walks to the last element of a non-empty Task list.
func listTail(head *Task) *Task {
	cur := head
	for {
		next := cur.next.Load()
		if next == nil {
			return cur
		}
		cur = next
	}
}

// reverseList reverses an intrusive Task list in place and returns the
// new head (the old tail). Used to turn a Treiber stack's natural
// newest-first pop order into oldest-first before redistributing it
// elsewhere (see runQueue.spillIntoBuffer).
func reverseList(head *Task) *Task {
	var prev *Task
	for head != nil {
		next := head.next.Load()
		head.next.Store(prev)
		prev = head
		head = next
	}
	return prev
}

// appendList links tail onto the end of head. head must be non-nil.
// Not safe to call concurrently with another mutator of the same list.
func appendList(head, tail *Task) {
	listTail(head).next.Store(tail)
}

// taskNextPtr exposes Task.next as its raw atomic.Pointer. The lock-free
// stack and the Awaitable access t.next directly rather than through it.
func taskNextPtr(t *Task) *atomic.Pointer[Task] {
	return &t.next
}
