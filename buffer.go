package taskmux

import "sync/atomic"

// bufferSlots is the fixed capacity of the runnable queue's hot buffer.
// Kept small and odd on purpose: a handful of cache lines is enough to
// smooth out producer/consumer bursts without turning the fast path
// into an unbounded allocation-heavy ring.
const bufferSlots = 7

// boundedBuffer is a small fixed-capacity, lock-free, multi-producer
// multi-consumer queue that preserves approximate FIFO order: tasks
// generally come out in the order they went in, but a slow producer
// can let a later task's consumer win the race for an earlier slot.
// Perfect ordering is not the point — bounded memory and never
// blocking are. When full, put reports failure and the caller (see
// queue.go) falls back to the priority stacks.
//
// Each cell carries its own sequence counter (the layout popularized by
// Dmitry Vyukov's bounded MPMC queue): a producer claims a cell by
// advancing the global tail past the cell's expected sequence, a
// consumer claims it by advancing head past the next expected
// sequence. No cell is ever touched by two producers or two consumers
// at once, and no CAS ever spins on more than one cell at a time.
type boundedBuffer struct {
	_    [cacheLinePad]byte
	head atomic.Uint64
	_    [cacheLinePad]byte
	tail atomic.Uint64
	_    [cacheLinePad]byte
	cells [bufferSlots]bufferCell
}

type bufferCell struct {
	sequence atomic.Uint64
	task     *Task
}

func newBoundedBuffer() *boundedBuffer {
	b := &boundedBuffer{}
	for i := range b.cells {
		b.cells[i].sequence.Store(uint64(i))
	}
	return b
}

// put enqueues a single task, returning false if the buffer is
// currently full (all cells claimed and not yet drained).
func (b *boundedBuffer) put(t *Task) bool {
	for {
		pos := b.tail.Load()
		cell := &b.cells[pos%bufferSlots]
		seq := cell.sequence.Load()
		diff := int64(seq) - int64(pos)
		switch {
		case diff == 0:
			if b.tail.CompareAndSwap(pos, pos+1) {
				cell.task = t
				cell.sequence.Store(pos + 1)
				return true
			}
		case diff < 0:
			return false // cell not yet vacated: buffer is full
		default:
			// another producer raced ahead of us; retry with fresh tail
		}
	}
}

// empty reports whether the buffer currently holds no tasks. Racy, like
// every other emptiness check in this package: a hint, not a proof.
func (b *boundedBuffer) empty() bool {
	return b.head.Load() == b.tail.Load()
}

// getOne dequeues a single task, returning nil if the buffer is empty.
func (b *boundedBuffer) getOne() *Task {
	for {
		pos := b.head.Load()
		cell := &b.cells[pos%bufferSlots]
		seq := cell.sequence.Load()
		diff := int64(seq) - int64(pos+1)
		switch {
		case diff == 0:
			if b.head.CompareAndSwap(pos, pos+1) {
				t := cell.task
				cell.task = nil
				cell.sequence.Store(pos + bufferSlots)
				return t
			}
		case diff < 0:
			return nil // nothing produced yet
		default:
			// another consumer raced ahead of us; retry with fresh head
		}
	}
}
