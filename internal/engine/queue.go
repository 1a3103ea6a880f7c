package engine

import (
	"sync"

	"taskboard/internal/state"
)

// op is one queued transition.
type op struct {
	name string
	fn   func(*state.State) error
	done chan error // nil for fire-and-forget posts
	// readOnly ops see the live state and never commit.
	readOnly bool
}

// opQueue is an unbounded FIFO. Enqueue never blocks, so fetch completions
// can always be posted even while the writer is busy.
type opQueue struct {
	mu     sync.Mutex
	ops    []op
	closed bool
	signal chan struct{} // buffered, size 1
}

func newOpQueue() *opQueue {
	return &opQueue{
		ops:    make([]op, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue returns false once the queue is closed.
func (q *opQueue) Enqueue(o op) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.ops = append(q.ops, o)
	q.notify()
	return true
}

func (q *opQueue) TryDequeue() (op, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ops) == 0 {
		return op{}, false
	}
	o := q.ops[0]
	q.ops[0] = op{}
	if len(q.ops) == 1 {
		q.ops = q.ops[:0]
	} else {
		q.ops = q.ops[1:]
	}
	return o, true
}

// Drained reports whether the queue is closed and empty.
func (q *opQueue) Drained() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed && len(q.ops) == 0
}

func (q *opQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.notify()
}

func (q *opQueue) Wait() <-chan struct{} { return q.signal }

func (q *opQueue) notify() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}
