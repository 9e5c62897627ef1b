package hardware

import "sync"

// DefaultQueueDepth bounds the hand-off queue. Late presses inside the
// current mole window are still valid, but an unbounded backlog would mean
// a stuck game, so overflow drops the oldest signal.
const DefaultQueueDepth = 64

// Queue is the bounded hand-off between the polling goroutine and the game
// loop. Single producer, single consumer; the mutex only guards the
// hand-off itself.
type Queue struct {
	mu      sync.Mutex
	buf     []Signal
	depth   int
	dropped uint64
}

// NewQueue creates a queue holding at most depth signals.
func NewQueue(depth int) *Queue {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	return &Queue{depth: depth}
}

// Push appends a signal, evicting the oldest one on overflow.
func (q *Queue) Push(sig Signal) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buf) >= q.depth {
		q.buf = q.buf[1:]
		q.dropped++
	}
	q.buf = append(q.buf, sig)
}

// Drain returns and clears all queued signals in arrival order.
func (q *Queue) Drain() []Signal {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.buf
	q.buf = nil
	return out
}

// Dropped reports how many signals were evicted on overflow.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
