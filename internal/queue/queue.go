// Package queue provides the bounded single-producer/single-consumer
// ring buffer that hands input frames from the network transport
// goroutine to the rollback driver goroutine without a mutex.
//
// Grounded in the teacher's internal/game/spatial/lockfree_queue.go
// SPSCQueue (cache-line-padded head/tail, plain atomic load/store, no
// CAS), narrowed to the one queue shape this module actually needs:
// the MPSC LockFreeQueue and AlignedAlloc helper from the same file
// have no producer-contention or SIMD use case here and are dropped.
package queue

import "sync/atomic"

// cacheLineSize is the typical CPU cache line size (64 bytes on
// x86-64); padding keeps head and tail off the same line so the
// transport goroutine's writes don't invalidate the driver goroutine's
// reads.
const cacheLineSize = 64

type padding [cacheLineSize]byte

// SPSC is a bounded single-producer single-consumer ring buffer.
// Capacity is rounded up to the next power of two so index wrapping
// is a mask instead of a modulo.
type SPSC[T any] struct {
	_pad0 padding
	head  uint64
	_pad1 padding
	tail  uint64
	_pad2 padding
	mask  uint64
	data  []T
}

// New creates an SPSC queue with at least the requested capacity.
func New[T any](capacity int) *SPSC[T] {
	c := 1
	for c < capacity {
		c <<= 1
	}
	return &SPSC[T]{
		mask: uint64(c - 1),
		data: make([]T, c),
	}
}

// TryPush is called only by the producer (the transport goroutine). It
// returns false without blocking if the queue is full.
func (q *SPSC[T]) TryPush(item T) bool {
	head := atomic.LoadUint64(&q.head)
	tail := atomic.LoadUint64(&q.tail)

	if head-tail > q.mask {
		return false
	}

	q.data[head&q.mask] = item
	atomic.StoreUint64(&q.head, head+1)
	return true
}

// TryPop is called only by the consumer (the rollback driver). It
// returns false without blocking if the queue is empty.
func (q *SPSC[T]) TryPop() (T, bool) {
	var zero T
	tail := atomic.LoadUint64(&q.tail)
	head := atomic.LoadUint64(&q.head)

	if tail >= head {
		return zero, false
	}

	item := q.data[tail&q.mask]
	atomic.StoreUint64(&q.tail, tail+1)
	return item, true
}

// Len returns the approximate number of queued items; it is a
// snapshot and may be stale by the time the caller reads it.
func (q *SPSC[T]) Len() int {
	head := atomic.LoadUint64(&q.head)
	tail := atomic.LoadUint64(&q.tail)
	if head < tail {
		return 0
	}
	return int(head - tail)
}

// Cap returns the queue's rounded-up capacity.
func (q *SPSC[T]) Cap() int {
	return int(q.mask + 1)
}
