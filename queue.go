package canopy

import "sync/atomic"

// mpscQueue is a lock-free FIFO. Any goroutine may push; draining happens on
// the UI goroutine. It must be initialized with init before use.
//
// Nodes are never recycled: a producer may still hold a node the consumer
// has already passed.
type mpscQueue[T any] struct {
	head atomic.Pointer[queueNode[T]]
	tail atomic.Pointer[queueNode[T]]
	len  atomic.Int64
}

type queueNode[T any] struct {
	next atomic.Pointer[queueNode[T]]
	v    T
}

func (q *mpscQueue[T]) init() {
	stub := &queueNode[T]{}
	q.head.Store(stub)
	q.tail.Store(stub)
}

// push appends v and returns the queue length after the push.
func (q *mpscQueue[T]) push(v T) int {
	n := &queueNode[T]{v: v}

	for {
		last := q.tail.Load()
		next := last.next.Load()
		if q.tail.Load() != last {
			continue
		}
		if next != nil {
			q.tail.CompareAndSwap(last, next)
			continue
		}
		if last.next.CompareAndSwap(nil, n) {
			q.tail.CompareAndSwap(last, n)
			return int(q.len.Add(1))
		}
	}
}

// pop removes the oldest value. ok is false when the queue is empty.
func (q *mpscQueue[T]) pop() (v T, ok bool) {
	for {
		first := q.head.Load()
		last := q.tail.Load()
		next := first.next.Load()
		if first != q.head.Load() {
			continue
		}
		if first == last {
			if next == nil {
				return v, false
			}
			q.tail.CompareAndSwap(last, next)
			continue
		}
		v = next.v
		if q.head.CompareAndSwap(first, next) {
			q.len.Add(-1)
			var zero T
			next.v = zero
			return v, true
		}
	}
}

func (q *mpscQueue[T]) size() int {
	return int(q.len.Load())
}
