// Package expiry keeps spoiler ids ordered by their expiration deadline.
package expiry

import (
	"container/heap"
	"sync"
	"time"
)

// Handle identifies a scheduled entry so it can be cancelled
type Handle struct {
	seq uint64
}

type entry struct {
	id       string
	deadline time.Time
	seq      uint64
	index    int
}

// queue is a min-heap on (deadline, seq). seq grows with every insert, so
// entries sharing a deadline pop in insertion order.
type queue []*entry

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].deadline.Equal(q[j].deadline) {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline.Before(q[j].deadline)
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// Index is a concurrency-safe delay queue of ids
type Index struct {
	mu      sync.Mutex
	queue   queue
	entries map[uint64]*entry
	nextSeq uint64
	wakeup  chan struct{}
	timeNow func() time.Time
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{
		entries: make(map[uint64]*entry),
		wakeup:  make(chan struct{}, 1),
		timeNow: time.Now,
	}
}

// SetTimeNow replaces the clock. Tests only.
func (x *Index) SetTimeNow(timeNow func() time.Time) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.timeNow = timeNow
}

// Schedule registers id to expire d from now
func (x *Index) Schedule(id string, d time.Duration) Handle {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.nextSeq++
	e := &entry{
		id:       id,
		deadline: x.timeNow().Add(d),
		seq:      x.nextSeq,
	}
	heap.Push(&x.queue, e)
	x.entries[e.seq] = e

	if e.index == 0 {
		x.notify()
	}

	return Handle{seq: e.seq}
}

// Cancel removes a pending entry. It returns false if the entry already
// fired or was cancelled before.
func (x *Index) Cancel(h Handle) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	e, ok := x.entries[h.seq]
	if !ok {
		return false
	}
	heap.Remove(&x.queue, e.index)
	delete(x.entries, h.seq)
	return true
}

// PollExpired pops the next id whose deadline has passed. It returns false
// when nothing is due yet; callers should wait for NextDeadline or Wakeup
// before polling again.
func (x *Index) PollExpired() (string, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if len(x.queue) == 0 {
		return "", false
	}

	head := x.queue[0]
	if head.deadline.After(x.timeNow()) {
		return "", false
	}

	heap.Pop(&x.queue)
	delete(x.entries, head.seq)
	return head.id, true
}

// NextDeadline returns the earliest pending deadline
func (x *Index) NextDeadline() (time.Time, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if len(x.queue) == 0 {
		return time.Time{}, false
	}
	return x.queue[0].deadline, true
}

// Len returns the number of pending entries
func (x *Index) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.queue)
}

// Wakeup receives a value whenever a newly scheduled entry becomes the
// earliest one
func (x *Index) Wakeup() <-chan struct{} {
	return x.wakeup
}

func (x *Index) notify() {
	select {
	case x.wakeup <- struct{}{}:
	default:
	}
}
