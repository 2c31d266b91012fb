package pqueue

import (
	"container/heap"
	"errors"
	"sort"
)

// ErrEmpty is returned by PopMin and Peek on an empty queue.
var ErrEmpty = errors.New("pqueue: queue is empty")

// entry is one queued item with its ordering keys.
type entry[T comparable] struct {
	item     T
	priority float64
	seq      uint64 // insertion order, breaks priority ties
	index    int    // position in the heap, maintained by Swap
}

// entryHeap implements heap.Interface ordered by (priority, seq).
type entryHeap[T comparable] []*entry[T]

func (h entryHeap[T]) Len() int { return len(h) }

func (h entryHeap[T]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}

	return h[i].seq < h[j].seq
}

func (h entryHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap[T]) Push(x any) {
	e := x.(*entry[T])
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]

	return e
}

// Queue is a min-priority queue of distinct items.
// The zero value is ready to use.
type Queue[T comparable] struct {
	heap  entryHeap[T]
	index map[T]*entry[T]
	seq   uint64
}

// New returns an empty queue with room for capacity items.
func New[T comparable](capacity int) *Queue[T] {
	if capacity < 0 {
		capacity = 0
	}

	return &Queue[T]{
		heap:  make(entryHeap[T], 0, capacity),
		index: make(map[T]*entry[T], capacity),
	}
}

// Push inserts item with the given priority. If item is already queued its
// priority is replaced instead, so the queue never holds duplicates.
func (q *Queue[T]) Push(item T, priority float64) {
	if q.Update(item, priority) {
		return
	}
	if q.index == nil {
		q.index = make(map[T]*entry[T])
	}
	e := &entry[T]{item: item, priority: priority, seq: q.seq}
	q.seq++
	heap.Push(&q.heap, e)
	q.index[item] = e
}

// Update changes the priority of a queued item and reports whether it was
// present.
func (q *Queue[T]) Update(item T, priority float64) bool {
	e, ok := q.index[item]
	if !ok {
		return false
	}
	e.priority = priority
	heap.Fix(&q.heap, e.index)

	return true
}

// PopMin removes and returns the item with the lowest priority.
func (q *Queue[T]) PopMin() (T, float64, error) {
	if len(q.heap) == 0 {
		var zero T
		return zero, 0, ErrEmpty
	}
	e := heap.Pop(&q.heap).(*entry[T])
	delete(q.index, e.item)

	return e.item, e.priority, nil
}

// Peek returns the lowest-priority item without removing it.
func (q *Queue[T]) Peek() (T, float64, error) {
	if len(q.heap) == 0 {
		var zero T
		return zero, 0, ErrEmpty
	}

	return q.heap[0].item, q.heap[0].priority, nil
}

// Remove deletes item from the queue and reports whether it was present.
func (q *Queue[T]) Remove(item T) bool {
	e, ok := q.index[item]
	if !ok {
		return false
	}
	heap.Remove(&q.heap, e.index)
	delete(q.index, item)

	return true
}

// Contains reports whether item is queued.
func (q *Queue[T]) Contains(item T) bool {
	_, ok := q.index[item]
	return ok
}

// Priority returns the queued priority of item.
func (q *Queue[T]) Priority(item T) (float64, bool) {
	e, ok := q.index[item]
	if !ok {
		return 0, false
	}

	return e.priority, true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.heap) }

// Items returns the queued items in the order PopMin would return them.
// The queue is not modified.
func (q *Queue[T]) Items() []T {
	sorted := make(entryHeap[T], len(q.heap))
	copy(sorted, q.heap)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].priority != sorted[j].priority {
			return sorted[i].priority < sorted[j].priority
		}
		return sorted[i].seq < sorted[j].seq
	})
	out := make([]T, len(sorted))
	for i, e := range sorted {
		out[i] = e.item
	}

	return out
}
