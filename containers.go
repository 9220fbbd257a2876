package binser

import (
	"cmp"
	"container/heap"
	"iter"
)

// Stack is a LIFO container.
type Stack[T any] struct {
	items []T // bottom first
}

// NewStack returns a stack with items pushed in order, so the last one is on top.
func NewStack[T any](items ...T) *Stack[T] {
	return &Stack[T]{items: append([]T(nil), items...)}
}

func (s *Stack[T]) Push(v T)    { s.items = append(s.items, v) }
func (s *Stack[T]) Len() int    { return len(s.items) }
func (s *Stack[T]) Empty() bool { return len(s.items) == 0 }

func (s *Stack[T]) Top() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Stack[T]) Pop() (T, bool) {
	v, ok := s.Top()
	if ok {
		var zero T
		s.items[len(s.items)-1] = zero
		s.items = s.items[:len(s.items)-1]
	}
	return v, ok
}

// Queue is a FIFO container.
type Queue[T any] struct {
	items []T
	head  int
}

// NewQueue returns a queue with items enqueued in order.
func NewQueue[T any](items ...T) *Queue[T] {
	return &Queue[T]{items: append([]T(nil), items...)}
}

func (q *Queue[T]) Push(v T)    { q.items = append(q.items, v) }
func (q *Queue[T]) Len() int    { return len(q.items) - q.head }
func (q *Queue[T]) Empty() bool { return q.Len() == 0 }

func (q *Queue[T]) Front() (T, bool) {
	if q.Empty() {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

func (q *Queue[T]) Back() (T, bool) {
	if q.Empty() {
		var zero T
		return zero, false
	}
	return q.items[len(q.items)-1], true
}

func (q *Queue[T]) Pop() (T, bool) {
	v, ok := q.Front()
	if !ok {
		return v, false
	}
	var zero T
	q.items[q.head] = zero
	q.head++
	switch {
	case q.head == len(q.items):
		q.items, q.head = q.items[:0], 0
	case q.head > 32 && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items, q.head = q.items[:n], 0
	}
	return v, true
}

// PriorityQueue pops its highest-priority element first. less(a, b) reports
// whether a has lower priority than b, so a plain < gives a max-queue.
type PriorityQueue[T any] struct {
	h pqHeap[T]
}

// NewPriorityQueue returns a queue ordered by less holding items.
func NewPriorityQueue[T any](less func(a, b T) bool, items ...T) *PriorityQueue[T] {
	if less == nil {
		panic("binser: less can't be nil")
	}
	pq := &PriorityQueue[T]{h: pqHeap[T]{items: append([]T(nil), items...), less: less}}
	heap.Init(&pq.h)
	return pq
}

// NewMaxQueue returns a queue that pops the largest element first.
func NewMaxQueue[T cmp.Ordered](items ...T) *PriorityQueue[T] {
	return NewPriorityQueue(cmp.Less[T], items...)
}

func (pq *PriorityQueue[T]) Push(v T)    { heap.Push(&pq.h, v) }
func (pq *PriorityQueue[T]) Len() int    { return len(pq.h.items) }
func (pq *PriorityQueue[T]) Empty() bool { return len(pq.h.items) == 0 }

func (pq *PriorityQueue[T]) Top() (T, bool) {
	if pq.Empty() {
		var zero T
		return zero, false
	}
	return pq.h.items[0], true
}

func (pq *PriorityQueue[T]) Pop() (T, bool) {
	if pq.Empty() {
		var zero T
		return zero, false
	}
	return heap.Pop(&pq.h).(T), true
}

type pqHeap[T any] struct {
	items []T
	less  func(a, b T) bool
}

func (h *pqHeap[T]) Len() int           { return len(h.items) }
func (h *pqHeap[T]) Less(i, j int) bool { return h.less(h.items[j], h.items[i]) }
func (h *pqHeap[T]) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *pqHeap[T]) Push(x any)         { h.items = append(h.items, x.(T)) }

func (h *pqHeap[T]) Pop() any {
	n := len(h.items) - 1
	v := h.items[n]
	var zero T
	h.items[n] = zero
	h.items = h.items[:n]
	return v
}

// Deque is a double-ended queue.
type Deque[T any] struct {
	front []T // reversed: front[len-1] is the first element
	back  []T
}

// NewDeque returns a deque holding items front to back.
func NewDeque[T any](items ...T) *Deque[T] {
	return &Deque[T]{back: append([]T(nil), items...)}
}

func (d *Deque[T]) PushFront(v T) { d.front = append(d.front, v) }
func (d *Deque[T]) PushBack(v T)  { d.back = append(d.back, v) }
func (d *Deque[T]) Len() int      { return len(d.front) + len(d.back) }
func (d *Deque[T]) Empty() bool   { return d.Len() == 0 }

// At returns the i-th element counted from the front.
func (d *Deque[T]) At(i int) T {
	if i < len(d.front) {
		return d.front[len(d.front)-1-i]
	}
	return d.back[i-len(d.front)]
}

func (d *Deque[T]) Front() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.At(0), true
}

func (d *Deque[T]) Back() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.At(d.Len() - 1), true
}

func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	switch {
	case len(d.front) > 0:
		n := len(d.front) - 1
		v := d.front[n]
		d.front[n] = zero
		d.front = d.front[:n]
		return v, true
	case len(d.back) > 0:
		v := d.back[0]
		d.back[0] = zero
		d.back = d.back[1:]
		return v, true
	}
	return zero, false
}

func (d *Deque[T]) PopBack() (T, bool) {
	var zero T
	switch {
	case len(d.back) > 0:
		n := len(d.back) - 1
		v := d.back[n]
		d.back[n] = zero
		d.back = d.back[:n]
		return v, true
	case len(d.front) > 0:
		v := d.front[0]
		d.front[0] = zero
		d.front = d.front[1:]
		return v, true
	}
	return zero, false
}

// All yields the elements front to back.
func (d *Deque[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range d.Len() {
			if !yield(d.At(i)) {
				return
			}
		}
	}
}
