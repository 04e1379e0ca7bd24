package utils

import (
	"iter"

	"github.com/oomph-ac/motion/oerror"
)

// CircularQueue keeps the most recent items up to a fixed capacity. Appending to a full queue
// overwrites the oldest item.
type CircularQueue[T any] struct {
	items []T
	head  int
	size  int
}

// NewCircularQueue returns an empty queue holding at most capacity items.
func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	return &CircularQueue[T]{items: make([]T, max(capacity, 0))}
}

// Append adds item as the newest element.
func (q *CircularQueue[T]) Append(item T) error {
	if len(q.items) == 0 {
		return oerror.New("circular queue: append on zero-capacity queue")
	}
	q.items[(q.head+q.size)%len(q.items)] = item
	if q.size == len(q.items) {
		q.head = (q.head + 1) % len(q.items)
	} else {
		q.size++
	}
	return nil
}

// Get returns the element at position index, 0 being the oldest.
func (q *CircularQueue[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= q.size {
		return zero, oerror.New("circular queue: index %d out of range [0, %d)", index, q.size)
	}
	return q.items[(q.head+index)%len(q.items)], nil
}

// Iter yields the elements from oldest to newest.
func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range q.size {
			if !yield(q.items[(q.head+i)%len(q.items)]) {
				return
			}
		}
	}
}

// Len returns the number of stored elements.
func (q *CircularQueue[T]) Len() int {
	return q.size
}

// Cap returns the maximum number of stored elements.
func (q *CircularQueue[T]) Cap() int {
	return len(q.items)
}

// Clear removes every element.
func (q *CircularQueue[T]) Clear() {
	clear(q.items)
	q.head, q.size = 0, 0
}
