package utils

import (
	"slices"
	"testing"
)

func TestCircularQueueOverwritesOldest(t *testing.T) {
	q := NewCircularQueue[int](3)
	for i := 1; i <= 5; i++ {
		if err := q.Append(i); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := slices.Collect(q.Iter()); !slices.Equal(got, []int{3, 4, 5}) {
		t.Fatalf("expected [3 4 5], got %v", got)
	}
	if v, err := q.Get(0); err != nil || v != 3 {
		t.Fatalf("expected oldest 3, got %d (%v)", v, err)
	}
	if _, err := q.Get(3); err == nil {
		t.Fatalf("expected out of range error")
	}
	q.Clear()
	if q.Len() != 0 || q.Cap() != 3 {
		t.Fatalf("clear should keep capacity and drop items")
	}
}

func TestCircularQueueZeroCapacity(t *testing.T) {
	q := NewCircularQueue[int](0)
	if err := q.Append(1); err == nil {
		t.Fatalf("expected append on a zero-capacity queue to fail")
	}
}
