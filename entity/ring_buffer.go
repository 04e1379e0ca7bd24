package entity

import "github.com/go-gl/mathgl/mgl32"

// SafePosition is a position at which an entity had no wall pressure.
type SafePosition struct {
	Tick uint64
	Pos  mgl32.Vec3
}

// RingBuffer is a fixed-size circular buffer of safe positions.
type RingBuffer struct {
	buffer   []SafePosition
	capacity int
	head     int // next write position
	size     int
}

// NewRingBuffer creates a new ring buffer with the specified capacity.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{
		buffer:   make([]SafePosition, capacity),
		capacity: capacity,
	}
}

// Add inserts a new position, overwriting the oldest one when full.
func (rb *RingBuffer) Add(pos SafePosition) {
	rb.buffer[rb.head] = pos
	rb.head = (rb.head + 1) % rb.capacity
	if rb.size < rb.capacity {
		rb.size++
	}
}

// Latest returns the most recently added position.
func (rb *RingBuffer) Latest() (SafePosition, bool) {
	if rb.size == 0 {
		return SafePosition{}, false
	}
	return rb.buffer[(rb.head-1+rb.capacity)%rb.capacity], true
}

// Size returns the number of stored positions.
func (rb *RingBuffer) Size() int {
	return rb.size
}

// Clear removes all positions.
func (rb *RingBuffer) Clear() {
	rb.head = 0
	rb.size = 0
}
