package spatial

import (
	"math/bits"

	"github.com/oomph-ac/motion/entity"
	"github.com/zeebo/xxh3"
)

// Index is a hashed set of collision candidates. Buckets hold integer handles into a fixed
// arena, so clearing and refilling it every tick does not allocate.
type Index struct {
	buckets  [][]int32
	mask     uint64
	arena    []Candidate
	rejected int
}

// NewIndex allocates an index with bucketCount buckets, rounded up to a power of two, and room
// for poolSize candidates.
func NewIndex(bucketCount, poolSize int) *Index {
	if bucketCount < 1 {
		bucketCount = 1
	}
	if bucketCount&(bucketCount-1) != 0 {
		bucketCount = 1 << bits.Len(uint(bucketCount))
	}
	if poolSize < 0 {
		poolSize = 0
	}
	return &Index{
		buckets: make([][]int32, bucketCount),
		mask:    uint64(bucketCount - 1),
		arena:   make([]Candidate, 0, poolSize),
	}
}

// InsertUnique adds c unless an equal candidate is already stored. It returns false when c was
// a duplicate or when the arena is exhausted; the latter is counted in Rejected.
func (idx *Index) InsertUnique(c Candidate, equal func(a, b Candidate) bool) bool {
	k := c.key()
	b := xxh3.Hash(k[:]) & idx.mask

	for _, h := range idx.buckets[b] {
		if equal(idx.arena[h], c) {
			return false
		}
	}
	if len(idx.arena) == cap(idx.arena) {
		idx.rejected++
		return false
	}

	idx.arena = append(idx.arena, c)
	idx.buckets[b] = append(idx.buckets[b], int32(len(idx.arena)-1))
	return true
}

// Clear empties the index while keeping its memory.
func (idx *Index) Clear() {
	for i := range idx.buckets {
		idx.buckets[i] = idx.buckets[i][:0]
	}
	idx.arena = idx.arena[:0]
	idx.rejected = 0
}

// Each calls fn with every live candidate in insertion order until fn returns false.
func (idx *Index) Each(fn func(c *Candidate) bool) {
	for i := range idx.arena {
		if idx.arena[i].dead {
			continue
		}
		if !fn(&idx.arena[i]) {
			return
		}
	}
}

// Forget marks every candidate involving h as dead and returns how many were dropped.
func (idx *Index) Forget(h entity.Handle) int {
	n := 0
	for i := range idx.arena {
		if !idx.arena[i].dead && idx.arena[i].Involves(h) {
			idx.arena[i].dead = true
			n++
		}
	}
	return n
}

// Len returns the number of stored candidates, dead ones included.
func (idx *Index) Len() int {
	return len(idx.arena)
}

// Capacity returns the size of the arena.
func (idx *Index) Capacity() int {
	return cap(idx.arena)
}

// Buckets returns the number of buckets.
func (idx *Index) Buckets() int {
	return len(idx.buckets)
}

// Rejected returns how many insertions failed on a full arena since the last Clear.
func (idx *Index) Rejected() int {
	return idx.rejected
}
