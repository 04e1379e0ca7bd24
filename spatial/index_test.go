package spatial

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
)

func handle(i uint32) entity.Handle {
	return entity.Handle{Index: i, Gen: 1}
}

func TestNewIndexRoundsBuckets(t *testing.T) {
	for _, tc := range []struct{ in, want int }{{1, 1}, {3, 4}, {64, 64}, {100, 128}, {0, 1}} {
		if got := NewIndex(tc.in, 8).Buckets(); got != tc.want {
			t.Fatalf("NewIndex(%d): expected %d buckets, got %d", tc.in, tc.want, got)
		}
	}
}

func TestInsertUniqueDeduplicatesPairs(t *testing.T) {
	idx := NewIndex(16, 32)
	if !idx.InsertUnique(EntityPair(handle(1), handle(2)), SamePair) {
		t.Fatalf("first insertion should succeed")
	}
	if idx.InsertUnique(EntityPair(handle(2), handle(1)), SamePair) {
		t.Fatalf("reversed pair should be a duplicate")
	}
	if idx.InsertUnique(EntityPair(handle(1), handle(2)), SamePair) {
		t.Fatalf("repeated pair should be a duplicate")
	}
	if !idx.InsertUnique(EntityTile(handle(1), 7), SamePair) {
		t.Fatalf("tile candidate is a different contact")
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 candidates, got %d", idx.Len())
	}

	total := 0
	for _, bucket := range idx.buckets {
		total += len(bucket)
	}
	if total != 2 {
		t.Fatalf("expected bucket occupancy to match candidates, got %d", total)
	}
}

func TestInsertUniquePoolExhaustion(t *testing.T) {
	idx := NewIndex(4, 2)
	idx.InsertUnique(EntityTile(handle(1), 1), SamePair)
	idx.InsertUnique(EntityTile(handle(1), 2), SamePair)
	if idx.InsertUnique(EntityTile(handle(1), 3), SamePair) {
		t.Fatalf("insertion into a full pool should fail")
	}
	if idx.Rejected() != 1 {
		t.Fatalf("expected one rejection, got %d", idx.Rejected())
	}

	idx.Clear()
	if idx.Len() != 0 || idx.Rejected() != 0 || idx.Capacity() != 2 {
		t.Fatalf("clear should empty the index and keep its capacity")
	}
	if !idx.InsertUnique(EntityTile(handle(1), 3), SamePair) {
		t.Fatalf("insertion after clear should succeed")
	}
}

func TestForgetDropsReferences(t *testing.T) {
	idx := NewIndex(8, 8)
	idx.InsertUnique(EntityPair(handle(1), handle(2)), SamePair)
	idx.InsertUnique(EntityPair(handle(2), handle(3)), SamePair)
	idx.InsertUnique(EntityTile(handle(2), 4), SamePair)
	idx.InsertUnique(EntityTile(handle(3), 4), SamePair)

	if n := idx.Forget(handle(2)); n != 3 {
		t.Fatalf("expected 3 forgotten candidates, got %d", n)
	}
	count := 0
	idx.Each(func(c *Candidate) bool {
		if c.Involves(handle(2)) {
			t.Fatalf("forgotten entity still referenced by %+v", *c)
		}
		count++
		return true
	})
	if count != 1 {
		t.Fatalf("expected one remaining candidate, got %d", count)
	}
}

func TestSweepInterval(t *testing.T) {
	a := cube.Box(0, 0, 0, 1, 1, 1)
	b := cube.Box(2, 0, 0, 3, 1, 1)

	tMin, tMax := SweepInterval(a, b, mgl32.Vec3{-2, 0, 0})
	if tMin != 0.5 || tMax != 1 {
		t.Fatalf("expected [0.5, 1], got [%v, %v]", tMin, tMax)
	}
	if tMin, tMax = SweepInterval(a, b, mgl32.Vec3{1, 0, 0}); tMin <= tMax {
		t.Fatalf("receding boxes should not impact, got [%v, %v]", tMin, tMax)
	}
	if tMin, tMax = SweepInterval(a, cube.Box(0.5, 0, 0, 1.5, 1, 1), mgl32.Vec3{}); tMin != 0 || tMax != 1 {
		t.Fatalf("overlapping boxes should overlap all tick, got [%v, %v]", tMin, tMax)
	}
}

func TestOverlapVolume(t *testing.T) {
	if v := OverlapVolume(cube.Box(0, 0, 0, 2, 2, 2), cube.Box(1, 1, 1, 3, 3, 3)); v != 1 {
		t.Fatalf("expected volume 1, got %v", v)
	}
	if v := OverlapVolume(cube.Box(0, 0, 0, 1, 1, 1), cube.Box(1, 0, 0, 2, 1, 1)); v != 0 {
		t.Fatalf("touching boxes share no volume, got %v", v)
	}
}
