package spatial

import (
	"encoding/binary"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
)

// Kind is the kind of a collision candidate.
type Kind uint8

const (
	KindEntity Kind = iota
	KindTile
)

// Candidate is a potential contact found by the broad phase. For KindEntity, A and B are the
// two entities with A ordered before B. For KindTile, A is the entity and Tile the tile index.
type Candidate struct {
	Kind Kind
	A, B entity.Handle
	Tile int32
	// TMin and TMax bound the part of the tick during which the two boxes overlap.
	TMin, TMax float32
	// Volume is the overlap volume of the boxes at the start of the tick.
	Volume float32

	dead bool
}

// EntityPair returns a candidate for two entities, normalising their order.
func EntityPair(a, b entity.Handle) Candidate {
	if b.Less(a) {
		a, b = b, a
	}
	return Candidate{Kind: KindEntity, A: a, B: b, Tile: -1}
}

// EntityTile returns a candidate between an entity and a mesh tile.
func EntityTile(e entity.Handle, tile int32) Candidate {
	return Candidate{Kind: KindTile, A: e, Tile: tile}
}

// SamePair reports whether two candidates describe the same contact.
func SamePair(a, b Candidate) bool {
	return a.Kind == b.Kind && a.A == b.A && a.B == b.B && a.Tile == b.Tile
}

// Involves reports whether h takes part in the candidate.
func (c Candidate) Involves(h entity.Handle) bool {
	return c.A == h || (c.Kind == KindEntity && c.B == h)
}

// Impacts reports whether the contact happens within the tick.
func (c Candidate) Impacts() bool {
	return c.TMin <= c.TMax && c.TMin <= 1 && c.TMax >= 0
}

func (c Candidate) key() [21]byte {
	var k [21]byte
	k[0] = byte(c.Kind)
	binary.LittleEndian.PutUint32(k[1:], c.A.Index)
	binary.LittleEndian.PutUint32(k[5:], c.A.Gen)
	binary.LittleEndian.PutUint32(k[9:], c.B.Index)
	binary.LittleEndian.PutUint32(k[13:], c.B.Gen)
	binary.LittleEndian.PutUint32(k[17:], uint32(c.Tile))
	return k
}

// SweepInterval returns the interval of the tick, in [0, 1], during which box b moving with
// velocity vel relative to a overlaps a. Touching counts as overlapping. An empty interval is
// returned as TMin > TMax.
func SweepInterval(a, b cube.BBox, vel mgl32.Vec3) (float32, float32) {
	tMin, tMax := float32(0), float32(1)
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		if vel[i] == 0 {
			if bMax[i] < aMin[i] || bMin[i] > aMax[i] {
				return 1, 0
			}
			continue
		}
		t0 := (aMin[i] - bMax[i]) / vel[i]
		t1 := (aMax[i] - bMin[i]) / vel[i]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math32.Max(tMin, t0)
		tMax = math32.Min(tMax, t1)
		if tMin > tMax {
			return 1, 0
		}
	}
	return tMin, tMax
}

// OverlapVolume returns the volume shared by two boxes.
func OverlapVolume(a, b cube.BBox) float32 {
	vol := float32(1)
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		d := math32.Min(aMax[i], bMax[i]) - math32.Max(aMin[i], bMin[i])
		if d <= 0 {
			return 0
		}
		vol *= d
	}
	return vol
}
