package simulation

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/motion/debug"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/spatial"
	"github.com/oomph-ac/motion/world"
)

// broadPhase rebuilds the proximity grid and the candidate index from scratch. Nothing found
// in an earlier tick survives into this one.
func (s Simulator) broadPhase(w *world.World, dt float32) {
	w.Index.Clear()
	w.Grid.Clear()
	margin := w.Settings.Platform.Tolerance

	w.Entities.Each(func(e *entity.Entity) bool {
		if e.Attached() {
			return true
		}
		e.Support = entity.NoHandle
		e.TileContact = false
		if !w.Grid.Insert(e.Handle, e.SweptBox(dt, margin)) {
			w.Dbg.Notify(debug.ModeCollision, true, "%s: grid cell full, contacts skipped", e.Name)
		}
		return true
	})

	w.Entities.Each(func(e *entity.Entity) bool {
		if e.Attached() {
			return true
		}
		w.Grid.Query(e.SweptBox(dt, margin), func(h entity.Handle) bool {
			if !e.Handle.Less(h) {
				return true
			}
			if o, ok := w.Entity(h); ok && !o.Attached() {
				s.insertPair(w, e, o, dt)
			}
			return true
		})
		s.insertTiles(w, e, dt)
		return true
	})

	if n := w.Index.Rejected(); n > 0 {
		w.Log.Warn("candidate pool exhausted", "tick", w.Tick(), "rejected", n, "capacity", w.Index.Capacity(), "buckets", w.Index.Buckets())
	}
	if w.Dbg.Enabled(debug.ModeCollision) {
		w.Dbg.NotifyData(debug.ModeCollision, "broad phase", debug.Data(
			"tick", w.Tick(),
			"candidates", w.Index.Len(),
			"buckets", w.Index.Buckets(),
			"grid_drops", w.Grid.Dropped(),
		))
	}
}

// insertPair records a candidate between a and b, where a is ordered before b.
func (s Simulator) insertPair(w *world.World, a, b *entity.Entity, dt float32) {
	c := spatial.EntityPair(a.Handle, b.Handle)
	boxA, boxB := a.Box(), b.Box()
	c.TMin, c.TMax = spatial.SweepInterval(boxA, boxB, b.Vel.Sub(a.Vel).Mul(dt))
	c.Volume = spatial.OverlapVolume(boxA, boxB)
	w.Index.InsertUnique(c, spatial.SamePair)
}

// insertTiles records a candidate for every tile near e's wall disk that e cannot pass.
func (s Simulator) insertTiles(w *world.World, e *entity.Entity, dt float32) {
	r := e.Radius
	disk := cube.Box(
		e.Pos[0]-r, e.Pos[1]-r, e.Pos[2],
		e.Pos[0]+r, e.Pos[1]+r, e.Pos[2]+e.BumpHeight,
	).Extend(e.Vel.Mul(dt))

	w.Mesh.TilesOverlapping(disk, func(index int32, flags game.TileFlags) {
		if flags.Has(e.StopMask) {
			w.Index.InsertUnique(spatial.EntityTile(e.Handle, index), spatial.SamePair)
		}
	})
	// The mesh edge has no tile to record a candidate for.
	if w.Mesh.BlockedNear(disk, e.StopMask&game.TileOffMesh) {
		e.TileContact = true
	}
}
