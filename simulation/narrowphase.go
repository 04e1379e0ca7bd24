package simulation

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/attach"
	"github.com/oomph-ac/motion/debug"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/spatial"
	"github.com/oomph-ac/motion/world"
)

// narrowPhase resolves every candidate found by the broad phase. Pairs are handled in the
// order they were found, which follows entity enumeration order.
func (s Simulator) narrowPhase(w *world.World, dt float32) {
	w.Index.Each(func(c *spatial.Candidate) bool {
		switch c.Kind {
		case spatial.KindTile:
			if e, ok := w.Entity(c.A); ok {
				e.TileContact = true
			}
		case spatial.KindEntity:
			a, okA := w.Entity(c.A)
			b, okB := w.Entity(c.B)
			if !okA || !okB || a.Attached() || b.Attached() {
				return true
			}
			s.resolvePair(w, c, a, b, dt)
		}
		return true
	})
}

func (s Simulator) resolvePair(w *world.World, c *spatial.Candidate, a, b *entity.Entity, dt float32) {
	tol := w.Settings.Platform.Tolerance
	if s.support(w, a, b, tol) || s.support(w, b, a, tol) {
		return
	}
	if s.mount(w, a, b, tol) || s.mount(w, b, a, tol) {
		return
	}
	if a.Item || b.Item || !c.Impacts() {
		return
	}
	s.bump(w, c, a, b)
}

// support makes platform p the support of e when p's top is at or above e's feet and no more
// than tol higher. The highest platform under an entity wins.
func (s Simulator) support(w *world.World, p, e *entity.Entity, tol float32) bool {
	if !p.Platform || !standsOn(e, p, tol) {
		return false
	}
	if cur, ok := w.Entity(e.Support); ok && cur.Top() >= p.Top() {
		return true
	}
	e.Support = p.Handle
	return true
}

// mount seats rider on m when it lands on m's back.
func (s Simulator) mount(w *world.World, m, rider *entity.Entity, tol float32) bool {
	if !m.Mountable || !rider.CanRide || rider.Item || rider.JumpTime > 0 {
		return false
	}
	if !m.GripSlots.Has(entity.SlotLeft) || w.Entities.Alive(m.Holding[entity.SlotLeft]) {
		return false
	}
	if rider.Vel[2] >= 0 || !landsOn(rider, m, tol) {
		return false
	}
	if err := attach.Attach(w, rider.Handle, m.Handle, entity.SlotLeft); err != nil {
		w.Dbg.Notify(debug.ModeAttach, true, "%s could not mount %s: %v", rider.Name, m.Name, err)
		return false
	}
	return true
}

// standsOn reports whether p's top lies between e's feet and tol above them, with e
// horizontally over p. A top below the feet does not hold e up.
func standsOn(e, p *entity.Entity, tol float32) bool {
	rise := p.Top() - e.Pos[2]
	if rise < 0 && !game.Float32ApproxEq(rise, 0) {
		return false
	}
	return rise <= tol && overlapsXY(e, p)
}

// landsOn reports whether e's feet are within tol of p's top on either side, with e
// horizontally over p.
func landsOn(e, p *entity.Entity, tol float32) bool {
	return math32.Abs(e.Pos[2]-p.Top()) <= tol && overlapsXY(e, p)
}

func overlapsXY(e, p *entity.Entity) bool {
	eb, pb := e.Box(), p.Box()
	return eb.Min()[0] < pb.Max()[0] && eb.Max()[0] > pb.Min()[0] &&
		eb.Min()[1] < pb.Max()[1] && eb.Max()[1] > pb.Min()[1]
}

// bump pushes two overlapping entities apart along the horizontal axis of least penetration,
// sharing the correction by weight, and removes the part of their relative velocity that
// would carry them into each other within the tick.
func (s Simulator) bump(w *world.World, c *spatial.Candidate, a, b *entity.Entity) {
	shareA, shareB := weightShares(a, b)
	if shareA == 0 && shareB == 0 {
		return
	}

	d := b.Pos.Sub(a.Pos)
	reach := a.BumpSize + b.BumpSize
	gapX, gapY := math32.Abs(d[0])-reach, math32.Abs(d[1])-reach
	var n mgl32.Vec3
	gap := gapX
	if gapX >= gapY {
		n[0] = sign(d[0])
	} else {
		n[1] = sign(d[1])
		gap = gapY
	}

	if c.Volume > 0 && gap < 0 {
		shareA, shareB = wallShares(w, a, b, n, gap, shareA, shareB)
		a.Pos = a.Pos.Add(n.Mul(gap * shareA))
		b.Pos = b.Pos.Add(n.Mul(-gap * shareB))
	}

	if rel := b.Vel.Sub(a.Vel).Dot(n); rel < 0 {
		// Keep only the part of the approach that happens before contact.
		remove := rel * (1 - c.TMin)
		a.Vel = a.Vel.Add(n.Mul(remove * shareA))
		b.Vel = b.Vel.Sub(n.Mul(remove * shareB))
	}
	if w.Dbg.Enabled(debug.ModeCollision) {
		w.Dbg.NotifyData(debug.ModeCollision, "bump "+a.Name+"/"+b.Name, debug.Data(
			"tick", w.Tick(),
			"axis", n,
			"gap", gap,
			"tmin", c.TMin,
			"share_a", shareA,
			"share_b", shareB,
		))
	}
}

// wallShares moves the separation away from an entity that the push would drive deeper
// into a wall. The other entity takes the whole push if it can; otherwise neither moves.
func wallShares(w *world.World, a, b *entity.Entity, n mgl32.Vec3, gap, shareA, shareB float32) (float32, float32) {
	blockedA := shareA > 0 && wallBlocks(w, a, n.Mul(gap*shareA))
	blockedB := shareB > 0 && wallBlocks(w, b, n.Mul(-gap*shareB))
	switch {
	case blockedA && blockedB:
		return 0, 0
	case blockedA:
		if b.Immovable() || wallBlocks(w, b, n.Mul(-gap)) {
			return 0, 0
		}
		return 0, 1
	case blockedB:
		if a.Immovable() || wallBlocks(w, a, n.Mul(gap)) {
			return 0, 0
		}
		return 1, 0
	}
	return shareA, shareB
}

// wallBlocks reports whether moving e by delta would raise its wall pressure.
func wallBlocks(w *world.World, e *entity.Entity, delta mgl32.Vec3) bool {
	bias := w.Settings.Motion.PressureBias
	from := game.Horizontal(e.Pos)
	to := from.Add(game.Horizontal(delta))
	return w.Mesh.Pressure(to, e.Radius, bias, e.StopMask) > w.Mesh.Pressure(from, e.Radius, bias, e.StopMask)
}

// weightShares returns the fraction of a separation each entity takes. Heavier entities move
// less; an infinite weight never moves.
func weightShares(a, b *entity.Entity) (float32, float32) {
	switch {
	case a.Immovable() && b.Immovable():
		return 0, 0
	case a.Immovable():
		return 0, 1
	case b.Immovable():
		return 1, 0
	}
	wa, wb := float64(a.Weight), float64(b.Weight)
	if wa+wb == 0 {
		return 0.5, 0.5
	}
	return float32(wb / (wa + wb)), float32(wa / (wa + wb))
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
