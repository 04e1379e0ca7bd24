package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/debug"
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/game"
)

// integrateVertical moves the entity along Z and keeps it on or above its support. Landing
// slowly stops the fall; landing fast bounces.
func (ctx *movementContext) integrateVertical() {
	e, w := ctx.e, ctx.w
	s := &w.Settings.Motion
	floor := e.Env.Level

	z := e.Pos[2] + e.Vel[2]*ctx.dt
	if e.Vel[2] <= 0 && z < floor+s.FloorSnapMargin {
		z = floor
		if -e.Vel[2] < s.BounceThreshold {
			e.Vel[2] = 0
		} else {
			e.Vel[2] = -e.Vel[2] * e.BumpDampen
			w.Audio.PlaySound(e.Pos, event.SoundBounce)
		}
		if ctx.airborne {
			w.Animator.PlayAction(e.Handle, event.ActionLand, event.ActionLand.Loops())
			w.Dbg.Notify(debug.ModeMotion, true, "%s: landed at %.2f", e.Name, floor)
		}
	}
	if z < floor {
		z = floor
		e.Vel[2] = math32.Max(e.Vel[2], 0)
	}
	e.Pos[2] = z
}

// correctWalls performs the horizontal move and pushes the entity out of walls it would
// overlap. A step never ends with more wall pressure than it started with.
func (ctx *movementContext) correctWalls() {
	e, w := ctx.e, ctx.w
	s := &w.Settings.Motion

	old := game.Horizontal(e.Pos)
	tentative := old.Add(game.Horizontal(e.Vel).Mul(ctx.dt))
	normal, pressure := w.Mesh.EscapeVector(tentative, e.Radius, s.PressureBias, e.StopMask)
	if pressure <= 0 {
		ctx.setHorizontal(tentative)
		e.Pressure = 0
		return
	}

	oldPressure := w.Mesh.Pressure(old, e.Radius, s.PressureBias, e.StopMask)
	if normal == (mgl32.Vec2{}) {
		// Nowhere to go: refuse the move rather than teleport.
		e.Vel[0], e.Vel[1] = 0, 0
		e.Pressure = oldPressure
		w.Dbg.Notify(debug.ModeCollision, true, "%s: unresolvable wall normal at %v", e.Name, tentative)
		return
	}

	vel := game.Horizontal(e.Vel)
	if d := vel.Dot(normal); d < 0 {
		vel = vel.Sub(normal.Mul(2 * d))
	}
	vel = vel.Mul(1 - e.BumpDampen)

	var displacement float32
	if safe, ok := e.LastSafe(); ok {
		displacement = math32.Min(old.Sub(game.Horizontal(safe)).Len(), s.MaxDisplacement)
	}
	next := old.Add(vel.Mul(ctx.dt)).Add(normal.Mul(displacement * pressure))

	nextPressure := w.Mesh.Pressure(next, e.Radius, s.PressureBias, e.StopMask)
	refused := nextPressure > oldPressure
	if refused {
		next, nextPressure = old, oldPressure
	}

	e.Vel[0], e.Vel[1] = vel[0], vel[1]
	ctx.setHorizontal(next)
	e.Pressure = nextPressure
	if w.Dbg.Enabled(debug.ModeCollision) {
		w.Dbg.NotifyData(debug.ModeCollision, e.Name+": wall correction", debug.Data(
			"tick", w.Tick(),
			"tile_contact", e.TileContact,
			"normal", normal,
			"pressure", pressure,
			"old_pressure", oldPressure,
			"next_pressure", nextPressure,
			"displacement", displacement,
			"refused", refused,
			"vel", vel,
		))
	}
}

func (ctx *movementContext) setHorizontal(pos mgl32.Vec2) {
	ctx.e.Pos = game.WithHorizontal(ctx.e.Pos, pos)
}

func (ctx *movementContext) snapVelocity() {
	eps := ctx.w.Settings.Motion.VelocityEpsilon
	v := &ctx.e.Vel
	v[0] = game.SnapToZero(v[0], eps)
	v[1] = game.SnapToZero(v[1], eps)
	v[2] = game.SnapToZero(v[2], eps)
}
