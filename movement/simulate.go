package movement

import (
	"github.com/oomph-ac/motion/debug"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/world"
)

// Simulate advances a free entity by dt ticks: it samples the environment, turns the latch
// into a target velocity, then accelerates, applies gravity and friction, integrates and
// corrects against the floor and walls. Attached entities are left to the attachment pass.
func Simulate(w *world.World, e *entity.Entity, dt float32) {
	if e.Attached() {
		return
	}

	w.Dbg.Notify(debug.ModeMotion, true, "BEGIN motion for %s at tick %d", e.Name, w.Tick())
	defer func() {
		w.Dbg.Notify(debug.ModeMotion, true, "END motion for %s: pos=%v vel=%v", e.Name, e.Pos, e.Vel)
	}()

	ctx := newCtx(w, e, dt)
	defer putCtx(ctx)

	e.PrevPos, e.PrevVel = e.Pos, e.Vel
	ctx.sampleEnvironment()
	ctx.airborne = !e.Grounded && !e.Flying

	ctx.targetVelocity()
	ctx.tryJump()
	ctx.accelerate()
	ctx.applyGravity()
	ctx.applyFriction()
	ctx.integrateVertical()
	ctx.correctWalls()
	ctx.snapVelocity()

	if e.Pressure <= 0 {
		e.RecordSafe(e.Pos, w.Tick())
	}
}
