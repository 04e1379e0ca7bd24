package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/debug"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/game"
)

// latchInput returns the entity's requested direction after status effects and the dead zone.
// A ridden mount is steered by its rider.
func (ctx *movementContext) latchInput() mgl32.Vec2 {
	e := ctx.e
	latch := e.Latch
	if e.Mountable {
		if rider, ok := e.Rider(ctx.w.Entities); ok {
			latch.X, latch.Y = rider.Latch.X, rider.Latch.Y
		}
	}

	in := mgl32.Vec2{game.ClampFloat(latch.X, -1, 1), game.ClampFloat(latch.Y, -1, 1)}
	if e.Status.Daze > 0 {
		in = in.Mul(-1)
	}
	if e.Status.Grog > 0 {
		in[0], in[1] = in[1], in[0]
	}
	if in.Len() < ctx.w.Settings.Motion.DeadZone {
		return mgl32.Vec2{}
	}
	return in
}

// maxSpeed is the terminal speed reachable against the current fluid friction, scaled by the
// entity's speed bonuses.
func (ctx *movementContext) maxSpeed() float32 {
	f := ctx.e.Env.FluidFrictionHrz
	if f >= 1 {
		f = game.AirFriction
	}
	if f <= 0 {
		return 0
	}
	return ctx.e.MaxAccel * f / (1 - f) * ctx.e.Bonuses.Multiplier(ctx.w.Settings.Bonuses)
}

func (ctx *movementContext) targetVelocity() {
	in := ctx.latchInput()
	ctx.voluntary = in != (mgl32.Vec2{})
	ctx.target = in.Mul(ctx.maxSpeed())
	ctx.w.Dbg.Notify(debug.ModeMotion, ctx.voluntary, "%s: latch=%v target=%v", ctx.e.Name, in, ctx.target)
}

func (ctx *movementContext) tryJump() {
	e, w := ctx.e, ctx.w
	if e.Latch.Buttons&entity.ButtonJump == 0 || !e.JumpReady || e.JumpTime > 0 {
		return
	}

	power := e.JumpPower
	if e.InWater {
		power *= 0.5
	}
	e.Vel[2] = power
	e.JumpTime = w.Settings.Motion.JumpDelayTicks
	e.Jumped = true

	w.Animator.PlayAction(e.Handle, event.ActionJump, event.ActionJump.Loops())
	w.Audio.PlaySound(e.Pos, event.SoundJump)
	w.Dbg.Notify(debug.ModeMotion, true, "%s: jumped with power %.2f", e.Name, power)
}
