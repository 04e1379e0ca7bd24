package movement

import (
	"github.com/oomph-ac/motion/game"
)

// accelerate moves the horizontal velocity a fixed fraction towards the target. Grounded
// entities are limited by their traction.
func (ctx *movementContext) accelerate() {
	if !ctx.voluntary {
		return
	}
	e := ctx.e
	frac := min(ctx.w.Settings.Motion.AccelerationFraction*ctx.dt, 1)
	delta := ctx.target.Sub(game.Horizontal(e.Vel)).Mul(frac)
	if e.Grounded {
		delta = delta.Mul(e.Env.Traction)
	}
	e.Vel[0] += delta[0]
	e.Vel[1] += delta[1]
}

// applyGravity pulls flying entities towards their hover height and everything else down,
// weighted by how far above its support it is.
func (ctx *movementContext) applyGravity() {
	e := ctx.e
	s := &ctx.w.Settings.Motion
	if e.Flying {
		damp := min(s.FlyDampen*ctx.dt, 1)
		target := e.Env.FlyLevel + e.HoverHeight
		e.Vel[2] += (target - e.Pos[2]) * damp
		e.Vel[2] *= 1 - damp
		return
	}
	e.Vel[2] += s.Gravity * e.Env.Zlerp * ctx.dt
}
