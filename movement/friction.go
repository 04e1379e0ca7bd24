package movement

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/motion/game"
)

func (ctx *movementContext) applyFriction() {
	e := ctx.e
	env := &e.Env
	s := &ctx.w.Settings.Friction

	if e.Grounded {
		t := env.Traction
		k := min((s.Ground*t+s.Ice*(1-t))*ctx.dt, 1)
		rel := game.Horizontal(e.Vel).Sub(game.Horizontal(env.FloorVelocity))
		e.Vel[0] -= rel[0] * k
		e.Vel[1] -= rel[1] * k
	}

	if e.Slippy && env.Twist != game.TwistFlat {
		scale := s.HillSlide * (1 - env.Zlerp) * (1 - env.Traction) * ctx.dt
		e.Vel[0] += env.Up[0] * scale
		e.Vel[1] += env.Up[1] * scale
		env.Traction = game.ClampFloat(env.Traction*s.SlideTractionDecay, 0, 1)
	} else {
		env.Traction = 1
	}

	hrz := math32.Pow(env.FluidFrictionHrz, ctx.dt)
	e.Vel[0] *= hrz
	e.Vel[1] *= hrz
	e.Vel[2] *= math32.Pow(env.FluidFrictionVrt, ctx.dt)
}
