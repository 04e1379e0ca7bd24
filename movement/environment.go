package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/debug"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/world"
)

// SampleEnvironment recomputes what e perceives of its surroundings without moving it.
func SampleEnvironment(w *world.World, e *entity.Entity) {
	ctx := newCtx(w, e, 1)
	defer putCtx(ctx)
	ctx.sampleEnvironment()
}

func (ctx *movementContext) sampleEnvironment() {
	e, w := ctx.e, ctx.w
	s := &w.Settings
	env := &e.Env
	env.Reset()

	if e.JumpTime > 0 {
		e.JumpTime--
	}

	ctx.platform = nil
	if p, ok := w.Entity(e.Support); ok && p != e && p.Platform && !p.Attached() {
		ctx.platform = p
	} else if e.Support.Valid() {
		w.Dbg.Notify(debug.ModeEnvironment, true, "%s: dropping stale platform %s", e.Name, e.Support)
		e.Support = entity.NoHandle
	}

	x, y := e.Pos[0], e.Pos[1]
	meshFloor := w.Mesh.ElevationAt(x, y, e.WaterWalk)
	env.FloorLevel = meshFloor
	env.Twist = w.Mesh.TwistAt(x, y)
	env.Up = world.TwistNormal(env.Twist)
	if ctx.platform != nil {
		env.FloorLevel = ctx.platform.Top()
		env.Twist = game.TwistFlat
		env.Up = mgl32.Vec3{0, 0, 1}
		if !e.Immovable() {
			env.FloorVelocity = ctx.platform.Vel
		}
	}
	env.Level = math32.Max(env.FloorLevel, meshFloor)
	env.WaterLevel = w.Mesh.WaterLevelAt(x, y)
	env.FlyLevel = math32.Max(env.Level, 0)
	env.Tiles = w.Mesh.TileFlagsAt(x, y)

	if tol := s.Motion.ZlerpTolerance; tol > 0 {
		env.Zlerp = game.ClampFloat((e.Pos[2]-env.Level)/tol, 0, 1)
	} else if e.Pos[2] > env.Level {
		env.Zlerp = 1
	}

	e.Grounded = !e.Flying && env.Zlerp <= s.Motion.GroundedZlerp
	e.InWater = !e.WaterWalk && env.WaterLevel != entity.NoWater && e.Pos[2] < env.WaterLevel
	e.Slippy = ctx.platform == nil && env.Tiles.Has(game.TileSlippery)

	traction := env.Up[2]
	if e.Slippy {
		traction *= s.Friction.SlipperyTraction
	}
	env.Traction = game.ClampFloat(traction, 0, 1)

	fluid := s.Friction.Air
	if e.InWater {
		fluid = s.Friction.Water
	}
	env.FluidFrictionHrz, env.FluidFrictionVrt = fluid, fluid

	if e.Jumped {
		e.Jumped = false
		if e.JumpCount > 0 {
			e.JumpCount--
		}
	}
	if (e.Grounded || e.InWater) && e.JumpTime <= 0 {
		e.JumpCount = e.JumpCountMax
	}
	e.JumpReady = e.JumpTime <= 0 && e.JumpCount > 0

	w.Dbg.Notify(
		debug.ModeEnvironment, true,
		"%s: level=%.2f floor=%.2f zlerp=%.3f traction=%.3f grounded=%t water=%t slippy=%t",
		e.Name, env.Level, env.FloorLevel, env.Zlerp, env.Traction, e.Grounded, e.InWater, e.Slippy,
	)
}
