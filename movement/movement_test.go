package movement

import (
	"io"
	"log/slog"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/settings"
	"github.com/oomph-ac/motion/world"
)

func newTestWorld(mesh *world.Mesh) *world.World {
	if mesh == nil {
		mesh = world.NewMesh(8, 8, 128)
	}
	return world.New(mesh, settings.DefaultSettings(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func spawn(w *world.World, name string, pos mgl32.Vec3) *entity.Entity {
	e := entity.New(name, pos)
	w.Spawn(e)
	return e
}

func TestLatchInput(t *testing.T) {
	w := newTestWorld(nil)
	e := spawn(w, "walker", mgl32.Vec3{512, 512, 0})
	ctx := newCtx(w, e, 1)
	defer putCtx(ctx)

	tests := []struct {
		name  string
		latch entity.Latch
		st    entity.Status
		want  mgl32.Vec2
	}{
		{"plain", entity.Latch{X: 1}, entity.Status{}, mgl32.Vec2{1, 0}},
		{"clamped", entity.Latch{X: 3, Y: -2}, entity.Status{}, mgl32.Vec2{1, -1}},
		{"dazed", entity.Latch{X: 1, Y: 0.5}, entity.Status{Daze: 5}, mgl32.Vec2{-1, -0.5}},
		{"grogged", entity.Latch{X: 1}, entity.Status{Grog: 5}, mgl32.Vec2{0, 1}},
		{"dead zone", entity.Latch{X: 0.03, Y: 0.03}, entity.Status{}, mgl32.Vec2{}},
	}
	for _, tc := range tests {
		e.Latch, e.Status = tc.latch, tc.st
		if got := ctx.latchInput(); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestMountSteeredByRider(t *testing.T) {
	w := newTestWorld(nil)
	mount := spawn(w, "horse", mgl32.Vec3{512, 512, 0})
	mount.Mountable = true
	rider := spawn(w, "rider", mgl32.Vec3{512, 512, 64})
	rider.Latch.Y = 1
	mount.Holding[entity.SlotLeft] = rider.Handle
	rider.AttachedTo = mount.Handle

	ctx := newCtx(w, mount, 1)
	defer putCtx(ctx)
	if got := ctx.latchInput(); got != (mgl32.Vec2{0, 1}) {
		t.Fatalf("mount should follow its rider's latch, got %v", got)
	}
}

func TestMaxSpeedBonuses(t *testing.T) {
	w := newTestWorld(nil)
	e := spawn(w, "runner", mgl32.Vec3{512, 512, 0})
	SampleEnvironment(w, e)

	ctx := newCtx(w, e, 1)
	defer putCtx(ctx)
	base := ctx.maxSpeed()
	if math32.Abs(base-7.92) > 1e-3 {
		t.Fatalf("expected base speed 7.92, got %v", base)
	}
	e.Bonuses = game.BonusSprint
	if got := ctx.maxSpeed(); math32.Abs(got-base*1.5) > 1e-3 {
		t.Fatalf("sprint should multiply speed by 1.5, got %v", got)
	}
}

func TestSampleEnvironmentGroundedAndAirborne(t *testing.T) {
	w := newTestWorld(nil)
	e := spawn(w, "scout", mgl32.Vec3{512, 512, 0})

	SampleEnvironment(w, e)
	if !e.Grounded || e.Env.Zlerp != 0 || e.Env.Traction != 1 {
		t.Fatalf("entity on flat ground should be grounded with full traction, got %+v", e.Env)
	}
	if !e.JumpReady || e.JumpCount != e.JumpCountMax {
		t.Fatalf("grounded entity should be ready to jump")
	}

	e.Pos[2] = 100
	SampleEnvironment(w, e)
	if e.Grounded || e.Env.Zlerp != 1 {
		t.Fatalf("entity high above the floor should be airborne, zlerp=%v", e.Env.Zlerp)
	}

	e.Flying = true
	e.Pos[2] = 0
	SampleEnvironment(w, e)
	if e.Grounded {
		t.Fatalf("flying entities are never grounded")
	}
}

func TestSampleEnvironmentWater(t *testing.T) {
	mesh := world.NewMesh(8, 8, 128)
	mesh.SetTile(4, 4, game.TileWater)
	mesh.SetWaterLevel(40)
	w := newTestWorld(mesh)
	e := spawn(w, "swimmer", mgl32.Vec3{520, 520, 0})

	SampleEnvironment(w, e)
	if !e.InWater || e.Env.FluidFrictionHrz != w.Settings.Friction.Water {
		t.Fatalf("entity below the surface should be in water, got %+v", e.Env)
	}

	e.WaterWalk = true
	e.Pos[2] = 40
	SampleEnvironment(w, e)
	if e.InWater || e.Env.Level != 40 || !e.Grounded {
		t.Fatalf("water walker should stand on the surface, got level %v", e.Env.Level)
	}
}

func TestPlatformSupport(t *testing.T) {
	w := newTestWorld(nil)
	plat := spawn(w, "lift", mgl32.Vec3{512, 512, 0})
	plat.Platform = true
	plat.BumpHeight = 20
	plat.Vel = mgl32.Vec3{2, 0, 0}

	rider := spawn(w, "passenger", mgl32.Vec3{512, 512, 20})
	rider.Support = plat.Handle
	SampleEnvironment(w, rider)
	if rider.Env.Level != 20 || !rider.Grounded {
		t.Fatalf("rider should stand on the platform top, level=%v", rider.Env.Level)
	}
	if rider.Env.FloorVelocity != plat.Vel {
		t.Fatalf("floor velocity should follow the platform, got %v", rider.Env.FloorVelocity)
	}

	rider.Weight = entity.InfiniteWeight
	SampleEnvironment(w, rider)
	if rider.Env.FloorVelocity != (mgl32.Vec3{}) {
		t.Fatalf("immovable entities should ignore platform velocity")
	}

	w.Entities.Remove(plat.Handle)
	SampleEnvironment(w, rider)
	if rider.Support.Valid() || rider.Env.Level != 0 {
		t.Fatalf("stale platform should be dropped, support=%v level=%v", rider.Support, rider.Env.Level)
	}
}

func TestSlipperySlope(t *testing.T) {
	mesh := world.NewMesh(4, 4, 128)
	for cy := 0; cy <= 4; cy++ {
		for cx := 0; cx <= 4; cx++ {
			mesh.SetCornerHeight(cx, cy, float32(cx)*32)
		}
	}
	mesh.SetTile(1, 1, game.TileSlippery)
	w := newTestWorld(mesh)

	e := spawn(w, "skater", mgl32.Vec3{192, 192, 48})
	Simulate(w, e, 1)
	if e.Vel[0] >= 0 || math32.Abs(e.Vel[1]) > 1e-3 {
		t.Fatalf("entity on a slippery slope should slide downhill (-x), got %v", e.Vel)
	}
	if e.Env.Traction >= 1 || e.Env.Traction < 0 {
		t.Fatalf("sliding should keep traction below 1, got %v", e.Env.Traction)
	}

	dry := spawn(w, "hiker", mgl32.Vec3{320, 192, 80})
	Simulate(w, dry, 1)
	if dry.Vel[0] != 0 || dry.Env.Traction != 1 {
		t.Fatalf("non-slippery slope should not slide, vel=%v traction=%v", dry.Vel, dry.Env.Traction)
	}
}

func TestJumpBookkeeping(t *testing.T) {
	w := newTestWorld(nil)
	e := spawn(w, "jumper", mgl32.Vec3{512, 512, 0})
	e.Latch.Buttons = entity.ButtonJump

	Simulate(w, e, 1)
	if e.Pos[2] <= 0 || e.JumpTime != w.Settings.Motion.JumpDelayTicks {
		t.Fatalf("expected a jump, pos=%v jumpTime=%d", e.Pos, e.JumpTime)
	}
	jumped := false
	for _, ev := range w.Events.Drain() {
		if a, ok := ev.(event.AnimationEvent); ok && a.Action == event.ActionJump {
			jumped = true
		}
	}
	if !jumped {
		t.Fatalf("jump should request the jump animation")
	}

	Simulate(w, e, 1)
	if e.JumpReady || e.JumpCount != 0 {
		t.Fatalf("jump should be consumed mid-air, ready=%t count=%d", e.JumpReady, e.JumpCount)
	}
}

func TestFloorBounceAndLanding(t *testing.T) {
	w := newTestWorld(nil)
	fast := spawn(w, "ball", mgl32.Vec3{512, 512, 10})
	fast.Vel[2] = -20
	Simulate(w, fast, 1)
	if fast.Pos[2] != 0 || fast.Vel[2] < 9 || fast.Vel[2] > 11 {
		t.Fatalf("fast landing should bounce, pos=%v vel=%v", fast.Pos, fast.Vel)
	}

	slow := spawn(w, "feather", mgl32.Vec3{300, 300, 1})
	slow.Vel[2] = -1
	Simulate(w, slow, 1)
	if slow.Pos[2] != 0 || slow.Vel[2] != 0 {
		t.Fatalf("slow landing should stop, pos=%v vel=%v", slow.Pos, slow.Vel)
	}
}

func TestFlatGroundStops(t *testing.T) {
	w := newTestWorld(nil)
	e := spawn(w, "slider", mgl32.Vec3{512, 512, 0})
	e.Vel = mgl32.Vec3{3, 0, 0}

	stopped := -1
	for i := 1; i <= 40; i++ {
		Simulate(w, e, 1)
		if game.Horizontal(e.Vel).Len() < 0.05 {
			stopped = i
			break
		}
	}
	if stopped < 0 {
		t.Fatalf("entity should slow below 0.05 within 40 ticks, vel=%v", e.Vel)
	}
	for i := 0; i < 100; i++ {
		Simulate(w, e, 1)
	}
	if e.Vel != (mgl32.Vec3{}) {
		t.Fatalf("velocity should snap to exactly zero, got %v", e.Vel)
	}
	if e.Pos[2] != 0 {
		t.Fatalf("entity should stay on the floor, got z=%v", e.Pos[2])
	}
}

func TestFlyingHover(t *testing.T) {
	w := newTestWorld(nil)
	e := spawn(w, "bat", mgl32.Vec3{512, 512, 0})
	e.Flying = true
	e.HoverHeight = 50

	for i := 0; i < 300; i++ {
		Simulate(w, e, 1)
	}
	if math32.Abs(e.Pos[2]-50) > 1 {
		t.Fatalf("flying entity should settle at its hover height, z=%v", e.Pos[2])
	}
}

func TestAcceleration(t *testing.T) {
	w := newTestWorld(nil)
	e := spawn(w, "walker", mgl32.Vec3{512, 512, 0})
	e.Latch.X = 1

	Simulate(w, e, 1)
	if e.Vel[0] <= 0 {
		t.Fatalf("latch should accelerate the entity, vel=%v", e.Vel)
	}
	for i := 0; i < 200; i++ {
		Simulate(w, e, 1)
	}
	if e.Vel[0] > 7.92 {
		t.Fatalf("entity should not exceed its max speed, vel=%v", e.Vel)
	}
}
