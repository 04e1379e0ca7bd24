package entity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// Environment is what an entity perceives of its surroundings for the current tick. It is
// recomputed from scratch every tick before the entity moves.
type Environment struct {
	// FloorLevel is the height of the surface directly below the entity, either a platform top or
	// the mesh.
	FloorLevel float32
	// WaterLevel is the water surface height of the tile under the entity, or NoWater.
	WaterLevel float32
	// Level is the composite support height used for clamping.
	Level float32
	// FlyLevel is the target height for flying entities, never negative.
	FlyLevel float32
	// Zlerp is how far the entity is above Level, normalised to [0, 1].
	Zlerp float32
	Twist uint8
	// Traction is how much grip the entity has on its support, in [0, 1].
	Traction float32
	// FluidFrictionHrz and FluidFrictionVrt are per-tick velocity retention factors.
	FluidFrictionHrz float32
	FluidFrictionVrt float32
	// FloorVelocity is the velocity of the supporting platform.
	FloorVelocity mgl32.Vec3
	// Up is the normal of the supporting surface.
	Up mgl32.Vec3
	// Tiles are the flags of the tile under the entity.
	Tiles game.TileFlags
}

// NoWater is the water level reported where a tile holds no water.
const NoWater = float32(-1 << 20)

// Reset restores the environment to an unsupported, dry state.
func (env *Environment) Reset() {
	*env = Environment{
		WaterLevel:       NoWater,
		Traction:         1,
		FluidFrictionHrz: 1,
		FluidFrictionVrt: 1,
		Up:               mgl32.Vec3{0, 0, 1},
	}
}
