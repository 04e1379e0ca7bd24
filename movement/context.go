package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/world"
)

type movementContext struct {
	w  *world.World
	e  *entity.Entity
	dt float32

	platform *entity.Entity

	target    mgl32.Vec2
	voluntary bool
	airborne  bool
}
