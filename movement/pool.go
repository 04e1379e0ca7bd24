package movement

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/world"
)

var ctxPool = sync.Pool{
	New: func() any {
		return &movementContext{}
	},
}

func newCtx(w *world.World, e *entity.Entity, dt float32) *movementContext {
	ctx := ctxPool.Get().(*movementContext)
	ctx.w = w
	ctx.e = e
	ctx.dt = dt
	return ctx
}

func putCtx(ctx *movementContext) {
	ctx.reset()
	ctxPool.Put(ctx)
}

func (ctx *movementContext) reset() {
	ctx.w = nil
	ctx.e = nil
	ctx.dt = 0
	ctx.platform = nil
	ctx.target = mgl32.Vec2{}
	ctx.voluntary = false
	ctx.airborne = false
}
