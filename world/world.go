package world

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/debug"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/settings"
	"github.com/oomph-ac/motion/spatial"
)

// Skeleton supplies grip-bone matrices from animated models.
type Skeleton interface {
	// GripMatrix returns the world transform of the holder's slot, or false if the holder has
	// no model data for it.
	GripMatrix(h entity.Handle, slot entity.Slot) (mgl32.Mat4, bool)
}

// World is the state a tick operates on. Nothing in the core is global; every component
// receives the World it works on.
type World struct {
	Mesh     *Mesh
	Entities *entity.Table
	Index    *spatial.Index
	Grid     *spatial.Grid

	Events   *event.Queue
	Animator event.Animator
	Audio    event.Audio
	Feedback event.Feedback
	Skeleton Skeleton

	Settings settings.Settings
	Log      *slog.Logger
	Dbg      *debug.Debugger

	tick uint64
}

// New returns a world over mesh. Collaborator requests are recorded in Events until other
// implementations are assigned.
func New(mesh *Mesh, s settings.Settings, log *slog.Logger) *World {
	if log == nil {
		log = slog.Default()
	}
	ext := mesh.Extent()
	q := event.NewQueue()
	return &World{
		Mesh:     mesh,
		Entities: entity.NewTable(),
		Index:    spatial.NewIndex(s.Index.Buckets, s.Index.Pool),
		Grid:     spatial.NewGrid(ext[0], ext[1], s.Index.GridCell, s.Index.GridCellCap),
		Events:   q,
		Animator: q,
		Audio:    q,
		Feedback: q,
		Settings: s,
		Log:      log,
		Dbg:      debug.New(log, s.Debug.Modes...),
	}
}

// Spawn adds e to the world and makes it visible to proximity queries immediately.
func (w *World) Spawn(e *entity.Entity) entity.Handle {
	h := w.Entities.Insert(e)
	e.PrevPos, e.PrevVel = e.Pos, e.Vel
	if !e.Attached() {
		w.Grid.Insert(h, e.SweptBox(1, w.Settings.Platform.Tolerance))
	}
	w.Log.Debug("entity spawned", "name", e.Name, "handle", h.String(), "pos", e.Pos)
	return h
}

// Entity resolves h.
func (w *World) Entity(h entity.Handle) (*entity.Entity, bool) {
	return w.Entities.Get(h)
}

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 {
	return w.tick
}

// AdvanceTick finishes the current tick.
func (w *World) AdvanceTick() {
	w.tick++
	w.Events.SetTick(w.tick)
}
