package attach

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/debug"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/oerror"
	"github.com/oomph-ac/motion/world"
)

// Attach links rider to holder's slot. Both sides of the link are written together. Attaching
// a rider to the slot it already occupies succeeds without changes.
func Attach(w *world.World, rider, holder entity.Handle, slot entity.Slot) error {
	r, ok := w.Entity(rider)
	if !ok {
		return fmt.Errorf("rider %s: %w", rider, oerror.ErrInvalidEntity)
	}
	h, ok := w.Entity(holder)
	if !ok {
		return fmt.Errorf("holder %s: %w", holder, oerror.ErrInvalidEntity)
	}
	if err := canAttach(w, r, h, slot); err != nil {
		return err
	}
	if r.AttachedTo == holder && r.AttachedSlot == slot {
		return nil
	}

	r.AttachedTo, r.AttachedSlot = holder, slot
	h.Holding[slot] = rider

	r.InWater = false
	r.Support = entity.NoHandle
	r.JumpTime = w.Settings.Motion.AttachJumpCooldown
	glue(w, r, h)

	action := event.ActionHold
	if !r.Item {
		action = event.ActionRide
		w.Animator.PlayAction(rider, action, action.Loops())
	} else {
		w.Animator.PlayAction(holder, action, action.Loops())
	}
	w.Dbg.Notify(debug.ModeAttach, true, "%s attached to %s (%s)", r.Name, h.Name, slot)
	return nil
}

func canAttach(w *world.World, r, h *entity.Entity, slot entity.Slot) error {
	switch {
	case r == h:
		return oerror.ErrSelfAttach
	case r.InPack:
		return oerror.ErrInPack
	case !h.GripSlots.Has(slot):
		return oerror.ErrInvalidSlot
	case !r.Item && !h.Mountable:
		return oerror.ErrNotMountable
	}
	if r.Attached() && (r.AttachedTo != h.Handle || r.AttachedSlot != slot) {
		return oerror.ErrAlreadyAttached
	}
	if occupant := h.Holding[slot]; occupant != r.Handle && w.Entities.Alive(occupant) {
		return oerror.ErrSlotOccupied
	}
	// Refuse cycles: the rider may not be anywhere in the holder's chain.
	for cur, ok := h, true; ok; cur, ok = w.Entity(cur.AttachedTo) {
		if cur == r {
			return oerror.ErrSelfAttach
		}
	}
	return nil
}

// Detach unlinks rider from its holder. It reports whether a link existed; calling it on a
// free entity is a no-op.
func Detach(w *world.World, rider entity.Handle) bool {
	r, ok := w.Entity(rider)
	if !ok || !r.Attached() {
		return false
	}

	if h, ok := w.Entity(r.AttachedTo); ok {
		if h.Holding[r.AttachedSlot] == rider {
			h.Holding[r.AttachedSlot] = entity.NoHandle
		}
		r.Vel = h.Vel
	}
	w.Dbg.Notify(debug.ModeAttach, true, "%s detached from %s", r.Name, r.AttachedTo)

	r.AttachedTo = entity.NoHandle
	r.AttachedSlot = 0
	r.JumpTime = w.Settings.Motion.AttachJumpCooldown
	r.ForgetSafe()
	r.Pressure = 0
	return true
}

// DetachAll frees everything holder carries and returns how many links were removed.
func DetachAll(w *world.World, holder entity.Handle) int {
	h, ok := w.Entity(holder)
	if !ok {
		return 0
	}
	n := 0
	for slot, occupant := range h.Holding {
		if Detach(w, occupant) {
			n++
		}
		h.Holding[slot] = entity.NoHandle
	}
	return n
}

// Reglue moves every attached entity to its holder's grip, holders first, and detaches
// entities whose holder no longer exists.
func Reglue(w *world.World) {
	tick := w.Tick() + 1
	w.Entities.Each(func(e *entity.Entity) bool {
		if e.Attached() {
			reglueChain(w, e, tick, 0)
		}
		return true
	})
}

// maxChain bounds holder chains; Attach refuses cycles so this is never reached in practice.
const maxChain = 16

func reglueChain(w *world.World, e *entity.Entity, tick uint64, depth int) {
	if e.GlueTick() == tick || depth > maxChain {
		return
	}
	e.SetGlueTick(tick)

	h, ok := w.Entity(e.AttachedTo)
	if !ok {
		w.Dbg.Notify(debug.ModeAttach, true, "%s lost its holder %s", e.Name, e.AttachedTo)
		Detach(w, e.Handle)
		return
	}
	if h.Attached() {
		reglueChain(w, h, tick, depth+1)
	}
	glue(w, e, h)
}

// glue places e at h's grip for its slot.
func glue(w *world.World, e, h *entity.Entity) {
	m := GripMatrix(w, h, e.AttachedSlot)
	e.PrevPos, e.PrevVel = e.Pos, e.Vel
	e.Pos = mgl32.TransformCoordinate(mgl32.Vec3{}, m)
	e.Vel = h.Vel
	e.Facing = h.Facing
	e.Grounded = false
	e.InWater = false
	if e.Item {
		e.Alpha = h.Alpha
		e.Light = h.Light
	}
}

// GripMatrix returns the world transform of h's slot. Model data from the world's Skeleton is
// preferred; otherwise it is built from the holder's position, facing and grip offsets.
func GripMatrix(w *world.World, h *entity.Entity, slot entity.Slot) mgl32.Mat4 {
	if w.Skeleton != nil {
		if m, ok := w.Skeleton.GripMatrix(h.Handle, slot); ok {
			return m
		}
	}
	var off mgl32.Vec3
	if slot < entity.SlotCount {
		off = h.GripOffsets[slot]
	}
	return mgl32.Translate3D(h.Pos[0], h.Pos[1], h.Pos[2]).
		Mul4(mgl32.HomogRotate3DZ(h.Facing)).
		Mul4(mgl32.Translate3D(off[0], off[1], off[2]))
}

// GripPosition returns where something held in h's slot rests.
func GripPosition(w *world.World, h *entity.Entity, slot entity.Slot) mgl32.Vec3 {
	return mgl32.TransformCoordinate(mgl32.Vec3{}, GripMatrix(w, h, slot))
}

// Verify checks that every attachment link is mutual and that nobody is attached to a missing
// holder.
func Verify(w *world.World) error {
	var err error
	w.Entities.Each(func(e *entity.Entity) bool {
		if e.Attached() {
			h, ok := w.Entity(e.AttachedTo)
			if !ok {
				err = oerror.New("%s is attached to missing holder %s", e.Name, e.AttachedTo)
				return false
			}
			if e.AttachedSlot >= entity.SlotCount || h.Holding[e.AttachedSlot] != e.Handle {
				err = oerror.New("%s claims %s slot of %s which holds %v", e.Name, e.AttachedSlot, h.Name, h.Holding)
				return false
			}
		}
		for slot, occupant := range e.Holding {
			if !occupant.Valid() {
				continue
			}
			o, ok := w.Entity(occupant)
			if !ok {
				err = oerror.New("%s holds missing entity %s", e.Name, occupant)
				return false
			}
			if o.AttachedTo != e.Handle || o.AttachedSlot != entity.Slot(slot) {
				err = oerror.New("%s holds %s which is attached to %s", e.Name, o.Name, o.AttachedTo)
				return false
			}
		}
		return true
	})
	return err
}
