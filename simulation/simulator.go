package simulation

import (
	"github.com/oomph-ac/motion/assert"
	"github.com/oomph-ac/motion/attach"
	"github.com/oomph-ac/motion/debug"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/grab"
	"github.com/oomph-ac/motion/movement"
	"github.com/oomph-ac/motion/world"
)

// Simulator runs ticks over a world. It holds no state of its own; everything a tick needs
// lives in the World passed to it.
type Simulator struct{}

// Tick advances every live entity in w by dt ticks. Contacts are found and resolved first,
// then each free entity is moved in enumeration order, and finally attached entities are
// re-glued to their holders' new positions.
func (s Simulator) Tick(w *world.World, dt float32) {
	w.Dbg.Notify(debug.ModeTick, true, "START tick %d (%d entities)", w.Tick(), w.Entities.Len())
	defer func() {
		w.Dbg.Notify(debug.ModeTick, true, "END tick %d", w.Tick())
	}()

	s.broadPhase(w, dt)
	s.narrowPhase(w, dt)

	w.Entities.Each(func(e *entity.Entity) bool {
		s.handleButtons(w, e)
		movement.Simulate(w, e, dt)
		return true
	})

	attach.Reglue(w)
	if w.Settings.Debug.Assertions {
		err := attach.Verify(w)
		assert.IsTrue(err == nil, "attachment links broken after tick %d: %v", w.Tick(), err)
	}

	w.Entities.Sweep()
	w.AdvanceTick()
}

// OnEntityRemoved terminates h: everything it carries is dropped, it is detached from its own
// holder, contacts referring to it are forgotten and it is tombstoned. Calling it from inside a
// tick is safe; the slot is only recycled when the tick ends.
func (s Simulator) OnEntityRemoved(w *world.World, h entity.Handle) {
	e, ok := w.Entity(h)
	if !ok {
		return
	}
	dropped := attach.DetachAll(w, h)
	attach.Detach(w, h)
	forgotten := w.Index.Forget(h)
	w.Entities.Remove(h)
	w.Log.Debug("entity removed", "name", e.Name, "handle", h.String(), "dropped", dropped, "contacts", forgotten)
}

// handleButtons consumes the use buttons of e's latch and lets an attached rider jump off.
func (s Simulator) handleButtons(w *world.World, e *entity.Entity) {
	buttons := e.Latch.Buttons
	for slot, b := range [entity.SlotCount]entity.Button{entity.ButtonUseLeft, entity.ButtonUseRight} {
		if buttons&b == 0 {
			continue
		}
		sl := entity.Slot(slot)
		if w.Entities.Alive(e.Holding[sl]) {
			grab.Release(w, e.Handle, sl)
		} else if outcome, target, err := grab.Stuff(w, e.Handle, sl, false); err != nil {
			w.Dbg.Notify(debug.ModeGrab, true, "%s: grab failed (%s %s): %v", e.Name, outcome, target, err)
		}
	}
	e.Latch.Buttons &^= entity.ButtonUseLeft | entity.ButtonUseRight

	if e.Attached() && !e.Item && buttons&entity.ButtonJump != 0 {
		if attach.Detach(w, e.Handle) {
			e.Vel[2] = e.JumpPower
			e.Latch.Buttons &^= entity.ButtonJump
			w.Dbg.Notify(debug.ModeAttach, true, "%s jumped off", e.Name)
		}
	}
}
