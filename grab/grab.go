package grab

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/oomph-ac/motion/attach"
	"github.com/oomph-ac/motion/debug"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/oerror"
	"github.com/oomph-ac/motion/world"
	"github.com/samber/lo"
)

// Outcome is the result of a grab attempt.
type Outcome uint8

const (
	// OutcomeNothing means no grabbable entity was found near the grip.
	OutcomeNothing Outcome = iota
	OutcomeGrabbed
	// OutcomeOutOfReach means the best visible candidate was too far away.
	OutcomeOutOfReach
	// OutcomeNotVisible means a candidate was in reach but could not be seen.
	OutcomeNotVisible
	// OutcomeRefused means the best candidate could not be attached.
	OutcomeRefused
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNothing:
		return "nothing"
	case OutcomeGrabbed:
		return "grabbed"
	case OutcomeOutOfReach:
		return "out of reach"
	case OutcomeNotVisible:
		return "not visible"
	case OutcomeRefused:
		return "refused"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

const (
	labelOutOfReach = "I can't reach that"
	labelNotVisible = "I can't see that"
)

var (
	labelNear = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	labelFar  = color.RGBA{R: 255, G: 96, B: 96, A: 255}
)

type candidate struct {
	e       *entity.Entity
	score   float32
	visible bool
	inRange bool
}

// Stuff makes grabber try to pick something up with slot. Only items are considered unless
// people is set. The best visible candidate in reach is attached; otherwise feedback is shown
// above the grabber and the outcome reports why nothing was picked up.
func Stuff(w *world.World, grabber entity.Handle, slot entity.Slot, people bool) (Outcome, entity.Handle, error) {
	g, ok := w.Entity(grabber)
	if !ok {
		return OutcomeNothing, entity.NoHandle, fmt.Errorf("grabber %s: %w", grabber, oerror.ErrInvalidEntity)
	}
	if !g.GripSlots.Has(slot) {
		return OutcomeNothing, entity.NoHandle, oerror.ErrInvalidSlot
	}
	if w.Entities.Alive(g.Holding[slot]) {
		return OutcomeNothing, entity.NoHandle, oerror.ErrSlotOccupied
	}

	cfg := w.Settings.Grab
	grip := attach.GripPosition(w, g, slot)
	forward := game.FacingVector(g.Facing)

	nearby := make([]*entity.Entity, 0, 8)
	for _, h := range w.Grid.Nearby(game.Horizontal(grip), cfg.SearchRadius) {
		if e, ok := w.Entity(h); ok {
			nearby = append(nearby, e)
		}
	}
	nearby = lo.Filter(nearby, func(e *entity.Entity, _ int) bool {
		switch {
		case e == g, e.Hidden, e.InPack, e.Attached():
			return false
		case e.Handle == g.AttachedTo:
			return false
		case !people && !e.Item:
			return false
		case e.Immovable(), e.Weight > g.CarryCapacity:
			return false
		}
		return true
	})

	candidates := make([]candidate, 0, len(nearby))
	for _, e := range nearby {
		delta := e.Pos.Sub(grip)
		hz := game.Horizontal(delta).Len()
		dz := math32.Abs(delta[2])
		if hz > cfg.SearchRadius {
			continue
		}

		c := candidate{
			e:       e,
			score:   hz + dz*cfg.VerticalWeight,
			visible: e.Alpha > 0 && w.Mesh.LineOfSight(g.Pos, e.Pos, game.TileStopDefault),
			inRange: hz <= cfg.Range && dz <= cfg.VerticalRange,
		}
		if !game.Float32ApproxEq(hz, 0) && game.Horizontal(e.Pos.Sub(g.Pos)).Dot(forward) < 0 {
			c.score += cfg.BehindPenalty
		}
		if !c.visible {
			c.score += cfg.HiddenPenalty
		}
		candidates = append(candidates, c)
	}
	reachable := lo.Filter(candidates, func(c candidate, _ int) bool { return c.visible && c.inRange })
	if w.Dbg.Enabled(debug.ModeGrab) {
		w.Dbg.NotifyData(debug.ModeGrab, g.Name+" grab", debug.Data(
			"tick", w.Tick(),
			"slot", slot,
			"nearby", len(nearby),
			"candidates", len(candidates),
			"reachable", len(reachable),
		))
	}
	if len(reachable) > 0 {
		best := lo.MinBy(reachable, func(a, b candidate) bool { return a.score < b.score })
		if err := attach.Attach(w, best.e.Handle, grabber, slot); err != nil {
			w.Dbg.Notify(debug.ModeGrab, true, "%s could not grab %s: %v", g.Name, best.e.Name, err)
			return OutcomeRefused, best.e.Handle, err
		}
		w.Animator.PlayAction(grabber, event.ActionGrab, event.ActionGrab.Loops())
		w.Audio.PlaySound(grip, event.SoundGrab)
		return OutcomeGrabbed, best.e.Handle, nil
	}

	if lo.ContainsBy(candidates, func(c candidate) bool { return c.visible }) {
		w.Feedback.ShowLabel(grabber, labelOutOfReach, labelNear, labelFar, cfg.LabelSeconds)
		return OutcomeOutOfReach, entity.NoHandle, nil
	}
	if lo.ContainsBy(candidates, func(c candidate) bool { return c.inRange }) {
		w.Feedback.ShowLabel(grabber, labelNotVisible, labelNear, labelFar, cfg.LabelSeconds)
		return OutcomeNotVisible, entity.NoHandle, nil
	}
	return OutcomeNothing, entity.NoHandle, nil
}

// Release drops whatever holder carries in slot. It reports whether something was dropped.
func Release(w *world.World, holder entity.Handle, slot entity.Slot) bool {
	h, ok := w.Entity(holder)
	if !ok || slot >= entity.SlotCount {
		return false
	}
	held, ok := w.Entity(h.Holding[slot])
	if !ok || !attach.Detach(w, held.Handle) {
		return false
	}
	w.Animator.PlayAction(holder, event.ActionDrop, event.ActionDrop.Loops())
	w.Audio.PlaySound(held.Pos, event.SoundDrop)
	return true
}

