package entity

type tableSlot struct {
	gen  uint32
	live bool
	e    *Entity
}

// Table stores entities in stable slots addressed by generation-checked handles. Iteration
// follows insertion order. Removal only tombstones a slot; Sweep compacts the order and
// recycles slots, so removing entities while iterating is safe.
type Table struct {
	slots   []tableSlot
	order   []uint32
	free    []uint32
	pending []uint32
	live    int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Insert stores e and returns its handle. The handle is also written to e.Handle.
func (t *Table) Insert(e *Entity) Handle {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, tableSlot{})
	}

	s := &t.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.live = true
	s.e = e

	h := Handle{Index: idx, Gen: s.gen}
	e.Handle = h
	t.order = append(t.order, idx)
	t.live++
	return h
}

// Get resolves h. Stale and removed handles resolve to false.
func (t *Table) Get(h Handle) (*Entity, bool) {
	if !h.Valid() || int(h.Index) >= len(t.slots) {
		return nil, false
	}
	s := t.slots[h.Index]
	if !s.live || s.gen != h.Gen {
		return nil, false
	}
	return s.e, true
}

// Alive reports whether h refers to a live entity.
func (t *Table) Alive(h Handle) bool {
	_, ok := t.Get(h)
	return ok
}

// Remove tombstones the entity behind h. It returns false if h was already stale.
func (t *Table) Remove(h Handle) bool {
	if _, ok := t.Get(h); !ok {
		return false
	}
	t.slots[h.Index].live = false
	t.pending = append(t.pending, h.Index)
	t.live--
	return true
}

// Each calls fn for every live entity in insertion order until fn returns false. Entities
// inserted during the call are not visited.
func (t *Table) Each(fn func(e *Entity) bool) {
	n := len(t.order)
	for i := 0; i < n; i++ {
		s := t.slots[t.order[i]]
		if !s.live {
			continue
		}
		if !fn(s.e) {
			return
		}
	}
}

// Sweep drops tombstoned entities from the iteration order and makes their slots reusable.
func (t *Table) Sweep() {
	if len(t.pending) == 0 {
		return
	}

	kept := t.order[:0]
	for _, idx := range t.order {
		if t.slots[idx].live {
			kept = append(kept, idx)
		}
	}
	t.order = kept

	for _, idx := range t.pending {
		t.slots[idx].e = nil
		t.free = append(t.free, idx)
	}
	t.pending = t.pending[:0]
}

// Len returns the number of live entities.
func (t *Table) Len() int {
	return t.live
}
