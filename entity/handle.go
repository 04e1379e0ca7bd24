package entity

import "fmt"

// Handle is a stable reference to an entity in a Table. A handle whose generation no longer
// matches its slot refers to an entity that has been removed.
type Handle struct {
	Index uint32
	Gen   uint32
}

// NoHandle is the zero handle and never refers to an entity.
var NoHandle Handle

// Valid reports whether the handle was ever issued. It does not check liveness.
func (h Handle) Valid() bool {
	return h.Gen != 0
}

func (h Handle) String() string {
	if !h.Valid() {
		return "none"
	}
	return fmt.Sprintf("%d#%d", h.Index, h.Gen)
}

// Less orders handles by index and then generation.
func (h Handle) Less(o Handle) bool {
	if h.Index != o.Index {
		return h.Index < o.Index
	}
	return h.Gen < o.Gen
}
