package entity

// Slot is a grip slot on a holder.
type Slot uint8

const (
	SlotLeft Slot = iota
	SlotRight
	SlotCount
)

// SlotMask is a set of grip slots.
type SlotMask uint8

// MaskOf returns a mask containing the given slots.
func MaskOf(slots ...Slot) SlotMask {
	var m SlotMask
	for _, s := range slots {
		m |= 1 << s
	}
	return m
}

// Has reports whether s is part of the mask.
func (m SlotMask) Has(s Slot) bool {
	return s < SlotCount && m&(1<<s) != 0
}

func (s Slot) String() string {
	switch s {
	case SlotLeft:
		return "left"
	case SlotRight:
		return "right"
	}
	return "invalid"
}
