package entity

import (
	"math"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// InfiniteWeight marks an entity that can never be pushed by other entities.
const InfiniteWeight = uint32(math.MaxUint32)

// Button is a latch button bit.
type Button uint8

const (
	ButtonJump Button = 1 << iota
	ButtonUseLeft
	ButtonUseRight
)

// Latch is the input an entity's controller requested for this tick. Axes are in [-1, 1].
type Latch struct {
	X, Y    float32
	Buttons Button
}

// Status holds the remaining ticks of timed status effects.
type Status struct {
	// Daze reverses the latch while positive.
	Daze int
	// Grog swaps the latch axes while positive.
	Grog int
}

// Entity is a simulated object in the world: a character, a monster, an item or a mount.
type Entity struct {
	Handle Handle
	Name   string

	// Pos is the position of the entity's feet.
	Pos, PrevPos mgl32.Vec3
	Vel, PrevVel mgl32.Vec3
	// Facing is the yaw of the entity in radians.
	Facing float32

	// Radius is the radius of the disk sampled against mesh walls.
	Radius float32
	// BumpSize is the horizontal half-extent used against other entities.
	BumpSize   float32
	BumpHeight float32
	Weight     uint32
	// BumpDampen is the fraction of velocity kept by a floor bounce.
	BumpDampen    float32
	MaxAccel      float32
	HoverHeight   float32
	JumpPower     float32
	JumpCountMax  uint8
	CarryCapacity uint32
	StopMask      game.TileFlags

	// GripSlots is the set of slots this entity can hold something in.
	GripSlots   SlotMask
	GripOffsets [SlotCount]mgl32.Vec3

	Alpha uint8
	Light uint8

	Status  Status
	Bonuses game.Bonus
	Latch   Latch
	Env     Environment

	Grounded  bool
	Flying    bool
	InWater   bool
	Slippy    bool
	JumpReady bool
	JumpCount uint8
	// JumpTime is the remaining jump cooldown in ticks.
	JumpTime int
	// Jumped is set when a jump was performed and not yet accounted for.
	Jumped bool

	Platform  bool
	Mountable bool
	CanRide   bool
	Item      bool
	WaterWalk bool
	Hidden    bool
	InPack    bool

	// Support is the platform the entity stands on, found by the narrow phase.
	Support Handle

	AttachedTo   Handle
	AttachedSlot Slot
	Holding      [SlotCount]Handle

	// TileContact is set by the narrow phase when a blocked tile is near the entity.
	TileContact bool
	// Pressure is the wall pressure the entity ended its last step with.
	Pressure float32
	// History holds the recent positions at which the entity had no wall pressure.
	History *RingBuffer

	glueTick uint64
}

// New returns an entity with sensible defaults at the given position.
func New(name string, pos mgl32.Vec3) *Entity {
	e := &Entity{
		Name:          name,
		Pos:           pos,
		PrevPos:       pos,
		Radius:        16,
		BumpSize:      16,
		BumpHeight:    64,
		Weight:        100,
		BumpDampen:    0.5,
		MaxAccel:      0.08,
		JumpPower:     12,
		JumpCountMax:  1,
		CarryCapacity: game.DefaultCarryWeight,
		StopMask:      game.TileStopDefault,
		GripSlots:     MaskOf(SlotLeft, SlotRight),
		Alpha:         255,
		History:       NewRingBuffer(game.DefaultSafeHistory),
	}
	e.GripOffsets[SlotLeft] = mgl32.Vec3{e.BumpSize * 0.5, e.BumpSize * 0.75, e.BumpHeight * 0.5}
	e.GripOffsets[SlotRight] = mgl32.Vec3{e.BumpSize * 0.5, -e.BumpSize * 0.75, e.BumpHeight * 0.5}
	e.Env.Reset()
	return e
}

// Box returns the bump box of the entity at its current position.
func (e *Entity) Box() cube.BBox {
	return cube.Box(
		e.Pos[0]-e.BumpSize, e.Pos[1]-e.BumpSize, e.Pos[2],
		e.Pos[0]+e.BumpSize, e.Pos[1]+e.BumpSize, e.Pos[2]+e.BumpHeight,
	)
}

// SweptBox returns the bump box extended by the movement over dt ticks and grown by margin.
func (e *Entity) SweptBox(dt, margin float32) cube.BBox {
	return e.Box().Extend(e.Vel.Mul(dt)).Grow(margin)
}

// Attached reports whether the entity is held or riding.
func (e *Entity) Attached() bool {
	return e.AttachedTo.Valid()
}

// Immovable reports whether the entity has infinite weight.
func (e *Entity) Immovable() bool {
	return e.Weight == InfiniteWeight
}

// Top returns the height of the top of the entity's bump box.
func (e *Entity) Top() float32 {
	return e.Pos[2] + e.BumpHeight
}

// Rider returns the non-item occupant of the entity's slots, if any.
func (e *Entity) Rider(t *Table) (*Entity, bool) {
	for _, h := range e.Holding {
		if r, ok := t.Get(h); ok && !r.Item {
			return r, true
		}
	}
	return nil, false
}

// RecordSafe stores pos as the last position with no wall pressure.
func (e *Entity) RecordSafe(pos mgl32.Vec3, tick uint64) {
	if e.History == nil {
		e.History = NewRingBuffer(game.DefaultSafeHistory)
	}
	e.History.Add(SafePosition{Tick: tick, Pos: pos})
}

// LastSafe returns the most recent position recorded by RecordSafe.
func (e *Entity) LastSafe() (mgl32.Vec3, bool) {
	if e.History == nil {
		return mgl32.Vec3{}, false
	}
	p, ok := e.History.Latest()
	return p.Pos, ok
}

// ForgetSafe drops every recorded safe position.
func (e *Entity) ForgetSafe() {
	if e.History != nil {
		e.History.Clear()
	}
}

// GlueTick returns the last tick the entity was re-glued to its holder.
func (e *Entity) GlueTick() uint64 {
	return e.glueTick
}

// SetGlueTick marks the entity as re-glued for tick.
func (e *Entity) SetGlueTick(tick uint64) {
	e.glueTick = tick
}
