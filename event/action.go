package event

import "fmt"

// ActionKind is a category of animation the core asks the animator to play.
type ActionKind uint8

const (
	ActionIdle ActionKind = iota
	ActionWalk
	ActionJump
	ActionLand
	ActionGrab
	ActionDrop
	ActionRide
	ActionHold

	actionCount
)

// Loops reports whether the action repeats until replaced.
func (a ActionKind) Loops() bool {
	switch a {
	case ActionIdle, ActionWalk, ActionRide, ActionHold:
		return true
	case ActionJump, ActionLand, ActionGrab, ActionDrop:
		return false
	}
	panic(fmt.Sprintf("unknown action kind %d", a))
}

func (a ActionKind) String() string {
	switch a {
	case ActionIdle:
		return "idle"
	case ActionWalk:
		return "walk"
	case ActionJump:
		return "jump"
	case ActionLand:
		return "land"
	case ActionGrab:
		return "grab"
	case ActionDrop:
		return "drop"
	case ActionRide:
		return "ride"
	case ActionHold:
		return "hold"
	}
	panic(fmt.Sprintf("unknown action kind %d", a))
}

// SoundID identifies a sound effect.
type SoundID uint16

const (
	SoundJump SoundID = iota + 1
	SoundLand
	SoundBounce
	SoundGrab
	SoundDrop
)
