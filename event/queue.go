package event

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
)

// Animator plays action animations on entities.
type Animator interface {
	PlayAction(h entity.Handle, action ActionKind, loop bool)
}

// Audio plays positional sounds.
type Audio interface {
	PlaySound(pos mgl32.Vec3, sound SoundID)
}

// Feedback shows floating text labels.
type Feedback interface {
	ShowLabel(h entity.Handle, text string, near, far color.RGBA, seconds float32)
}

// Sink receives events drained from a Queue.
type Sink interface {
	HandleEvent(ev Event)
}

// Queue records collaborator requests made during a tick. It implements Animator, Audio and
// Feedback so the core never waits on a collaborator.
type Queue struct {
	tick   uint64
	events []Event
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// SetTick sets the tick stamped on events recorded from now on.
func (q *Queue) SetTick(tick uint64) {
	q.tick = tick
}

func (q *Queue) PlayAction(h entity.Handle, action ActionKind, loop bool) {
	ev := AnimationEvent{Entity: h, Action: action, Loop: loop}
	ev.EvTick = q.tick
	q.events = append(q.events, ev)
}

func (q *Queue) PlaySound(pos mgl32.Vec3, sound SoundID) {
	ev := SoundEvent{Pos: pos, Sound: sound}
	ev.EvTick = q.tick
	q.events = append(q.events, ev)
}

func (q *Queue) ShowLabel(h entity.Handle, text string, near, far color.RGBA, seconds float32) {
	ev := LabelEvent{Entity: h, Text: text, Near: near, Far: far, Seconds: seconds}
	ev.EvTick = q.tick
	q.events = append(q.events, ev)
}

// Drain returns every recorded event and empties the queue.
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of recorded events.
func (q *Queue) Len() int {
	return len(q.events)
}
