package event

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/internal"
	"github.com/oomph-ac/motion/oerror"
)

const EventsVersion = "1"

// Event is something the core asked a collaborator to do during a tick.
type Event interface {
	ID() byte
	Encode() []byte

	Tick() uint64
}

type NopEvent struct {
	EvTick uint64
}

func (n NopEvent) Tick() uint64 {
	return n.EvTick
}

const (
	_ = iota
	EventIDAnimation
	EventIDSound
	EventIDLabel
)

// AnimationEvent requests an action animation on an entity.
type AnimationEvent struct {
	NopEvent

	Entity entity.Handle
	Action ActionKind
	Loop   bool
}

func (AnimationEvent) ID() byte {
	return EventIDAnimation
}

func (ev AnimationEvent) Encode() []byte {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	WriteEventHeader(ev, buf)
	writeHandle(buf, ev.Entity)
	buf.WriteByte(byte(ev.Action))
	writeBool(buf, ev.Loop)
	return bytes.Clone(buf.Bytes())
}

// SoundEvent requests a positional sound.
type SoundEvent struct {
	NopEvent

	Pos   mgl32.Vec3
	Sound SoundID
}

func (SoundEvent) ID() byte {
	return EventIDSound
}

func (ev SoundEvent) Encode() []byte {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	WriteEventHeader(ev, buf)
	for _, f := range ev.Pos {
		binary.Write(buf, binary.LittleEndian, math.Float32bits(f))
	}
	binary.Write(buf, binary.LittleEndian, uint16(ev.Sound))
	return bytes.Clone(buf.Bytes())
}

// LabelEvent requests a floating text label above an entity.
type LabelEvent struct {
	NopEvent

	Entity  entity.Handle
	Text    string
	Near    color.RGBA
	Far     color.RGBA
	Seconds float32
}

func (LabelEvent) ID() byte {
	return EventIDLabel
}

func (ev LabelEvent) Encode() []byte {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	WriteEventHeader(ev, buf)
	writeHandle(buf, ev.Entity)
	binary.Write(buf, binary.LittleEndian, uint32(len(ev.Text)))
	buf.WriteString(ev.Text)
	buf.Write([]byte{ev.Near.R, ev.Near.G, ev.Near.B, ev.Near.A, ev.Far.R, ev.Far.G, ev.Far.B, ev.Far.A})
	binary.Write(buf, binary.LittleEndian, math.Float32bits(ev.Seconds))
	return bytes.Clone(buf.Bytes())
}

func WriteEventHeader(ev Event, buf *bytes.Buffer) {
	binary.Write(buf, binary.LittleEndian, uint64(ev.ID()))
	binary.Write(buf, binary.LittleEndian, ev.Tick())
}

// DecodeEvents decodes a concatenation of encoded events.
func DecodeEvents(dat []byte) ([]Event, error) {
	buf := bytes.NewBuffer(dat)
	events := []Event{}
	for buf.Len() > 0 {
		ev, err := DecodeEvent(buf)
		if err != nil {
			return events, oerror.New("error decoding event: %v", err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// DecodeEvent decodes a single event from the front of buf.
func DecodeEvent(buf *bytes.Buffer) (Event, error) {
	var rawID, tick uint64
	if err := binary.Read(buf, binary.LittleEndian, &rawID); err != nil {
		return nil, oerror.New("error reading event id: %v", err)
	}
	if err := binary.Read(buf, binary.LittleEndian, &tick); err != nil {
		return nil, oerror.New("error reading event tick: %v", err)
	}

	switch byte(rawID) {
	case EventIDAnimation:
		ev := AnimationEvent{}
		ev.EvTick = tick
		h, err := readHandle(buf)
		if err != nil {
			return nil, err
		}
		ev.Entity = h
		b := buf.Next(2)
		if len(b) != 2 {
			return nil, oerror.New("truncated AnimationEvent")
		}
		ev.Action, ev.Loop = ActionKind(b[0]), b[1] == 1
		if ev.Action >= actionCount {
			return nil, oerror.New("unknown action kind %d in AnimationEvent", b[0])
		}
		return ev, nil
	case EventIDSound:
		ev := SoundEvent{}
		ev.EvTick = tick
		for i := range ev.Pos {
			var bits uint32
			if err := binary.Read(buf, binary.LittleEndian, &bits); err != nil {
				return nil, oerror.New("error reading position from SoundEvent: %v", err)
			}
			ev.Pos[i] = math.Float32frombits(bits)
		}
		var sound uint16
		if err := binary.Read(buf, binary.LittleEndian, &sound); err != nil {
			return nil, oerror.New("error reading sound from SoundEvent: %v", err)
		}
		ev.Sound = SoundID(sound)
		return ev, nil
	case EventIDLabel:
		ev := LabelEvent{}
		ev.EvTick = tick
		h, err := readHandle(buf)
		if err != nil {
			return nil, err
		}
		ev.Entity = h
		var n uint32
		if err := binary.Read(buf, binary.LittleEndian, &n); err != nil {
			return nil, oerror.New("error reading text length from LabelEvent: %v", err)
		}
		text := buf.Next(int(n))
		if len(text) != int(n) {
			return nil, oerror.New("truncated text in LabelEvent")
		}
		ev.Text = string(text)
		c := buf.Next(8)
		if len(c) != 8 {
			return nil, oerror.New("truncated colours in LabelEvent")
		}
		ev.Near = color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
		ev.Far = color.RGBA{R: c[4], G: c[5], B: c[6], A: c[7]}
		var bits uint32
		if err := binary.Read(buf, binary.LittleEndian, &bits); err != nil {
			return nil, oerror.New("error reading duration from LabelEvent: %v", err)
		}
		ev.Seconds = math.Float32frombits(bits)
		return ev, nil
	default:
		return nil, oerror.New("unknown event: %d", rawID)
	}
}

func writeHandle(buf *bytes.Buffer, h entity.Handle) {
	binary.Write(buf, binary.LittleEndian, h.Index)
	binary.Write(buf, binary.LittleEndian, h.Gen)
}

func readHandle(r io.Reader) (entity.Handle, error) {
	var h entity.Handle
	if err := binary.Read(r, binary.LittleEndian, &h.Index); err != nil {
		return h, oerror.New("error reading entity handle: %v", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Gen); err != nil {
		return h, oerror.New("error reading entity handle: %v", err)
	}
	return h, nil
}

func writeBool(buf *bytes.Buffer, b bool) {
	if b {
		buf.WriteByte(1)
		return
	}
	buf.WriteByte(0)
}
