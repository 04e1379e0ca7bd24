package debug

import (
	"fmt"
	"log/slog"

	"github.com/elliotchance/orderedmap/v2"
)

// Mode is a category of trace output.
type Mode uint8

const (
	ModeEnvironment Mode = iota
	ModeMotion
	ModeCollision
	ModeAttach
	ModeGrab
	ModeTick

	modeCount
)

// ModeList holds the names of every mode, indexed by Mode.
var ModeList = []string{"environment", "motion", "collision", "attach", "grab", "tick"}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, bool) {
	for i, n := range ModeList {
		if n == name {
			return Mode(i), true
		}
	}
	return 0, false
}

// Debugger writes trace messages for enabled modes to a logger.
type Debugger struct {
	enabled uint32
	log     *slog.Logger
}

// New returns a debugger writing to log with the named modes enabled. Unknown names are
// reported as a warning and ignored.
func New(log *slog.Logger, modes ...string) *Debugger {
	d := &Debugger{log: log}
	for _, name := range modes {
		m, ok := ParseMode(name)
		if !ok {
			log.Warn("unknown debug mode", "mode", name)
			continue
		}
		d.Toggle(m)
	}
	return d
}

// Toggle flips the mode on or off.
func (d *Debugger) Toggle(m Mode) {
	d.enabled ^= 1 << m
}

// Enabled reports whether the mode is on.
func (d *Debugger) Enabled(m Mode) bool {
	return d != nil && m < modeCount && d.enabled&(1<<m) != 0
}

// Notify logs the formatted message if the mode is enabled and cond holds.
func (d *Debugger) Notify(m Mode, cond bool, format string, args ...any) {
	if !cond || !d.Enabled(m) {
		return
	}
	d.log.Debug(fmt.Sprintf(format, args...), "mode", ModeList[m])
}

// NotifyData logs msg with an ordered set of values if the mode is enabled.
func (d *Debugger) NotifyData(m Mode, msg string, data *orderedmap.OrderedMap[string, any]) {
	if !d.Enabled(m) {
		return
	}
	d.log.Debug(msg, "mode", ModeList[m], "data", OrderedMapToString(data))
}

// OrderedMapToString converts an orderedmap to a string.
func OrderedMapToString(data *orderedmap.OrderedMap[string, any]) string {
	dataString := "["
	count := data.Len()
	for _, key := range data.Keys() {
		v, _ := data.Get(key)
		dataString += fmt.Sprintf("%s=%v", key, v)

		count--
		if count > 0 {
			dataString += " "
		}
	}
	dataString += "]"

	return dataString
}

// Data builds an ordered map from alternating keys and values. A trailing key without a value
// is dropped.
func Data(kv ...any) *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		data.Set(key, kv[i+1])
	}
	return data
}
