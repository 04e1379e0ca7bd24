package event

import (
	"io"
	"slices"

	"github.com/oomph-ac/motion/oerror"
	"github.com/sasha-s/go-deadlock"
)

// Recorder is a Sink that appends every event it receives to a writer in its encoded form.
// Batches from different ticks may arrive out of order; ReadRecording restores tick order.
type Recorder struct {
	mu    deadlock.Mutex
	w     io.Writer
	count int
	err   error
}

// NewRecorder returns a recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// HandleEvent encodes ev and writes it. After the first write error every later event is
// dropped and the error is kept for Err.
func (r *Recorder) HandleEvent(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	if _, err := r.w.Write(ev.Encode()); err != nil {
		r.err = oerror.New("error recording event %d: %v", ev.ID(), err)
		return
	}
	r.count++
}

// Count returns the number of events written.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Err returns the write error that stopped the recorder, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// ReadRecording decodes everything a Recorder wrote to rd and returns the events ordered by
// tick. Events of the same tick keep the order they were written in.
func ReadRecording(rd io.Reader) ([]Event, error) {
	dat, err := io.ReadAll(rd)
	if err != nil {
		return nil, oerror.New("error reading recording: %v", err)
	}
	events, err := DecodeEvents(dat)
	if err != nil {
		return events, err
	}
	slices.SortStableFunc(events, func(a, b Event) int {
		switch {
		case a.Tick() < b.Tick():
			return -1
		case a.Tick() > b.Tick():
			return 1
		}
		return 0
	})
	return events, nil
}
