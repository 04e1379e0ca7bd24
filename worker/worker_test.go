package worker

import (
	"testing"

	"go.uber.org/atomic"
)

func TestPoolRunsJobs(t *testing.T) {
	p := NewPool(2)
	var n atomic.Int32
	for i := 0; i < 50; i++ {
		p.Submit(func() { n.Inc() })
	}
	p.Close()
	if got := n.Load(); got != 50 {
		t.Fatalf("expected 50 jobs to run, got %d", got)
	}
}

func TestPoolSurvivesPanics(t *testing.T) {
	p := NewPool(1)
	var n atomic.Int32
	p.Submit(func() { panic("boom") })
	p.Submit(func() { n.Inc() })
	p.Close()
	if n.Load() != 1 {
		t.Fatalf("worker should keep running after a panicking job")
	}
}
