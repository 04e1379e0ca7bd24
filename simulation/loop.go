package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/oerror"
	"github.com/oomph-ac/motion/utils"
	"github.com/oomph-ac/motion/worker"
	"github.com/oomph-ac/motion/world"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/atomic"
)

// tickWindow is how many recent tick durations are kept for TickStats.
const tickWindow = game.TicksPerSecond * 5

// Loop drives a World at a fixed rate. Other goroutines never touch the World directly: they
// queue commands with Do, which run at the start of the next tick. Events produced by a tick
// are handed to the sinks through the worker pool, so sinks must be safe for concurrent use.
type Loop struct {
	w     *world.World
	sim   Simulator
	pool  *worker.Pool
	sinks []event.Sink

	mu        deadlock.Mutex
	commands  []func(w *world.World)
	durations *utils.CircularQueue[time.Duration]

	running atomic.Bool
	ticks   atomic.Uint64
}

// NewLoop returns a loop over w delivering events to sinks through pool.
func NewLoop(w *world.World, pool *worker.Pool, sinks ...event.Sink) *Loop {
	return &Loop{
		w:         w,
		pool:      pool,
		sinks:     sinks,
		durations: utils.NewCircularQueue[time.Duration](tickWindow),
	}
}

// Do queues fn to run against the world before the next tick.
func (l *Loop) Do(fn func(w *world.World)) {
	l.mu.Lock()
	l.commands = append(l.commands, fn)
	l.mu.Unlock()
}

// Remove queues the termination of h.
func (l *Loop) Remove(h entity.Handle) {
	l.Do(func(w *world.World) {
		l.sim.OnEntityRemoved(w, h)
	})
}

// Running reports whether Run is active.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Ticks returns how many ticks the loop has completed.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}

// TickStats returns the mean and the longest duration of the recent ticks.
func (l *Loop) TickStats() (mean, longest time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.durations.Len() == 0 {
		return 0, 0
	}
	var total time.Duration
	for d := range l.durations.Iter() {
		total += d
		longest = max(longest, d)
	}
	return total / time.Duration(l.durations.Len()), longest
}

// Run ticks the world until ctx is done or a tick panics. Only one Run may be active at a time.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return oerror.New("loop is already running")
	}
	defer l.running.Store(false)

	ticker := time.NewTicker(time.Second / game.TicksPerSecond)
	defer ticker.Stop()

	l.w.Log.Info("simulation loop started", "tps", game.TicksPerSecond, "entities", l.w.Entities.Len())
	for {
		select {
		case <-ctx.Done():
			l.w.Log.Info("simulation loop stopped", "ticks", l.Ticks())
			return ctx.Err()
		case <-ticker.C:
			if err := l.Step(); err != nil {
				return err
			}
		}
	}
}

// Step runs queued commands and a single tick. A panic during the tick is reported to sentry
// and returned as an error.
func (l *Loop) Step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.w.Log.Error("tick panicked", "tick", l.w.Tick(), "panic", r)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("tick", fmt.Sprint(l.w.Tick()))
			})
			err = oerror.New("tick %d panicked: %v", l.w.Tick(), r)
			hub.Recover(err)
			hub.Flush(time.Second * 5)
		}
	}()

	start := time.Now()
	l.mu.Lock()
	commands := l.commands
	l.commands = nil
	l.mu.Unlock()

	for _, fn := range commands {
		fn(l.w)
	}
	l.sim.Tick(l.w, 1)
	l.deliver(l.w.Events.Drain())

	l.mu.Lock()
	_ = l.durations.Append(time.Since(start))
	l.mu.Unlock()
	l.ticks.Inc()
	return nil
}

func (l *Loop) deliver(events []event.Event) {
	if len(events) == 0 {
		return
	}
	for _, sink := range l.sinks {
		l.pool.Submit(func() {
			for _, ev := range events {
				sink.HandleEvent(ev)
			}
		})
	}
}
