package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/entity"
	"github.com/oomph-ac/motion/event"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/oerror"
	"github.com/oomph-ac/motion/settings"
	"github.com/oomph-ac/motion/simulation"
	"github.com/oomph-ac/motion/worker"
	"github.com/oomph-ac/motion/world"
	"github.com/samber/lo"
)

// logSink writes every event the loop delivers to a logger.
type logSink struct {
	log *slog.Logger
}

func (s logSink) HandleEvent(ev event.Event) {
	switch ev := ev.(type) {
	case event.AnimationEvent:
		s.log.Info("animation", "tick", ev.Tick(), "entity", ev.Entity.String(), "action", ev.Action.String(), "loop", ev.Loop)
	case event.SoundEvent:
		s.log.Info("sound", "tick", ev.Tick(), "pos", ev.Pos, "sound", ev.Sound)
	case event.LabelEvent:
		s.log.Info("label", "tick", ev.Tick(), "entity", ev.Entity.String(), "text", ev.Text)
	default:
		s.log.Warn("unknown event", "id", ev.ID(), "tick", ev.Tick())
	}
}

// The following program runs a small arena with a player, a mount, a lift and some loot until
// interrupted. The first argument is the settings file, created with defaults if missing.
func main() {
	path := "motion.toml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if err := settings.SaveDefault(path); err != nil && !errors.Is(err, oerror.ErrSettingsExisting) {
		panic(err)
	}
	s, err := settings.Load(path)
	if err != nil {
		panic(err)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if s.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: s.Sentry.DSN}); err != nil {
			panic(err)
		}
		defer sentry.Flush(time.Second * 2)
	}
	if s.Debug.StatsView {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(s.Debug.StatsAddr))
		mgr := statsview.New()
		go mgr.Start()
	}

	w := world.New(buildArena(), s, log)
	player := spawnArena(w)

	sinks := []event.Sink{logSink{log: log.With("src", "events")}}
	var rec *event.Recorder
	if s.Debug.RecordPath != "" {
		f, err := os.Create(s.Debug.RecordPath)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		rec = event.NewRecorder(f)
		sinks = append(sinks, rec)
	}

	pool := worker.NewPool(0)
	loop := simulation.NewLoop(w, pool, sinks...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	go drive(ctx, loop, player)

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("simulation stopped", "err", err)
	}
	pool.Close()
	mean, longest := loop.TickStats()
	log.Info("tick durations", "ticks", loop.Ticks(), "mean", mean, "longest", longest)
	if rec != nil {
		summarizeRecording(log, s.Debug.RecordPath, rec)
	}
}

// summarizeRecording reads the recording back and logs how many events of each kind it holds.
func summarizeRecording(log *slog.Logger, path string, rec *event.Recorder) {
	if err := rec.Err(); err != nil {
		log.Error("recording incomplete", "path", path, "err", err)
	}
	f, err := os.Open(path)
	if err != nil {
		log.Error("recording unreadable", "path", path, "err", err)
		return
	}
	defer f.Close()
	events, err := event.ReadRecording(f)
	if err != nil {
		log.Error("recording corrupt", "path", path, "decoded", len(events), "err", err)
		return
	}
	kinds := lo.CountValuesBy(events, func(ev event.Event) byte { return ev.ID() })
	log.Info("recording saved", "path", path, "written", rec.Count(), "decoded", len(events),
		"animations", kinds[event.EventIDAnimation], "sounds", kinds[event.EventIDSound], "labels", kinds[event.EventIDLabel])
}

// drive plays the part of a controller, changing the player's input every few hundred
// milliseconds.
func drive(ctx context.Context, loop *simulation.Loop, player entity.Handle) {
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		latch := entity.Latch{X: rand.Float32()*2 - 1, Y: rand.Float32()*2 - 1}
		switch rand.Intn(8) {
		case 0:
			latch.Buttons = entity.ButtonJump
		case 1:
			latch.Buttons = entity.ButtonUseLeft
		case 2:
			latch.Buttons = entity.ButtonUseRight
		}
		loop.Do(func(w *world.World) {
			if e, ok := w.Entity(player); ok {
				e.Latch = latch
			}
		})
	}
}

// buildArena returns a walled 16x16 mesh with a hill, an icy slope and a pond.
func buildArena() *world.Mesh {
	const size = 16
	mesh := world.NewMesh(size, size, game.TileSize)
	for i := 0; i < size; i++ {
		mesh.SetTile(i, 0, game.TileWall)
		mesh.SetTile(i, size-1, game.TileWall)
		mesh.SetTile(0, i, game.TileWall)
		mesh.SetTile(size-1, i, game.TileWall)
	}
	for cy := 9; cy <= 13; cy++ {
		for cx := 9; cx <= 13; cx++ {
			mesh.SetCornerHeight(cx, cy, float32(min(cx-9, 13-cx, cy-9, 13-cy))*40)
		}
	}
	for ty := 3; ty < 6; ty++ {
		for tx := 9; tx < 13; tx++ {
			mesh.SetCornerHeight(tx, ty, float32(tx-9)*20)
			mesh.SetTile(tx, ty, game.TileSlippery)
		}
	}
	for ty := 10; ty < 13; ty++ {
		for tx := 2; tx < 5; tx++ {
			mesh.SetTile(tx, ty, game.TileWater)
		}
	}
	mesh.SetWaterLevel(24)
	mesh.SetTile(7, 7, game.TileImpassable)
	return mesh
}

// spawnArena fills w with its cast and returns the player's handle.
func spawnArena(w *world.World) entity.Handle {
	player := entity.New("player", mgl32.Vec3{384, 384, 0})
	player.CanRide = true
	w.Spawn(player)

	horse := entity.New("horse", mgl32.Vec3{640, 384, 0})
	horse.Mountable = true
	horse.Weight = 400
	horse.MaxAccel = 0.15
	w.Spawn(horse)

	lift := entity.New("lift", mgl32.Vec3{384, 1024, 0})
	lift.Platform = true
	lift.Weight = entity.InfiniteWeight
	lift.BumpSize = 48
	lift.BumpHeight = 24
	w.Spawn(lift)

	for i, name := range []string{"sword", "shield", "lantern"} {
		item := entity.New(name, mgl32.Vec3{480 + float32(i)*40, 420, 0})
		item.Item = true
		item.Weight = 20
		if name == "lantern" {
			item.Light = 12
		}
		w.Spawn(item)
	}

	w.Log.Info("arena ready", "entities", w.Entities.Len(), "tiles", fmt.Sprintf("%dx%d", w.Mesh.Width(), w.Mesh.Height()), "extent", fmt.Sprint(w.Mesh.Extent()))
	return player.Handle
}
