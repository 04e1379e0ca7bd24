package settings

import (
	"fmt"
	"os"

	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/oerror"
	"github.com/pelletier/go-toml"
)

// Settings contains every tunable of the motion core and its driver.
type Settings struct {
	Motion struct {
		Gravity              float32
		AccelerationFraction float32
		DeadZone             float32
		VelocityEpsilon      float32
		FloorSnapMargin      float32
		BounceThreshold      float32
		ZlerpTolerance       float32
		GroundedZlerp        float32
		FlyDampen            float32
		MaxDisplacement      float32
		// PressureBias scales wall pressure up (positive) or down (negative).
		PressureBias       float32
		JumpDelayTicks     int
		AttachJumpCooldown int
	}
	Friction struct {
		Ground             float32
		Ice                float32
		Air                float32
		Water              float32
		SlipperyTraction   float32
		HillSlide          float32
		SlideTractionDecay float32
	}
	Bonuses  game.BonusMultipliers
	Platform struct {
		Tolerance float32
	}
	Grab struct {
		SearchRadius   float32
		Range          float32
		VerticalRange  float32
		VerticalWeight float32
		BehindPenalty  float32
		HiddenPenalty  float32
		LabelSeconds   float32
	}
	Index struct {
		Buckets     int
		Pool        int
		GridCell    float32
		GridCellCap int
	}
	Debug struct {
		// Modes lists the debug modes enabled at startup.
		Modes      []string
		Assertions bool
		StatsView  bool
		StatsAddr  string
		// RecordPath is the file delivered events are recorded to. Empty disables recording.
		RecordPath string
	}
	Sentry struct {
		DSN string
	}
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Motion.Gravity = game.Gravity
	s.Motion.AccelerationFraction = game.AccelerationFraction
	s.Motion.DeadZone = game.LatchDeadZone
	s.Motion.VelocityEpsilon = game.VelocityEpsilon
	s.Motion.FloorSnapMargin = game.FloorSnapMargin
	s.Motion.BounceThreshold = game.BounceThreshold
	s.Motion.ZlerpTolerance = game.ZlerpTolerance
	s.Motion.GroundedZlerp = game.GroundedZlerp
	s.Motion.FlyDampen = game.FlyDampen
	s.Motion.MaxDisplacement = game.MaxDisplacement
	s.Motion.JumpDelayTicks = game.JumpDelayTicks
	s.Motion.AttachJumpCooldown = game.AttachJumpCooldown

	s.Friction.Ground = game.GroundFriction
	s.Friction.Ice = game.IceFriction
	s.Friction.Air = game.AirFriction
	s.Friction.Water = game.WaterFriction
	s.Friction.SlipperyTraction = game.SlipperyTraction
	s.Friction.HillSlide = game.HillSlide
	s.Friction.SlideTractionDecay = game.SlideTractionDecay

	s.Bonuses = game.BonusMultipliers{Sprint: 1.5, Haste: 1.25, Encumbered: 0.75, Sneak: 0.5}
	s.Platform.Tolerance = game.PlatformTolerance

	s.Grab.SearchRadius = 256
	s.Grab.Range = 48
	s.Grab.VerticalRange = 48
	s.Grab.VerticalWeight = 2
	s.Grab.BehindPenalty = 64
	s.Grab.HiddenPenalty = 128
	s.Grab.LabelSeconds = 3

	s.Index.Buckets = game.DefaultIndexBuckets
	s.Index.Pool = game.DefaultIndexPool
	s.Index.GridCell = game.TileSize
	s.Index.GridCellCap = game.DefaultGridCellCap

	s.Debug.StatsAddr = "localhost:8080"
	return s
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return oerror.ErrSettingsExisting
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, oerror.ErrSettingsMissing
	} else if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %w", err)
	}

	s := DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	return s, nil
}
