package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/motion/oerror"
)

func TestSaveDefaultThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motion.toml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("unexpected error saving defaults: %v", err)
	}
	if err := SaveDefault(path); !errors.Is(err, oerror.ErrSettingsExisting) {
		t.Fatalf("expected ErrSettingsExisting, got %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading: %v", err)
	}
	def := DefaultSettings()
	if s.Motion.Gravity != def.Motion.Gravity || s.Friction.Ground != def.Friction.Ground || s.Index.Pool != def.Index.Pool {
		t.Fatalf("loaded settings differ from defaults")
	}
}

func TestLoadOverridesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	if err := os.WriteFile(path, []byte("[Friction]\nGround = 0.5\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading: %v", err)
	}
	if s.Friction.Ground != 0.5 {
		t.Fatalf("expected overridden ground friction 0.5, got %v", s.Friction.Ground)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, oerror.ErrSettingsMissing) {
		t.Fatalf("expected ErrSettingsMissing, got %v", err)
	}
}
