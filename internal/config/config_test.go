package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(defaultBlockfallYAML)
	if err != nil {
		t.Fatalf("parse embedded: %v", err)
	}
	def := DefaultBlockfallConfig()

	if cfg.Board != def.Board {
		t.Errorf("board = %+v, want %+v", cfg.Board, def.Board)
	}
	if cfg.Gravity != def.Gravity {
		t.Errorf("gravity = %+v, want %+v", cfg.Gravity, def.Gravity)
	}
	if cfg.AI != def.AI {
		t.Errorf("ai = %+v, want %+v", cfg.AI, def.AI)
	}
	if cfg.Powerups != def.Powerups {
		t.Errorf("powerups = %+v, want %+v", cfg.Powerups, def.Powerups)
	}
	if len(cfg.Levels.Bands) != len(def.Levels.Bands) {
		t.Fatalf("bands = %d, want %d", len(cfg.Levels.Bands), len(def.Levels.Bands))
	}
	for i := range def.Levels.Bands {
		got, want := cfg.Levels.Bands[i], def.Levels.Bands[i]
		if got.FirstLevel != want.FirstLevel || got.Target != want.Target || len(got.Patterns) != len(want.Patterns) {
			t.Errorf("band %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "board:\n  width: 10\ngravity:\n  base_ms: 800\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlockfall(path)
	if err != nil {
		t.Fatalf("LoadBlockfall: %v", err)
	}
	if cfg.Board.Width != 10 || cfg.Board.Height != 20 {
		t.Errorf("board = %+v, want 10x20", cfg.Board)
	}
	if cfg.Gravity.BaseMS != 800 || cfg.Gravity.StepMS != 20 {
		t.Errorf("gravity = %+v", cfg.Gravity)
	}
	if len(cfg.Levels.Bands) != 4 {
		t.Errorf("bands = %d, want default 4", len(cfg.Levels.Bands))
	}
}

func TestLoadCustomPathReplacesBands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bands.yaml")
	data := "levels:\n  bands:\n    - first_level: 1\n      target: lines\n      move_multiplier: 1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlockfall(path)
	if err != nil {
		t.Fatalf("LoadBlockfall: %v", err)
	}
	if len(cfg.Levels.Bands) != 1 {
		t.Errorf("bands = %d, want 1", len(cfg.Levels.Bands))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadBlockfall(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board:\n  width: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBlockfall(bad); err == nil {
		t.Error("expected error for 2-wide board")
	}
}

func TestEngineSettings(t *testing.T) {
	s := DefaultBlockfallConfig().EngineSettings()
	if s.Width != 15 || s.Height != 20 {
		t.Errorf("size = %dx%d", s.Width, s.Height)
	}
	if got := s.GravityInterval(1); got != 480*time.Millisecond {
		t.Errorf("GravityInterval(1) = %v, want 480ms", got)
	}
	if s.LineScore(4) != 500 {
		t.Errorf("LineScore(4) = %d, want 500", s.LineScore(4))
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		level     int
		fixed     bool
		speed     int
		maxAssist int
	}{
		{DifficultyEasy, 1, false, 3, 5},
		{DifficultyNormal, 3, false, 5, 3},
		{DifficultyHard, 6, false, 8, 1},
		{DifficultyFixed, 1, true, 5, 3},
	}
	for _, tt := range tests {
		cfg := DefaultBlockfallConfig()
		ApplyBlockfallPreset(&cfg, tt.preset)
		if cfg.Gravity.StartLevel != tt.level || cfg.Gravity.Fixed != tt.fixed || cfg.AI.Speed != tt.speed {
			t.Errorf("%s: gravity %+v speed %d", tt.preset, cfg.Gravity, cfg.AI.Speed)
		}
		if cfg.Powerups.AIAssist != tt.maxAssist {
			t.Errorf("%s: ai_assist = %d, want %d", tt.preset, cfg.Powerups.AIAssist, tt.maxAssist)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
