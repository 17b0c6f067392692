package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		id   string
		load func() any
		want any
	}{
		{"runner", func() any { c, _ := Load("runner", RunnerConfig{}); return c }, DefaultRunnerConfig()},
		{"catcher", func() any { c, _ := Load("catcher", CatcherConfig{}); return c }, DefaultCatcherConfig()},
		{"colorswitch", func() any { c, _ := Load("colorswitch", ColorSwitchConfig{}); return c }, DefaultColorSwitchConfig()},
		{"shooter", func() any { c, _ := Load("shooter", ShooterConfig{}); return c }, DefaultShooterConfig()},
		{"breakout", func() any { c, _ := Load("breakout", BreakoutConfig{}); return c }, DefaultBreakoutConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if DefaultYAML(tt.id) == nil {
				t.Fatalf("no embedded yaml for %s", tt.id)
			}
			// Only meaningful when no user override exists on this machine.
			if _, err := os.Stat(userConfigPath(tt.id + ".yaml")); err == nil {
				t.Skip("user config present")
			}
			got := tt.load()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("embedded %s.yaml differs from hardcoded default:\n got %+v\nwant %+v", tt.id, got, tt.want)
			}
		})
	}
}

func TestFroggerDefaultLanes(t *testing.T) {
	cfg := DefaultFroggerConfig()
	if len(cfg.Lanes) == 0 {
		t.Fatal("frogger needs lanes")
	}
	var road, water bool
	for _, l := range cfg.Lanes {
		switch l.Kind {
		case "road":
			road = true
		case "water":
			water = true
		}
	}
	if !road || !water {
		t.Error("default frogger layout should have both road and water lanes")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runner.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 9.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	SetConfigPath("runner", path)
	defer SetConfigPath("runner", "")

	cfg, err := Load("runner", DefaultRunnerConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Physics.Gravity != 9.5 {
		t.Errorf("gravity = %v, expected 9.5", cfg.Physics.Gravity)
	}
	// Unset keys keep the fallback
	if cfg.Player.Width != DefaultRunnerConfig().Player.Width {
		t.Errorf("player width should fall back, got %d", cfg.Player.Width)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	SetConfigPath("runner", filepath.Join(dir, "missing.yaml"))
	if _, err := Load("runner", DefaultRunnerConfig()); err == nil {
		t.Error("missing custom config should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath("runner", bad)
	if _, err := Load("runner", DefaultRunnerConfig()); err == nil {
		t.Error("malformed custom config should be an error")
	}
	SetConfigPath("runner", "")

	// The Load* helpers swallow the error and fall back
	SetConfigPath("runner", bad)
	defer SetConfigPath("runner", "")
	if got := LoadRunner(); got.Player.X != DefaultRunnerConfig().Player.X {
		t.Errorf("LoadRunner should fall back to defaults, got %+v", got.Player)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in      string
		enabled bool
		level   float64
	}{
		{"easy", true, 0.0},
		{"normal", true, 0.3},
		{"hard", true, 0.7},
		{"fixed", false, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d := DifficultyConfig{Enabled: true}
			d.Apply(ParsePreset(tt.in))
			if d.Enabled != tt.enabled || d.InitialLevel != tt.level {
				t.Errorf("Apply(%s) = %+v", tt.in, d)
			}
		})
	}

	if ParsePreset("insane") != "" {
		t.Error("unknown preset should parse as empty")
	}

	d := DifficultyConfig{Enabled: true, InitialLevel: 0.5}
	d.Apply("")
	if !d.Enabled || d.InitialLevel != 0.5 {
		t.Error("empty preset should leave config untouched")
	}
}

func TestBreakoutPresetAdjustsGameplay(t *testing.T) {
	SetDifficultyPreset("hard")
	defer SetDifficultyPreset("")

	cfg := LoadBreakout()
	if cfg.Lives != 2 || cfg.Paddle.Width != 6 {
		t.Errorf("hard preset should tighten breakout, got lives=%d width=%d", cfg.Lives, cfg.Paddle.Width)
	}
}

func TestContent(t *testing.T) {
	words, err := LoadWords()
	if err != nil {
		t.Fatalf("LoadWords: %v", err)
	}
	if len(words) != 15 {
		t.Errorf("word pool should hold 15 words, got %d", len(words))
	}

	qs, err := LoadQuestions()
	if err != nil {
		t.Fatalf("LoadQuestions: %v", err)
	}
	for i, q := range qs {
		if !q.Valid() {
			t.Errorf("question %d invalid: %+v", i, q)
		}
	}
}

func TestParseQuestionsDropsInvalid(t *testing.T) {
	doc := []byte(`
questions:
  - question: "ok?"
    choices: ["a", "b"]
    answer: 1
  - question: "bad index"
    choices: ["a", "b"]
    answer: 5
`)
	qs, err := ParseQuestions(doc)
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if len(qs) != 1 {
		t.Errorf("expected 1 valid question, got %d", len(qs))
	}

	if _, err := ParseQuestions([]byte("questions: []")); err != ErrNoContent {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}
