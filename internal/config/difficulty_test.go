package config

import "testing"

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0, SpacingReduction: 10, SpawnBoost: 1.0},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.0},
		{50, 0.5},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tt := range tests {
		if got := d.Level(tt.score, 0); got != tt.want {
			t.Errorf("Level(%d) = %v, expected %v", tt.score, got, tt.want)
		}
	}

	if got := d.Speed(1.0, 100, 0); got != 2.0 {
		t.Errorf("Speed at max = %v, expected 2.0", got)
	}
	if got := d.Spacing(30, 25, 100, 0); got != 25 {
		t.Errorf("Spacing should respect minimum, got %d", got)
	}
	if got := d.SpawnChance(0.8, 100, 0); got != 1.0 {
		t.Errorf("SpawnChance should cap at 1, got %v", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.3,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 10},
	})
	if got := d.Level(1000, 1000); got != 0.3 {
		t.Errorf("disabled manager should stay at initial level, got %v", got)
	}
	d.SetEnabled(true)
	if got := d.Level(0, 10); got != 1.0 {
		t.Errorf("time progression at max_at should be 1.0, got %v", got)
	}
}
