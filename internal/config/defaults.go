package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultYAML returns the embedded default YAML for a game, or nil.
func DefaultYAML(gameID string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + gameID + ".yaml")
	if err != nil {
		return nil
	}
	return data
}

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:      0.3,
			JumpImpulse:  -2.5,
			MaxFallSpeed: 4.0,
			BaseSpeed:    0.5,
		},
		Obstacles: RunnerObstacles{
			MinWidth:   1,
			MaxWidth:   3,
			MinHeight:  2,
			MaxHeight:  4,
			MinSpacing: 30,
			MaxSpacing: 50,
		},
		Player: RunnerPlayer{
			X:            8,
			Width:        3,
			Height:       3,
			GroundOffset: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  2.0,
				SpacingReduction: 20,
			},
		},
	}
}

// DefaultCatcherConfig returns the default catch-the-stars configuration.
func DefaultCatcherConfig() CatcherConfig {
	var cfg CatcherConfig
	cfg.Catcher.Width = 9
	cfg.Catcher.Speed = 2
	cfg.Stars.SpawnChance = 0.03
	cfg.Stars.MinSpeed = 0.15
	cfg.Stars.MaxSpeed = 0.35
	cfg.Stars.Radius = 0.5
	cfg.Stars.Points = 10
	cfg.Lives = 3
	cfg.Difficulty = DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 500},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0, SpawnBoost: 1.0},
	}
	return cfg
}

// DefaultFroggerConfig returns the default frogger configuration.
// Lanes are listed from the start row upwards.
func DefaultFroggerConfig() FroggerConfig {
	return FroggerConfig{
		Lanes: []FroggerLane{
			{Kind: "road", Speed: 0.20, Length: 4, Gap: 12},
			{Kind: "road", Speed: -0.30, Length: 3, Gap: 10},
			{Kind: "road", Speed: 0.25, Length: 6, Gap: 16},
			{Kind: "road", Speed: -0.40, Length: 3, Gap: 14},
			{Kind: "safe"},
			{Kind: "water", Speed: 0.15, Length: 8, Gap: 6},
			{Kind: "water", Speed: -0.20, Length: 6, Gap: 7},
			{Kind: "water", Speed: 0.25, Length: 10, Gap: 8},
			{Kind: "water", Speed: -0.15, Length: 7, Gap: 6},
		},
		Lives:      3,
		GoalPoints: 50,
		HopPoints:  1,
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 500},
			Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// DefaultColorSwitchConfig returns the default color switch configuration.
func DefaultColorSwitchConfig() ColorSwitchConfig {
	var cfg ColorSwitchConfig
	cfg.Physics.Gravity = 0.06
	cfg.Physics.JumpImpulse = -0.9
	cfg.Physics.MaxFallSpeed = 0.8
	cfg.Bars.Spacing = 8
	cfg.Bars.SegmentWidth = 6
	cfg.Bars.ScrollSpeed = 0.15
	cfg.Bars.Colors = 4
	cfg.Difficulty = DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 40},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.5},
	}
	return cfg
}

// DefaultShooterConfig returns the default space shooter configuration.
func DefaultShooterConfig() ShooterConfig {
	var cfg ShooterConfig
	cfg.Ship.Width = 3
	cfg.Ship.Speed = 2
	cfg.Bullets.Speed = 0.8
	cfg.Bullets.Cooldown = 6
	cfg.Enemies.SpawnEvery = 45
	cfg.Enemies.Jitter = 30
	cfg.Enemies.Speed = 0.08
	cfg.Enemies.Width = 3
	cfg.Enemies.Points = 10
	cfg.Lives = 3
	cfg.Difficulty = DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 7200},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.5, SpacingReduction: 25},
	}
	return cfg
}

// DefaultBreakoutConfig returns the default breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	var cfg BreakoutConfig
	cfg.Physics.BallSpeed = 0.3
	cfg.Physics.PaddleSpeed = 2
	cfg.Physics.MaxBallSpeed = 1.0
	cfg.Paddle.Width = 8
	cfg.Bricks.Rows = 5
	cfg.Bricks.Cols = 12
	cfg.Bricks.Points = 10
	cfg.Lives = 3
	cfg.Difficulty = DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 600},
		Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
	}
	return cfg
}
