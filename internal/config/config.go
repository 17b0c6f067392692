// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// RunnerConfig contains all configuration for the endless runner.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	Player     RunnerPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines physics parameters for the runner.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// RunnerObstacles defines obstacle parameters for the runner.
type RunnerObstacles struct {
	MinWidth   int `yaml:"min_width"`
	MaxWidth   int `yaml:"max_width"`
	MinHeight  int `yaml:"min_height"`
	MaxHeight  int `yaml:"max_height"`
	MinSpacing int `yaml:"min_spacing"`
	MaxSpacing int `yaml:"max_spacing"`
}

// RunnerPlayer defines player parameters for the runner.
type RunnerPlayer struct {
	X            int `yaml:"x"`
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	GroundOffset int `yaml:"ground_offset"`
}

// CatcherConfig contains all configuration for catch-the-stars.
type CatcherConfig struct {
	Catcher struct {
		Width int     `yaml:"width"`
		Speed float64 `yaml:"speed"` // Cells per key press
	} `yaml:"catcher"`
	Stars struct {
		SpawnChance float64 `yaml:"spawn_chance"` // Per-tick probability
		MinSpeed    float64 `yaml:"min_speed"`
		MaxSpeed    float64 `yaml:"max_speed"`
		Radius      float64 `yaml:"radius"`
		Points      int     `yaml:"points"`
	} `yaml:"stars"`
	Lives      int              `yaml:"lives"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FroggerConfig contains all configuration for the frogger game.
type FroggerConfig struct {
	Lanes      []FroggerLane    `yaml:"lanes"`
	Lives      int              `yaml:"lives"`
	GoalPoints int              `yaml:"goal_points"`
	HopPoints  int              `yaml:"hop_points"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FroggerLane describes one row of traffic or river, listed bottom to top.
type FroggerLane struct {
	Kind   string  `yaml:"kind"`   // "road", "water" or "safe"
	Speed  float64 `yaml:"speed"`  // Cells per tick, negative moves left
	Length int     `yaml:"length"` // Car or log length
	Gap    int     `yaml:"gap"`    // Space between items
}

// ColorSwitchConfig contains all configuration for color switch.
type ColorSwitchConfig struct {
	Physics struct {
		Gravity      float64 `yaml:"gravity"`
		JumpImpulse  float64 `yaml:"jump_impulse"`
		MaxFallSpeed float64 `yaml:"max_fall_speed"`
	} `yaml:"physics"`
	Bars struct {
		Spacing      int     `yaml:"spacing"`       // Rows between bars
		SegmentWidth int     `yaml:"segment_width"` // Width of one colour segment
		ScrollSpeed  float64 `yaml:"scroll_speed"`  // Sideways drift, cells per tick
		Colors       int     `yaml:"colors"`        // Number of palette colours in play
	} `yaml:"bars"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ShooterConfig contains all configuration for the space shooter.
type ShooterConfig struct {
	Ship struct {
		Width int     `yaml:"width"`
		Speed float64 `yaml:"speed"`
	} `yaml:"ship"`
	Bullets struct {
		Speed    float64 `yaml:"speed"`
		Cooldown int     `yaml:"cooldown"` // Ticks between shots
	} `yaml:"bullets"`
	Enemies struct {
		SpawnEvery int     `yaml:"spawn_every"` // Ticks between spawns
		Jitter     int     `yaml:"jitter"`
		Speed      float64 `yaml:"speed"`
		Width      int     `yaml:"width"`
		Points     int     `yaml:"points"`
	} `yaml:"enemies"`
	Lives      int              `yaml:"lives"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakoutConfig contains all configuration for breakout.
type BreakoutConfig struct {
	Physics struct {
		BallSpeed    float64 `yaml:"ball_speed"`
		PaddleSpeed  float64 `yaml:"paddle_speed"`
		MaxBallSpeed float64 `yaml:"max_ball_speed"`
	} `yaml:"physics"`
	Paddle struct {
		Width int `yaml:"width"`
	} `yaml:"paddle"`
	Bricks struct {
		Rows   int `yaml:"rows"`
		Cols   int `yaml:"cols"`
		Points int `yaml:"points"`
	} `yaml:"bricks"`
	Lives      int              `yaml:"lives"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
	SpawnBoost       float64 `yaml:"spawn_boost"`       // Multiplier added to spawn chance at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Apply modifies the difficulty block for a preset. An empty preset keeps
// whatever the YAML says.
func (d *DifficultyConfig) Apply(preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		d.Enabled = false
	default:
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}
