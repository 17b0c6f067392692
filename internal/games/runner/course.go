package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

// Course scrolls obstacles leftwards. An interval spawner drops a new
// obstacle at the right edge; its interval is the spacing range in cells
// converted to ticks at the current speed.
type Course struct {
	obstacles  *engine.Store
	spawner    *engine.IntervalSpawner
	rng        *rand.Rand
	screenW    int
	groundY    int
	cfg        *config.RunnerConfig
	difficulty *config.DifficultyManager
}

// NewCourse creates a course seeded for deterministic spawning.
func NewCourse(seed int64, screenW, groundY int, cfg *config.RunnerConfig, diff *config.DifficultyManager) *Course {
	c := &Course{obstacles: engine.NewStore(), spawner: engine.NewIntervalSpawner(1, 0)}
	c.Configure(screenW, groundY, cfg, diff)
	c.Reset(seed)
	return c
}

// Configure swaps in new tuning and screen geometry.
func (c *Course) Configure(screenW, groundY int, cfg *config.RunnerConfig, diff *config.DifficultyManager) {
	c.screenW = screenW
	c.groundY = groundY
	c.cfg = cfg
	c.difficulty = diff
}

// Reset clears all obstacles and reseeds the RNG. The first obstacle
// arrives once MinSpacing cells have scrolled by at base speed.
func (c *Course) Reset(seed int64) {
	c.obstacles.Reset()
	c.rng = rand.New(rand.NewSource(seed))
	c.spawner.Every = ticksToCover(float64(c.cfg.Obstacles.MinSpacing), c.cfg.Physics.BaseSpeed)
	c.spawner.Jitter = 0
	c.spawner.Reset()
}

// Update moves obstacles by the current speed and spawns when the
// spawner fires.
func (c *Course) Update(score, ticks int) {
	speed := c.difficulty.Speed(c.cfg.Physics.BaseSpeed, score, ticks)
	if speed < 0.1 {
		speed = 0.1
	}

	c.obstacles.Each(func(e *engine.Entity) {
		e.DX = -speed
		e.Move(1)
		if e.Right() <= 0 {
			e.Dead = true
		}
	})
	c.obstacles.Sweep()

	c.pace(speed, score, ticks)
	if c.spawner.Tick(c.rng) {
		c.spawn()
	}
}

// pace retunes the spawner for the gap that follows the next spawn.
// Gaps are measured between left edges, so the widest obstacle is added
// to the minimum spacing.
func (c *Course) pace(speed float64, score, ticks int) {
	o := c.cfg.Obstacles
	c.spawner.Every = ticksToCover(float64(o.MaxWidth+o.MinSpacing), speed)
	c.spawner.Jitter = 0
	if maxSpacing := c.difficulty.Spacing(o.MaxSpacing, o.MinSpacing, score, ticks); maxSpacing > o.MinSpacing {
		c.spawner.Jitter = ticksToCover(float64(maxSpacing-o.MinSpacing), speed)
	}
}

func ticksToCover(cells, speed float64) int {
	if speed <= 0 {
		return 1
	}
	return max(int(math.Ceil(cells/speed)), 1)
}

func (c *Course) spawn() {
	o := c.cfg.Obstacles
	width := o.MinWidth
	if o.MaxWidth > o.MinWidth {
		width += c.rng.Intn(o.MaxWidth - o.MinWidth + 1)
	}
	height := o.MinHeight
	if o.MaxHeight > o.MinHeight {
		height += c.rng.Intn(o.MaxHeight - o.MinHeight + 1)
	}
	c.obstacles.Spawn(engine.NewBox(engine.KindObstacle, float64(c.screenW), float64(c.groundY-height), float64(width), float64(height)))
}

// Hits reports whether the player collides with any obstacle.
func (c *Course) Hits(player *engine.Entity) bool {
	return c.obstacles.FirstHit(player, engine.KindObstacle) != nil
}

// Obstacles exposes the store for rendering.
func (c *Course) Obstacles() *engine.Store {
	return c.obstacles
}
