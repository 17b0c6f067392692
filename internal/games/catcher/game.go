// Package catcher implements catch-the-stars: move a basket along the
// bottom row and catch falling stars before they hit the ground.
package catcher

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	StarChar    = '★'
	CatcherChar = '▀'
)

// Game implements the catch-the-stars logic.
type Game struct {
	lc         engine.Lifecycle
	catcher    engine.Entity
	stars      *engine.Store
	spawner    engine.BernoulliSpawner
	rng        *rand.Rand
	cfg        config.CatcherConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	score      int
	lives      int
	caught     int
	tickCount  int
}

// New creates a new game instance.
func New() *Game {
	return &Game{stars: engine.NewStore()}
}

func (g *Game) ID() string    { return "catcher" }
func (g *Game) Title() string { return "Catch the Stars" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Catch falling stars, miss three and it's over" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryArcade }

// Reset starts a fresh game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = config.LoadCatcher()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.stars.Reset()

	w := float64(g.cfg.Catcher.Width)
	g.catcher = engine.NewBox(engine.KindPlayer, (float64(runtime.ScreenW)-w)/2, float64(runtime.ScreenH-2), w, 1)

	g.score = 0
	g.lives = g.cfg.Lives
	g.caught = 0
	g.tickCount = 0

	g.lc.Restart()
	g.lc.Start()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.lc.Over() {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.lc.TogglePause()
	}
	if !g.lc.Running() {
		return core.StepResult{State: g.State()}
	}
	g.tickCount++

	speed := g.cfg.Catcher.Speed
	if in.Has(core.ActionLeft) {
		g.catcher.X -= speed
	}
	if in.Has(core.ActionRight) {
		g.catcher.X += speed
	}
	if in.Click != nil {
		g.catcher.X = float64(in.Click.X) - g.catcher.W/2
	}
	g.clampCatcher()

	g.spawner.P = g.difficulty.SpawnChance(g.cfg.Stars.SpawnChance, g.score, g.tickCount)
	if g.spawner.Tick(g.rng) {
		g.spawnStar()
	}

	g.stars.Each(func(s *engine.Entity) {
		s.Move(1)
		switch {
		case engine.Collides(s, &g.catcher):
			s.Dead = true
			g.score += s.Value
			g.caught++
		case s.Top() >= float64(g.runtime.ScreenH-1):
			s.Dead = true
			g.lives--
		}
	})
	g.stars.Sweep()

	if g.lives <= 0 {
		g.lives = 0
		g.lc.End(false)
	}

	return core.StepResult{State: g.State()}
}

// clampCatcher keeps 0 <= x <= W - w.
func (g *Game) clampCatcher() {
	engine.ClampToBounds(&g.catcher, float64(g.runtime.ScreenW), float64(g.runtime.ScreenH))
}

func (g *Game) spawnStar() {
	c := g.cfg.Stars
	r := c.Radius
	x := r + g.rng.Float64()*(float64(g.runtime.ScreenW)-2*r)
	star := engine.NewCircle(engine.KindCollectible, x, 1, r)
	star.Speed = c.MinSpeed + g.rng.Float64()*(c.MaxSpeed-c.MinSpeed)
	star.Speed = g.difficulty.Speed(star.Speed, g.score, g.tickCount)
	star.DY = star.Speed
	star.Value = c.Points
	star.Tag = core.ColorBrightYellow
	g.stars.Spawn(star)
}

// Render draws the play field.
func (g *Game) Render(dst *core.Screen) {
	g.stars.Each(func(s *engine.Entity) {
		x, y := s.Cell()
		dst.SetColor(x, y, StarChar, s.Tag)
	})

	x, y := g.catcher.Cell()
	for i := 0; i < int(g.catcher.W); i++ {
		dst.SetColor(x+i, y, CatcherChar, core.ColorCyan)
	}
	dst.DrawHLine(0, g.runtime.ScreenH-1, dst.Width(), '─')

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d  Lives: %d ", g.score, g.lives))

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.lc.Over() {
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Caught %d stars  |  Press R to restart", g.caught))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		GameOver: g.lc.Over(),
		Paused:   g.lc.Paused(),
	}
}

func init() {
	registry.Register("catcher", func() registry.Game { return New() })
}
