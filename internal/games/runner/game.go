// Package runner implements an endless runner.
// The player jumps over obstacles that scroll in from the right.
package runner

import (
	"fmt"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// Visual characters for rendering
const (
	BodyChar     = '█'
	HeadChar     = '◆'
	Leg1Char     = '╱'
	Leg2Char     = '╲'
	ObstacleChar = '▓'
	GroundChar   = '═'
)

// Game implements the endless runner logic.
type Game struct {
	lc         engine.Lifecycle
	player     engine.Entity // X, Y is the top-left corner in screen space
	playerVel  float64
	grounded   bool
	course     *Course
	score      int
	runtime    core.RuntimeConfig
	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager
	tickCount  int
	groundY    int
	legFrame   int
}

// New creates a new runner instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Endless Runner"
}

// Description implements registry.Described.
func (g *Game) Description() string {
	return "Jump over obstacles for as long as you can"
}

// Category implements registry.Described.
func (g *Game) Category() registry.Category {
	return registry.CategoryArcade
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = config.LoadRunner()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.groundY = runtime.ScreenH - g.cfg.Player.GroundOffset
	p := g.cfg.Player
	g.player = engine.NewBox(engine.KindPlayer, float64(p.X), g.standingY(), float64(p.Width), float64(p.Height))
	g.playerVel = 0
	g.grounded = true
	g.score = 0
	g.tickCount = 0
	g.legFrame = 0

	if g.course == nil {
		g.course = NewCourse(runtime.Seed, runtime.ScreenW, g.groundY, &g.cfg, g.difficulty)
	} else {
		g.course.Configure(runtime.ScreenW, g.groundY, &g.cfg, g.difficulty)
		g.course.Reset(runtime.Seed)
	}

	g.lc.Restart()
	g.lc.Start()
}

func (g *Game) standingY() float64 {
	return float64(g.groundY - g.cfg.Player.Height)
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
	g.legFrame = (g.legFrame + 1) % 10

	if in.Has(core.ActionJump) && g.grounded {
		g.playerVel = g.cfg.Physics.JumpImpulse
		g.grounded = false
		g.player.SetStatus(engine.StatusJumping, true)
	}

	if !g.grounded {
		g.playerVel = core.ClampF(g.playerVel+g.cfg.Physics.Gravity, -1e9, g.cfg.Physics.MaxFallSpeed)
		g.player.DY = g.playerVel
		g.player.Move(1)

		if g.player.Y >= g.standingY() {
			g.player.Y = g.standingY()
			g.player.DY = 0
			g.playerVel = 0
			g.grounded = true
			g.player.SetStatus(engine.StatusJumping, false)
		}
	}

	g.course.Update(g.score, g.tickCount)

	// Distance travelled
	g.score++

	if g.course.Hits(&g.player) {
		g.lc.End(false)
	}

	return core.StepResult{State: g.State()}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawHLine(0, g.groundY, dst.Width(), GroundChar)

	g.course.Obstacles().Each(func(e *engine.Entity) {
		dst.DrawRectColor(e.Bounds(), ObstacleChar, core.ColorGreen)
	})

	g.drawPlayer(dst)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))

	if g.difficulty.IsEnabled() {
		speed := g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.score, g.tickCount)
		levelText := fmt.Sprintf(" Spd: %.1f ", speed)
		dst.DrawText(dst.Width()-len(levelText)-2, 0, levelText)
	}

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}

	if g.lc.Over() {
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawPlayer renders a 3x3 sprite:
//
//	 ◆█
//	███
//	╱╲
func (g *Game) drawPlayer(dst *core.Screen) {
	x, y := g.player.Cell()

	dst.Set(x+1, y, HeadChar)
	dst.Set(x+2, y, BodyChar)
	for dx := 0; dx < 3; dx++ {
		dst.Set(x+dx, y+1, BodyChar)
	}

	switch {
	case !g.grounded:
		dst.Set(x, y+2, Leg1Char)
		dst.Set(x+1, y+2, Leg2Char)
	case g.legFrame < 5:
		dst.Set(x, y+2, Leg1Char)
		dst.Set(x+2, y+2, Leg2Char)
	default:
		dst.Set(x+1, y+2, Leg1Char)
		dst.Set(x+2, y+2, Leg2Char)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.score,
		GameOver: g.lc.Over(),
		Paused:   g.lc.Paused(),
	}
	if st.GameOver {
		st.Message = fmt.Sprintf("You ran %d", g.score)
	}
	return st
}

func init() {
	registry.Register("runner", func() registry.Game {
		return New()
	})
}
