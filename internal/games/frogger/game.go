// Package frogger implements a lane-crossing game: hop the frog across
// roads full of cars and a river of drifting logs to reach the far bank.
package frogger

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	FrogChar  = '@'
	CarChar   = '█'
	LogChar   = '═'
	WaterChar = '~'
	BankChar  = '░'
)

// lane is one row of the board and everything moving along it.
type lane struct {
	cfg   config.FroggerLane
	items *engine.Store
	span  float64 // Wrap distance for items leaving the screen
}

// Game implements frogger.
type Game struct {
	lc         engine.Lifecycle
	cfg        config.FroggerConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	lanes      []lane

	frog       engine.Entity
	row        int // 0 = start bank, len(lanes)+1 = goal bank
	furthest   int // Best row reached this life
	score      int
	lives      int
	crossings  int
	tickCount  int
	flashTicks int // Death flash countdown
}

// New creates a new game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "frogger" }
func (g *Game) Title() string { return "Frogger" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Cross the road and the river without getting squashed" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryArcade }

// Reset starts a fresh game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = config.LoadFrogger()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.lanes = g.lanes[:0]
	for _, lc := range g.cfg.Lanes {
		g.lanes = append(g.lanes, g.buildLane(lc))
	}

	g.score = 0
	g.lives = g.cfg.Lives
	g.crossings = 0
	g.tickCount = 0
	g.flashTicks = 0
	g.respawn()

	g.lc.Restart()
	g.lc.Start()
}

func (g *Game) buildLane(lc config.FroggerLane) lane {
	l := lane{cfg: lc, items: engine.NewStore()}
	if lc.Kind == "safe" || lc.Length <= 0 {
		return l
	}
	period := lc.Length + max(lc.Gap, 1)
	count := (g.runtime.ScreenW+lc.Length)/period + 1
	l.span = float64(count * period)

	offset := g.rng.Intn(period)
	for i := 0; i < count; i++ {
		e := engine.NewBox(engine.KindObstacle, float64(offset+i*period), 0, float64(lc.Length), 1)
		if lc.Kind == "water" {
			e.SetStatus(engine.StatusSticky, true)
		}
		l.items.Spawn(e)
	}
	return l
}

func (g *Game) goalRow() int {
	return len(g.lanes) + 1
}

// rowY maps a board row to a screen row; the goal bank is at the top.
func (g *Game) rowY(row int) int {
	return 2 + g.goalRow() - row
}

func (g *Game) respawn() {
	g.row = 0
	g.furthest = 0
	g.frog = engine.NewBox(engine.KindPlayer, float64(g.runtime.ScreenW/2), 0, 1, 1)
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
	if g.flashTicks > 0 {
		g.flashTicks--
	}

	g.hop(in)
	g.moveLanes()
	g.resolve()

	return core.StepResult{State: g.State()}
}

func (g *Game) hop(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.row++
	case in.Has(core.ActionDown):
		g.row = max(g.row-1, 0)
	case in.Has(core.ActionLeft):
		g.frog.X = math.Max(g.frog.X-1, 0)
	case in.Has(core.ActionRight):
		g.frog.X = math.Min(g.frog.X+1, float64(g.runtime.ScreenW-1))
	default:
		return
	}
	// A hop lands on a whole cell, even when leaving a drifting log
	g.frog.X = math.Round(g.frog.X)

	if g.row > g.furthest && g.row < g.goalRow() {
		g.furthest = g.row
		g.score += g.cfg.HopPoints
	}
}

func (g *Game) moveLanes() {
	w := float64(g.runtime.ScreenW)
	for i := range g.lanes {
		l := &g.lanes[i]
		speed := g.difficulty.Speed(l.cfg.Speed, g.score, g.tickCount)
		l.items.Each(func(e *engine.Entity) {
			e.DX = speed
			e.Move(1)
			if speed > 0 && e.Left() >= w {
				e.X -= l.span
			}
			if speed < 0 && e.Right() <= 0 {
				e.X += l.span
			}
		})
	}
}

// laneAt returns the lane under a board row, or nil for the banks.
func (g *Game) laneAt(row int) *lane {
	if row < 1 || row > len(g.lanes) {
		return nil
	}
	return &g.lanes[row-1]
}

func (g *Game) resolve() {
	if g.row >= g.goalRow() {
		g.score += g.cfg.GoalPoints
		g.crossings++
		g.respawn()
		return
	}

	l := g.laneAt(g.row)
	if l == nil || l.cfg.Kind == "safe" {
		return
	}

	hit := l.items.FirstHit(&g.frog, engine.KindObstacle)
	switch l.cfg.Kind {
	case "road":
		if hit != nil {
			g.loseLife()
		}
	case "water":
		if hit == nil || !hit.Has(engine.StatusSticky) {
			g.loseLife()
			return
		}
		g.frog.X += hit.DX
		if g.frog.X < 0 || g.frog.X > float64(g.runtime.ScreenW-1) {
			g.loseLife()
		}
	}
}

func (g *Game) loseLife() {
	g.lives--
	g.flashTicks = g.runtime.TicksFor(400)
	if g.lives <= 0 {
		g.lives = 0
		g.lc.End(false)
		return
	}
	g.respawn()
}

// Render draws the board.
func (g *Game) Render(dst *core.Screen) {
	w := dst.Width()
	dst.DrawHLine(0, g.rowY(g.goalRow()), w, BankChar)
	dst.DrawHLine(0, g.rowY(0), w, BankChar)

	for i := range g.lanes {
		l := &g.lanes[i]
		y := g.rowY(i + 1)
		switch l.cfg.Kind {
		case "water":
			for x := 0; x < w; x++ {
				dst.SetColor(x, y, WaterChar, core.ColorBlue)
			}
		case "safe":
			dst.DrawHLine(0, y, w, BankChar)
		}
		l.items.Each(func(e *engine.Entity) {
			r := e.Bounds()
			r.Y = y
			if l.cfg.Kind == "water" {
				dst.DrawRectColor(r, LogChar, core.ColorYellow)
			} else {
				dst.DrawRectColor(r, CarChar, core.ColorRed)
			}
		})
	}

	frogColor := core.ColorBrightGreen
	if g.flashTicks > 0 {
		frogColor = core.ColorBrightRed
	}
	dst.SetColor(int(g.frog.X), g.rowY(g.row), FrogChar, frogColor)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d  Lives: %d  Crossings: %d ", g.score, g.lives, g.crossings))

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.lc.Over() {
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
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
	registry.Register("frogger", func() registry.Game { return New() })
}
