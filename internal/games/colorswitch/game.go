// Package colorswitch implements a colour-matching climber. The ball jumps
// up through scrolling bars and may only pass a segment of its own colour.
package colorswitch

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
	BallChar     = '●'
	SegmentChar  = '▬'
	SwitcherChar = '✦'
)

// Bars kept ahead of the ball.
const barsAhead = 4

// Game implements color switch. World Y grows downwards; the camera
// follows the ball up and never scrolls back down.
type Game struct {
	lc         engine.Lifecycle
	cfg        config.ColorSwitchConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *rand.Rand

	ball      engine.Entity
	vel       float64
	world     *engine.Store // Bar segments and switchers
	span      float64       // Width of the window bar segments wrap around in
	wrapLeft  float64       // Left edge of that window
	nextBarY  float64       // World Y of the next bar to create
	barIndex  int           // Bars created so far
	passed    int           // Bars the ball has cleared
	cameraTop float64
	tickCount int
	crashed   bool
}

// New creates a new game instance.
func New() *Game {
	return &Game{world: engine.NewStore()}
}

func (g *Game) ID() string    { return "colorswitch" }
func (g *Game) Title() string { return "Color Switch" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Jump through bars that match your colour" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryArcade }

// Reset starts a fresh climb. The ball waits for the first jump.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = config.LoadColorSwitch()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.world.Reset()

	g.ball = engine.NewCircle(engine.KindPlayer, float64(runtime.ScreenW/2), 0, 0.4)
	g.ball.Tag = g.colors()[g.rng.Intn(len(g.colors()))]
	g.vel = 0
	g.cameraTop = -float64(runtime.ScreenH) * 0.75
	g.nextBarY = -float64(g.cfg.Bars.Spacing)
	g.barIndex = 0
	g.passed = 0
	g.tickCount = 0
	g.crashed = false

	for i := 0; i < barsAhead; i++ {
		g.addBar()
	}

	g.lc.Restart()
}

// colors returns the palette colours in play.
func (g *Game) colors() []core.Color {
	n := core.Clamp(g.cfg.Bars.Colors, 2, len(core.Palette))
	return core.Palette[:n]
}

// addBar creates a bar at nextBarY and a switcher halfway to the one above.
// Bars alternate scroll direction.
func (g *Game) addBar() {
	colors := g.colors()
	segW := max(g.cfg.Bars.SegmentWidth, 1)
	per := segW * len(colors)
	count := ((g.runtime.ScreenW+segW)/per + 1) * len(colors)
	g.span = float64(count * segW)
	g.wrapLeft = -(g.span - float64(g.runtime.ScreenW)) / 2

	dir := 1.0
	if g.barIndex%2 == 1 {
		dir = -1
	}
	offset := float64(g.rng.Intn(per))
	for i := 0; i < count; i++ {
		x := g.wrapLeft + offset + float64(i*segW)
		if x >= g.wrapLeft+g.span {
			x -= g.span
		}
		seg := engine.NewBox(engine.KindObstacle, x, g.nextBarY, float64(segW), 1)
		seg.Tag = colors[i%len(colors)]
		seg.Speed = dir
		seg.Value = g.barIndex
		g.world.Spawn(seg)
	}

	sw := engine.NewCircle(engine.KindCollectible, g.ball.X, g.nextBarY-float64(g.cfg.Bars.Spacing)/2, 0.5)
	g.world.Spawn(sw)

	g.barIndex++
	g.nextBarY -= float64(g.cfg.Bars.Spacing)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.lc.Over() {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionJump) || in.Has(core.ActionUp) || in.Click != nil {
		g.lc.Start()
		if g.lc.Running() {
			g.vel = g.cfg.Physics.JumpImpulse
		}
	}
	if in.Has(core.ActionPause) {
		g.lc.TogglePause()
	}
	if !g.lc.Running() {
		return core.StepResult{State: g.State()}
	}
	g.tickCount++

	g.vel = math.Min(g.vel+g.cfg.Physics.Gravity, g.cfg.Physics.MaxFallSpeed)
	g.ball.DY = g.vel
	g.ball.Move(1)

	g.scrollBars()
	g.checkCollisions()
	if g.lc.Over() {
		return core.StepResult{State: g.State()}
	}

	// Camera follows the ball upwards only
	g.cameraTop = math.Min(g.cameraTop, g.ball.Y-float64(g.runtime.ScreenH)/2)
	if g.ball.Top() > g.cameraTop+float64(g.runtime.ScreenH) {
		g.lc.End(false)
	}

	g.world.Each(func(e *engine.Entity) {
		if e.Top() > g.cameraTop+float64(g.runtime.ScreenH)+2 {
			e.Dead = true
		}
	})
	g.world.Sweep()

	return core.StepResult{State: g.State()}
}

func (g *Game) scrollBars() {
	speed := g.difficulty.Speed(g.cfg.Bars.ScrollSpeed, g.passed, g.tickCount)
	g.world.Each(func(e *engine.Entity) {
		if e.Kind != engine.KindObstacle {
			return
		}
		e.DX = e.Speed * speed
		e.Move(1)
		// Segments tile [wrapLeft, wrapLeft+span); wrap to keep the tiling
		if e.Left() >= g.wrapLeft+g.span {
			e.X -= g.span
		}
		if e.Left() < g.wrapLeft {
			e.X += g.span
		}
	})
}

func (g *Game) checkCollisions() {
	g.world.Each(func(e *engine.Entity) {
		if g.lc.Over() || !engine.Collides(&g.ball, e) {
			return
		}
		switch e.Kind {
		case engine.KindObstacle:
			if e.Tag != g.ball.Tag {
				g.crashed = true
				g.lc.End(false)
			}
		case engine.KindCollectible:
			e.Dead = true
			g.switchColor()
		}
	})
	if g.lc.Over() {
		return
	}

	// A bar is cleared once the ball is fully above it
	clearedY := -float64(g.cfg.Bars.Spacing) * float64(g.passed+1)
	if g.ball.Bottom() < clearedY {
		g.passed++
		g.addBar()
	}
}

func (g *Game) switchColor() {
	colors := g.colors()
	next := colors[g.rng.Intn(len(colors)-1)]
	if next == g.ball.Tag {
		next = colors[len(colors)-1]
	}
	g.ball.Tag = next
}

func (g *Game) screenY(worldY float64) int {
	return int(math.Floor(worldY-g.cameraTop)) + 1
}

// Render draws the visible slice of the world.
func (g *Game) Render(dst *core.Screen) {
	g.world.Each(func(e *engine.Entity) {
		y := g.screenY(e.Y)
		switch e.Kind {
		case engine.KindObstacle:
			r := e.Bounds()
			r.Y = y
			dst.DrawRectColor(r, SegmentChar, e.Tag)
		case engine.KindCollectible:
			x, _ := e.Cell()
			dst.SetColor(x, y, SwitcherChar, core.ColorBrightWhite)
		}
	})

	x, _ := g.ball.Cell()
	dst.SetColor(x, g.screenY(g.ball.Y), BallChar, g.ball.Tag)

	dst.DrawText(2, 0, fmt.Sprintf(" Bars: %d ", g.passed))

	switch {
	case g.lc.Phase() == engine.PhaseReady:
		dst.DrawMessageBox("COLOR SWITCH", "Press Space to jump")
	case g.lc.Paused():
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	case g.lc.Over():
		reason := "You fell"
		if g.crashed {
			reason = "Wrong colour"
		}
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("%s  |  Bars: %d  |  Press R", reason, g.passed))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.passed,
		GameOver: g.lc.Over(),
		Paused:   g.lc.Paused(),
	}
}

func init() {
	registry.Register("colorswitch", func() registry.Game { return New() })
}
