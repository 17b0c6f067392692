// Package breakout implements the classic brick breaker: bounce the ball
// off the paddle to clear every brick.
package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
)

// Brick glyphs by row (cycling through)
var BrickGlyphs = []rune{'█', '▓', '▒', '░'}

var rowColors = []core.Color{core.ColorRed, core.ColorOrange, core.ColorYellow, core.ColorGreen, core.ColorBlue, core.ColorMagenta}

const (
	brickTop   = 3 // First brick row
	ballRadius = 0.5
	maxSubstep = 0.5 // Longest ball move per collision check
)

// Game implements breakout.
type Game struct {
	lc         engine.Lifecycle
	cfg        config.BreakoutConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig

	paddle engine.Entity
	ball   engine.Entity
	bricks *engine.Store
	served bool // Ball in play rather than resting on the paddle

	score       int
	lives       int
	bricksTotal int
	tickCount   int
}

// New creates a new game instance.
func New() *Game {
	return &Game{bricks: engine.NewStore()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Description implements registry.Described.
func (g *Game) Description() string { return "Clear the wall of bricks with a bouncing ball" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryArcade }

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = config.LoadBreakout()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	w := float64(g.cfg.Paddle.Width)
	g.paddle = engine.NewBox(engine.KindPlayer, (float64(runtime.ScreenW)-w)/2, float64(runtime.ScreenH-2), w, 1)
	g.ball = engine.NewCircle(engine.KindProjectile, 0, 0, ballRadius)

	g.buildWall()
	g.score = 0
	g.lives = g.cfg.Lives
	g.tickCount = 0
	g.serve()

	g.lc.Restart()
	g.lc.Start()
}

// buildWall lays out rows x cols bricks across the screen.
func (g *Game) buildWall() {
	g.bricks.Reset()
	cols := max(g.cfg.Bricks.Cols, 1)
	brickW := max((g.runtime.ScreenW-2)/cols, 1)
	left := (g.runtime.ScreenW - brickW*cols) / 2

	for row := 0; row < g.cfg.Bricks.Rows; row++ {
		for col := 0; col < cols; col++ {
			b := engine.NewBox(engine.KindObstacle, float64(left+col*brickW), float64(brickTop+row), float64(brickW), 1)
			b.Value = g.cfg.Bricks.Points * (g.cfg.Bricks.Rows - row)
			b.Tag = rowColors[row%len(rowColors)]
			g.bricks.Spawn(b)
		}
	}
	g.bricksTotal = g.bricks.Len()
}

// serve parks the ball on the paddle.
func (g *Game) serve() {
	g.served = false
	g.ball.DX, g.ball.DY = 0, 0
	g.stickBall()
}

func (g *Game) stickBall() {
	cx, _ := g.paddle.Center()
	g.ball.X = cx
	g.ball.Y = g.paddle.Y - ballRadius
}

func (g *Game) speed() float64 {
	s := g.difficulty.Speed(g.cfg.Physics.BallSpeed, g.score, g.tickCount)
	return math.Min(s, g.cfg.Physics.MaxBallSpeed)
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

	g.movePaddle(in)

	if !g.served {
		g.stickBall()
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) || in.Has(core.ActionUp) {
			s := g.speed()
			g.ball.DX = s * 0.6
			g.ball.DY = -s * 0.8
			g.served = true
		}
		return core.StepResult{State: g.State()}
	}

	g.moveBall()
	g.bricks.Sweep()

	if g.bricks.Count(engine.KindObstacle) == 0 {
		g.lc.End(true)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) movePaddle(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.paddle.X -= g.cfg.Physics.PaddleSpeed
	}
	if in.Has(core.ActionRight) {
		g.paddle.X += g.cfg.Physics.PaddleSpeed
	}
	if in.Click != nil {
		g.paddle.X = float64(in.Click.X) - g.paddle.W/2
	}
	engine.ClampToBounds(&g.paddle, float64(g.runtime.ScreenW), float64(g.runtime.ScreenH))
}

// moveBall advances the ball in substeps so it cannot tunnel through a brick.
func (g *Game) moveBall() {
	speed := math.Hypot(g.ball.DX, g.ball.DY)
	steps := max(int(math.Ceil(speed/maxSubstep)), 1)
	dt := 1 / float64(steps)
	w := float64(g.runtime.ScreenW)

	for i := 0; i < steps; i++ {
		prevX, prevY := g.ball.X, g.ball.Y
		g.ball.Move(dt)

		// Walls; row 0 is the HUD
		if g.ball.X < ballRadius {
			g.ball.X, g.ball.DX = ballRadius, math.Abs(g.ball.DX)
		}
		if g.ball.X > w-ballRadius {
			g.ball.X, g.ball.DX = w-ballRadius, -math.Abs(g.ball.DX)
		}
		if g.ball.Y < 1+ballRadius {
			g.ball.Y, g.ball.DY = 1+ballRadius, math.Abs(g.ball.DY)
		}

		if g.ball.Top() >= float64(g.runtime.ScreenH) {
			g.loseBall()
			return
		}

		if g.ball.DY > 0 && engine.Collides(&g.ball, &g.paddle) {
			g.bounceOffPaddle()
			continue
		}

		if brick := g.bricks.FirstHit(&g.ball, engine.KindObstacle); brick != nil {
			brick.Dead = true
			g.score += brick.Value
			g.reflectOff(brick, prevX, prevY)
			g.ball.X, g.ball.Y = prevX, prevY
		}
	}
}

// reflectOff flips the velocity axis along which the ball entered the brick.
func (g *Game) reflectOff(b *engine.Entity, prevX, prevY float64) {
	insideX := prevX >= b.Left() && prevX <= b.Right()
	insideY := prevY >= b.Top() && prevY <= b.Bottom()
	switch {
	case insideX && !insideY:
		g.ball.DY = -g.ball.DY
	case insideY && !insideX:
		g.ball.DX = -g.ball.DX
	default:
		g.ball.DX, g.ball.DY = -g.ball.DX, -g.ball.DY
	}
}

// bounceOffPaddle sends the ball up at an angle set by where it struck.
func (g *Game) bounceOffPaddle() {
	cx, _ := g.paddle.Center()
	offset := core.ClampF((g.ball.X-cx)/(g.paddle.W/2), -1, 1)
	s := g.speed()
	g.ball.DX = s * offset * 0.85
	g.ball.DY = -math.Sqrt(s*s - g.ball.DX*g.ball.DX)
	g.ball.Y = g.paddle.Y - ballRadius
}

func (g *Game) loseBall() {
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.lc.End(false)
		return
	}
	g.serve()
}

// Render draws bricks, paddle and ball.
func (g *Game) Render(dst *core.Screen) {
	g.bricks.Each(func(b *engine.Entity) {
		row := int(b.Y) - brickTop
		r := b.Bounds()
		dst.DrawRectColor(core.NewRect(r.X, r.Y, max(r.W-1, 1), 1), BrickGlyphs[row%len(BrickGlyphs)], b.Tag)
	})

	dst.DrawRectColor(g.paddle.Bounds(), PaddleChar, core.ColorBrightWhite)
	x, y := g.ball.Cell()
	dst.SetColor(x, y, BallChar, core.ColorBrightYellow)

	remaining := g.bricks.Count(engine.KindObstacle)
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d  Lives: %d  Bricks: %d/%d ", g.score, g.lives, remaining, g.bricksTotal))

	switch {
	case g.lc.Paused():
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	case g.lc.Won():
		dst.DrawMessageBox("YOU WIN!", fmt.Sprintf("Score: %d  |  Press R to play again", g.score))
	case g.lc.Over():
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case !g.served:
		dst.DrawTextCentered(dst.Height()/2, "Press Space to launch")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		GameOver: g.lc.Over(),
		Won:      g.lc.Won(),
		Paused:   g.lc.Paused(),
	}
	if st.Won {
		st.Message = "You cleared the wall!"
	}
	return st
}

func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
}
