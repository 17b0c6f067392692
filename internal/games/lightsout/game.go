// Package lightsout implements Lights Out: switch every light off,
// knowing that each press also flips the four neighbours.
package lightsout

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	Size = 5

	// ScramblePresses is the length of the random walk that builds a board.
	ScramblePresses = 15

	OnChar  = '█'
	OffChar = '░'

	cellW   = 4
	gridTop = 4
)

// Board is a grid of lights, true means on.
type Board [Size][Size]bool

// Press flips (x, y) and its orthogonal neighbours.
func (b *Board) Press(x, y int) {
	for _, d := range [5][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := x+d[0], y+d[1]
		if nx >= 0 && nx < Size && ny >= 0 && ny < Size {
			b[ny][nx] = !b[ny][nx]
		}
	}
}

// Lit counts lights that are on.
func (b *Board) Lit() int {
	n := 0
	for y := range b {
		for x := range b[y] {
			if b[y][x] {
				n++
			}
		}
	}
	return n
}

// Scramble builds a board by pressing random cells of a dark board, so
// replaying the same presses solves it. It never returns a dark board.
func Scramble(rng *rand.Rand, presses int) (Board, [][2]int) {
	for {
		var b Board
		walk := make([][2]int, 0, presses)
		for i := 0; i < presses; i++ {
			x, y := rng.Intn(Size), rng.Intn(Size)
			b.Press(x, y)
			walk = append(walk, [2]int{x, y})
		}
		if b.Lit() > 0 {
			return b, walk
		}
	}
}

// Game implements Lights Out.
type Game struct {
	lc        engine.Lifecycle
	board     Board
	walk      [][2]int
	curX      int
	curY      int
	presses   int
	runtime   core.RuntimeConfig
	rng       *rand.Rand
	tickCount int
}

// New creates a new game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "lightsout" }
func (g *Game) Title() string { return "Lights Out" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Turn off every light in as few presses as you can" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryPuzzle }

// LowerIsBetter implements registry.LowerIsBetter: score is the press count.
func (g *Game) LowerIsBetter() bool { return true }

// Reset generates a new solvable board.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.board, g.walk = Scramble(g.rng, ScramblePresses)
	g.curX, g.curY = Size/2, Size/2
	g.presses = 0
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

	switch {
	case in.Has(core.ActionUp):
		g.curY = (g.curY + Size - 1) % Size
	case in.Has(core.ActionDown):
		g.curY = (g.curY + 1) % Size
	case in.Has(core.ActionLeft):
		g.curX = (g.curX + Size - 1) % Size
	case in.Has(core.ActionRight):
		g.curX = (g.curX + 1) % Size
	}

	press := in.Has(core.ActionConfirm) || in.Has(core.ActionJump)
	if in.Click != nil {
		if x, y, ok := g.cellAt(in.Click.X, in.Click.Y); ok {
			g.curX, g.curY = x, y
			press = true
		}
	}
	if press {
		g.press(g.curX, g.curY)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) press(x, y int) {
	g.board.Press(x, y)
	g.presses++
	if g.board.Lit() == 0 {
		g.lc.End(true)
	}
}

func (g *Game) gridLeft() int {
	return (g.runtime.ScreenW - Size*cellW) / 2
}

func (g *Game) cellAt(sx, sy int) (int, int, bool) {
	dx, dy := sx-g.gridLeft(), (sy-gridTop)/2
	if dx < 0 || sy < gridTop || dx >= Size*cellW || dy >= Size {
		return 0, 0, false
	}
	return dx / cellW, dy, true
}

// Render draws the lights, two rows per cell.
func (g *Game) Render(dst *core.Screen) {
	left := g.gridLeft()
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			sx, sy := left+x*cellW, gridTop+y*2
			ch, color := OffChar, core.ColorGray
			if g.board[y][x] {
				ch, color = OnChar, core.ColorBrightYellow
			}
			for i := 1; i < cellW; i++ {
				dst.SetColor(sx+i, sy, ch, color)
			}
			if x == g.curX && y == g.curY && !g.lc.Over() {
				dst.SetColor(sx, sy, '[', core.ColorBrightWhite)
				dst.SetColor(sx+cellW, sy, ']', core.ColorBrightWhite)
			}
		}
	}

	dst.DrawText(2, 0, fmt.Sprintf(" Presses: %d  Lit: %d ", g.presses, g.board.Lit()))

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.lc.Over() {
		dst.DrawMessageBox("LIGHTS OUT!", fmt.Sprintf("%d presses  |  Press R to play again", g.presses))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.presses,
		GameOver: g.lc.Over(),
		Won:      g.lc.Won(),
		Paused:   g.lc.Paused(),
	}
	if st.Won {
		st.Message = fmt.Sprintf("All lights off in %d presses", g.presses)
	}
	return st
}

func init() {
	registry.Register("lightsout", func() registry.Game { return New() })
}
