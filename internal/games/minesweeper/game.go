// Package minesweeper implements the classic mine-clearing puzzle.
package minesweeper

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	Size  = 10
	Mines = 15

	HiddenChar = '■'
	FlagChar   = '⚑'
	MineChar   = '*'
	ZeroChar   = '·'

	cellW   = 3
	gridTop = 3
)

var numberColors = [9]core.Color{
	core.ColorDefault, core.ColorBrightBlue, core.ColorGreen, core.ColorRed, core.ColorBlue,
	core.ColorMagenta, core.ColorCyan, core.ColorBrightWhite, core.ColorGray,
}

type cell struct {
	mine     bool
	revealed bool
	flagged  bool
	adjacent int
}

// Game implements minesweeper.
type Game struct {
	lc        engine.Lifecycle
	grid      [Size][Size]cell
	placed    bool
	revealed  int
	flags     int
	curX      int
	curY      int
	boomX     int
	boomY     int
	score     int
	runtime   core.RuntimeConfig
	rng       *rand.Rand
	tickCount int
}

// New creates a new game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "minesweeper" }
func (g *Game) Title() string { return "Minesweeper" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Clear a 10x10 field hiding 15 mines" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryPuzzle }

// Reset clears the field. Mines are laid on the first reveal.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.grid = [Size][Size]cell{}
	g.placed = false
	g.revealed = 0
	g.flags = 0
	g.curX, g.curY = Size/2, Size/2
	g.boomX, g.boomY = -1, -1
	g.score = 0
	g.tickCount = 0

	g.lc.Restart()
	g.lc.Start()
}

// placeMines lays Mines mines anywhere except (safeX, safeY).
func (g *Game) placeMines(safeX, safeY int) {
	for n := 0; n < Mines; {
		x, y := g.rng.Intn(Size), g.rng.Intn(Size)
		if (x == safeX && y == safeY) || g.grid[y][x].mine {
			continue
		}
		g.grid[y][x].mine = true
		n++
	}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			g.grid[y][x].adjacent = g.countAdjacent(x, y)
		}
	}
	g.placed = true
}

func (g *Game) countAdjacent(x, y int) int {
	n := 0
	g.neighbours(x, y, func(nx, ny int) {
		if g.grid[ny][nx].mine {
			n++
		}
	})
	return n
}

func (g *Game) neighbours(x, y int, fn func(nx, ny int)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if (dx == 0 && dy == 0) || nx < 0 || ny < 0 || nx >= Size || ny >= Size {
				continue
			}
			fn(nx, ny)
		}
	}
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
		g.curY = core.Clamp(g.curY-1, 0, Size-1)
	case in.Has(core.ActionDown):
		g.curY = core.Clamp(g.curY+1, 0, Size-1)
	case in.Has(core.ActionLeft):
		g.curX = core.Clamp(g.curX-1, 0, Size-1)
	case in.Has(core.ActionRight):
		g.curX = core.Clamp(g.curX+1, 0, Size-1)
	}

	if in.Click != nil {
		if x, y, ok := g.cellAt(in.Click.X, in.Click.Y); ok {
			g.curX, g.curY = x, y
			if in.Click.Secondary {
				g.ToggleFlag(x, y)
			} else {
				g.Reveal(x, y)
			}
		}
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionFlag):
		g.ToggleFlag(g.curX, g.curY)
	case in.Has(core.ActionConfirm) || in.Has(core.ActionJump):
		g.Reveal(g.curX, g.curY)
	}
	return core.StepResult{State: g.State()}
}

// ToggleFlag marks or unmarks a hidden cell.
func (g *Game) ToggleFlag(x, y int) {
	c := &g.grid[y][x]
	if c.revealed {
		return
	}
	c.flagged = !c.flagged
	if c.flagged {
		g.flags++
	} else {
		g.flags--
	}
}

// Reveal opens (x, y). The first reveal of a game is never a mine.
func (g *Game) Reveal(x, y int) {
	if g.lc.Over() || g.grid[y][x].flagged || g.grid[y][x].revealed {
		return
	}
	if !g.placed {
		g.placeMines(x, y)
	}
	if g.grid[y][x].mine {
		g.grid[y][x].revealed = true
		g.boomX, g.boomY = x, y
		g.lc.End(false)
		return
	}

	g.flood(x, y)
	g.score = g.revealed * 10
	if g.revealed == Size*Size-Mines {
		g.score += max(0, 500-2*g.tickCount/max(1, g.runtime.TickRate))
		g.lc.End(true)
	}
}

// flood reveals (x, y) and, for zero cells, every neighbour. Each cell is
// marked revealed before recursing, so each is visited once.
func (g *Game) flood(x, y int) {
	c := &g.grid[y][x]
	if c.revealed || c.flagged || c.mine {
		return
	}
	c.revealed = true
	g.revealed++
	if c.adjacent != 0 {
		return
	}
	g.neighbours(x, y, g.flood)
}

func (g *Game) gridLeft() int {
	return (g.runtime.ScreenW - Size*cellW) / 2
}

func (g *Game) cellAt(sx, sy int) (int, int, bool) {
	dx, dy := sx-g.gridLeft(), sy-gridTop
	if dx < 0 || dy < 0 || dx >= Size*cellW || dy >= Size {
		return 0, 0, false
	}
	return dx / cellW, dy, true
}

// Render draws the field.
func (g *Game) Render(dst *core.Screen) {
	left := g.gridLeft()
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			sx, sy := left+x*cellW+1, gridTop+y
			c := g.grid[y][x]
			switch {
			case c.revealed && c.mine:
				dst.SetColor(sx, sy, MineChar, core.ColorBrightRed)
			case c.mine && g.lc.Over():
				dst.SetColor(sx, sy, MineChar, core.ColorGray)
			case c.flagged:
				dst.SetColor(sx, sy, FlagChar, core.ColorRed)
			case !c.revealed:
				dst.SetColor(sx, sy, HiddenChar, core.ColorGray)
			case c.adjacent == 0:
				dst.Set(sx, sy, ZeroChar)
			default:
				dst.SetColor(sx, sy, rune('0'+c.adjacent), numberColors[c.adjacent])
			}
		}
	}
	if !g.lc.Over() {
		cx := left + g.curX*cellW
		dst.SetColor(cx, gridTop+g.curY, '[', core.ColorBrightYellow)
		dst.SetColor(cx+2, gridTop+g.curY, ']', core.ColorBrightYellow)
	}

	dst.DrawText(2, 0, fmt.Sprintf(" Mines: %d  Flags: %d  Score: %d ", Mines, g.flags, g.score))
	dst.DrawText(2, gridTop+Size+1, "Enter: reveal  F: flag  Right-click: flag")

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.lc.Over() {
		title := "BOOM!"
		if g.lc.Won() {
			title = "FIELD CLEARED!"
		}
		dst.DrawMessageBox(title, fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.score,
		GameOver: g.lc.Over(),
		Won:      g.lc.Won(),
		Paused:   g.lc.Paused(),
	}
	switch {
	case st.Won:
		st.Message = "You cleared the field!"
	case st.GameOver:
		st.Message = "You hit a mine"
	}
	return st
}

func init() {
	registry.Register("minesweeper", func() registry.Game { return New() })
}
