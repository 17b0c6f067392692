// Package memory implements a memory match game: flip two cards at a time
// and find all pairs in as few moves as possible.
package memory

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	Size  = 4
	Pairs = Size * Size / 2

	// MismatchDelayMs is how long a wrong pair stays visible.
	MismatchDelayMs = 800

	cardW   = 6
	cardH   = 2
	gridTop = 3
)

var symbols = []rune("♠♥♦♣★●▲■")

type card struct {
	face    int // 0..Pairs-1
	up      bool
	matched bool
}

// Game implements memory match.
type Game struct {
	lc        engine.Lifecycle
	cards     [Size * Size]card
	cursor    int
	first     int // index of the first flipped card, -1 if none
	second    int
	hideWait  int
	moves     int
	found     int
	runtime   core.RuntimeConfig
	rng       *rand.Rand
	tickCount int
}

// New creates a new game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "memory" }
func (g *Game) Title() string { return "Memory Match" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Flip cards and find all eight pairs" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryPuzzle }

// LowerIsBetter implements registry.LowerIsBetter: score is the move count.
func (g *Game) LowerIsBetter() bool { return true }

// Reset deals a fresh shuffled grid.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	for i := range g.cards {
		g.cards[i] = card{face: i / 2}
	}
	g.rng.Shuffle(len(g.cards), func(i, j int) {
		g.cards[i], g.cards[j] = g.cards[j], g.cards[i]
	})

	g.cursor = 0
	g.first, g.second = -1, -1
	g.hideWait = 0
	g.moves = 0
	g.found = 0
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

	if g.hideWait > 0 {
		g.hideWait--
		if g.hideWait == 0 {
			g.cards[g.first].up = false
			g.cards[g.second].up = false
			g.first, g.second = -1, -1
		}
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	flip := in.Has(core.ActionConfirm) || in.Has(core.ActionJump)
	if in.Click != nil {
		if i, ok := g.cardAt(in.Click.X, in.Click.Y); ok {
			g.cursor = i
			flip = true
		}
	}
	if flip {
		g.flip(g.cursor)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	row, col := g.cursor/Size, g.cursor%Size
	switch {
	case in.Has(core.ActionUp):
		row = (row + Size - 1) % Size
	case in.Has(core.ActionDown):
		row = (row + 1) % Size
	case in.Has(core.ActionLeft):
		col = (col + Size - 1) % Size
	case in.Has(core.ActionRight):
		col = (col + 1) % Size
	}
	g.cursor = row*Size + col
}

// flip turns card i face up and resolves the pair once two are showing.
func (g *Game) flip(i int) {
	c := &g.cards[i]
	if c.up || c.matched {
		return
	}
	c.up = true

	if g.first < 0 {
		g.first = i
		return
	}

	g.second = i
	g.moves++
	a, b := &g.cards[g.first], &g.cards[g.second]
	if a.face != b.face {
		g.hideWait = g.runtime.TicksFor(MismatchDelayMs)
		return
	}

	a.matched, b.matched = true, true
	g.first, g.second = -1, -1
	g.found++
	if g.found == Pairs {
		g.lc.End(true)
	}
}

func (g *Game) gridLeft() int {
	return (g.runtime.ScreenW - Size*cardW) / 2
}

func (g *Game) cardAt(x, y int) (int, bool) {
	dx, dy := x-g.gridLeft(), y-gridTop
	if dx < 0 || dy < 0 || dx >= Size*cardW || dy >= Size*cardH {
		return 0, false
	}
	return (dy/cardH)*Size + dx/cardW, true
}

// Render draws the card grid.
func (g *Game) Render(dst *core.Screen) {
	left := g.gridLeft()
	for i, c := range g.cards {
		x := left + (i%Size)*cardW
		y := gridTop + (i/Size)*cardH

		color := core.ColorDefault
		if i == g.cursor && !g.lc.Over() {
			color = core.ColorBrightWhite
			dst.SetColor(x, y, '[', color)
			dst.SetColor(x+4, y, ']', color)
		}
		switch {
		case c.matched:
			dst.SetColor(x+2, y, symbols[c.face], core.ColorGray)
		case c.up:
			dst.SetColor(x+2, y, symbols[c.face], core.Palette[c.face%len(core.Palette)])
		default:
			dst.DrawTextColor(x+1, y, "▒▒▒", color)
		}
	}

	dst.DrawText(2, 0, fmt.Sprintf(" Moves: %d  Pairs: %d/%d ", g.moves, g.found, Pairs))

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.lc.Over() {
		dst.DrawMessageBox("ALL PAIRS FOUND!", fmt.Sprintf("%d moves  |  Press R to play again", g.moves))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.moves,
		GameOver: g.lc.Over(),
		Won:      g.lc.Won(),
		Paused:   g.lc.Paused(),
	}
	if st.Won {
		st.Message = fmt.Sprintf("You found every pair in %d moves", g.moves)
	}
	return st
}

func init() {
	registry.Register("memory", func() registry.Game { return New() })
}
