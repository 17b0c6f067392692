// Package hanoi implements the Tower of Hanoi puzzle with an animated
// auto-solve demo.
package hanoi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	DefaultDisks = 4
	Pegs         = 3

	// seconds per animation stage
	liftSecs  = 0.12
	slideSecs = 0.2
	dropSecs  = 0.12

	pegTop = 4
)

var (
	ErrSamePeg         = errors.New("pick a different peg")
	ErrEmptyPeg        = errors.New("that peg is empty")
	ErrLargerOnSmaller = errors.New("a larger disk cannot go on a smaller one")
)

// Move shifts the top disk of From onto To.
type Move struct {
	From, To int
}

// Solve returns the optimal 2^n - 1 moves that carry n disks from one
// peg to another using via as the spare.
func Solve(n, from, to, via int) []Move {
	if n <= 0 {
		return nil
	}
	moves := Solve(n-1, from, via, to)
	moves = append(moves, Move{From: from, To: to})
	return append(moves, Solve(n-1, via, to, from)...)
}

// flight animates one disk being lifted, carried and dropped.
type flight struct {
	move  Move
	disk  int
	stage int
	lift  *gween.Tween
	slide *gween.Tween
	drop  *gween.Tween
	x, y  float32
}

// Game implements the Tower of Hanoi.
type Game struct {
	lc       engine.Lifecycle
	disks    int
	pegs     [Pegs][]int // bottom first, values are disk sizes 1..disks
	cursor   int
	selected int // -1 when nothing is held
	moves    int
	score    int
	message  string

	demo     []Move
	demoNext int
	anim     *flight

	runtime core.RuntimeConfig
}

// New creates a game with the default number of disks.
func New() *Game {
	return NewWithDisks(DefaultDisks)
}

// NewWithDisks creates a game with n disks.
func NewWithDisks(n int) *Game {
	return &Game{disks: max(1, n)}
}

func (g *Game) ID() string    { return "hanoi" }
func (g *Game) Title() string { return "Tower of Hanoi" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Move the tower to the right peg, H shows the solution" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryPuzzle }

// Optimal is the fewest moves that solve the puzzle.
func (g *Game) Optimal() int { return 1<<g.disks - 1 }

// Reset stacks every disk on the left peg.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.stack()
	g.cursor = 0
	g.selected = -1
	g.score = 0
	g.message = ""
	g.demo = nil
	g.demoNext = 0
	g.anim = nil

	g.lc.Restart()
	g.lc.Start()
}

func (g *Game) stack() {
	for i := range g.pegs {
		g.pegs[i] = g.pegs[i][:0]
	}
	for d := g.disks; d >= 1; d-- {
		g.pegs[0] = append(g.pegs[0], d)
	}
	g.moves = 0
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

	if g.demo != nil {
		g.stepDemo()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionHint) {
		g.startDemo()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionLeft) {
		g.cursor = (g.cursor + Pegs - 1) % Pegs
	}
	if in.Has(core.ActionRight) {
		g.cursor = (g.cursor + 1) % Pegs
	}

	pick := in.Has(core.ActionConfirm) || in.Has(core.ActionJump) || in.Has(core.ActionDown)
	if in.Click != nil {
		if p, ok := g.pegAt(in.Click.X); ok {
			g.cursor = p
			pick = true
		}
	}
	if pick {
		g.pick()
	}
	return core.StepResult{State: g.State()}
}

// pick lifts from the cursor peg, or places the held disk there.
func (g *Game) pick() {
	if g.selected < 0 {
		if len(g.pegs[g.cursor]) == 0 {
			g.message = ErrEmptyPeg.Error()
			return
		}
		g.selected = g.cursor
		g.message = ""
		return
	}

	from := g.selected
	g.selected = -1
	if from == g.cursor {
		g.message = ""
		return
	}
	if err := g.Apply(Move{From: from, To: g.cursor}); err != nil {
		g.message = err.Error()
		return
	}
	g.message = ""
	if g.Solved() {
		g.score = max(10, 1000*g.Optimal()/g.moves)
		g.lc.End(true)
	}
}

// Apply validates and performs m.
func (g *Game) Apply(m Move) error {
	if m.From == m.To {
		return ErrSamePeg
	}
	src := g.pegs[m.From]
	if len(src) == 0 {
		return ErrEmptyPeg
	}
	disk := src[len(src)-1]
	dst := g.pegs[m.To]
	if len(dst) > 0 && dst[len(dst)-1] < disk {
		return ErrLargerOnSmaller
	}
	g.pegs[m.From] = src[:len(src)-1]
	g.pegs[m.To] = append(dst, disk)
	g.moves++
	return nil
}

// Solved reports whether the whole tower sits on the right peg.
func (g *Game) Solved() bool {
	return len(g.pegs[Pegs-1]) == g.disks
}

// startDemo restacks the tower and plays the optimal solution.
func (g *Game) startDemo() {
	g.stack()
	g.selected = -1
	g.demo = Solve(g.disks, 0, Pegs-1, 1)
	g.demoNext = 0
	g.message = "Watch the solution..."
}

// stepDemo advances the current flight, starting the next move when idle.
func (g *Game) stepDemo() {
	if g.anim == nil {
		if g.demoNext >= len(g.demo) {
			g.message = fmt.Sprintf("Solved in %d moves", g.moves)
			g.lc.End(false)
			return
		}
		g.anim = g.newFlight(g.demo[g.demoNext])
		g.demoNext++
	}

	dt := float32(1) / float32(max(1, g.runtime.TickRate))
	f := g.anim
	var done bool
	switch f.stage {
	case 0:
		f.y, done = f.lift.Update(dt)
	case 1:
		f.x, done = f.slide.Update(dt)
	case 2:
		f.y, done = f.drop.Update(dt)
	}
	if !done {
		return
	}
	f.stage++
	if f.stage > 2 {
		_ = g.Apply(f.move)
		g.anim = nil
	}
}

// newFlight takes the moving disk off its peg for the animation.
func (g *Game) newFlight(m Move) *flight {
	src := g.pegs[m.From]
	disk := src[len(src)-1]
	fromY := float32(g.levelY(len(src) - 1))
	toY := float32(g.levelY(len(g.pegs[m.To])))
	fromX, toX := float32(g.pegX(m.From)), float32(g.pegX(m.To))
	return &flight{
		move:  m,
		disk:  disk,
		lift:  gween.New(fromY, pegTop-1, liftSecs, ease.OutQuad),
		slide: gween.New(fromX, toX, slideSecs, ease.InOutQuad),
		drop:  gween.New(pegTop-1, toY, dropSecs, ease.InQuad),
		x:     fromX,
		y:     fromY,
	}
}

// Demo reports whether the auto-solve demo is running.
func (g *Game) Demo() bool { return g.demo != nil }

func (g *Game) pegX(i int) int {
	return g.runtime.ScreenW * (i + 1) / (Pegs + 1)
}

func (g *Game) baseY() int {
	return pegTop + g.disks + 1
}

// levelY is the screen row of the disk at height level (0 = bottom).
func (g *Game) levelY(level int) int {
	return g.baseY() - 1 - level
}

func (g *Game) pegAt(x int) (int, bool) {
	half := g.runtime.ScreenW / (Pegs + 1) / 2
	for i := 0; i < Pegs; i++ {
		if x >= g.pegX(i)-half && x < g.pegX(i)+half {
			return i, true
		}
	}
	return 0, false
}

func drawDisk(dst *core.Screen, cx, y, size int) {
	w := 2*size + 1
	dst.DrawTextColor(cx-size, y, strings.Repeat("█", w), core.Palette[(size-1)%len(core.Palette)])
}

// Render draws pegs, disks and the flying disk.
func (g *Game) Render(dst *core.Screen) {
	base := g.baseY()
	dst.DrawHLine(0, base, dst.Width(), '═')

	for i := 0; i < Pegs; i++ {
		x := g.pegX(i)
		dst.DrawVLine(x, pegTop, g.disks+1, '│')
		peg := g.pegs[i]
		for level, size := range peg {
			top := level == len(peg)-1
			if top && g.anim != nil && g.anim.move.From == i {
				continue
			}
			y := g.levelY(level)
			if top && i == g.selected {
				y = pegTop - 1
			}
			drawDisk(dst, x, y, size)
		}
		if i == g.cursor && g.demo == nil && !g.lc.Over() {
			dst.SetColor(x, base+1, '▲', core.ColorBrightYellow)
		}
	}

	if f := g.anim; f != nil {
		drawDisk(dst, int(f.x+0.5), int(f.y+0.5), f.disk)
	}

	dst.DrawText(2, 0, fmt.Sprintf(" Moves: %d  Best: %d ", g.moves, g.Optimal()))
	if g.message != "" {
		dst.DrawTextCentered(base+3, g.message)
	}

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.lc.Over() {
		title := "TOWER MOVED!"
		if !g.lc.Won() {
			title = "DEMO FINISHED"
		}
		dst.DrawMessageBox(title, fmt.Sprintf("%d moves  |  Press R to play", g.moves))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.score,
		GameOver: g.lc.Over(),
		Won:      g.lc.Won(),
		Paused:   g.lc.Paused(),
		Message:  g.message,
	}
	if st.Won {
		st.Message = fmt.Sprintf("You moved the tower in %d moves", g.moves)
	}
	return st
}

func init() {
	registry.Register("hanoi", func() registry.Game { return New() })
}
