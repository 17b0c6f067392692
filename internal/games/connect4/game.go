// Package connect4 implements Connect Four against the CPU or another
// player over the network.
package connect4

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	DiscChar   = '●'
	EmptyChar  = '·'
	CursorChar = '▼'

	cellW    = 4
	boardTop = 4

	// CPUDelayMs is how long the CPU "thinks" before dropping.
	CPUDelayMs = 400
)

// Game implements Connect Four.
type Game struct {
	lc      engine.Lifecycle
	board   Board
	turn    core.PlayerID
	cursor  [3]int // indexed by PlayerID
	winner  core.PlayerID
	draw    bool
	moves   int
	lastRow int
	lastCol int

	online  bool
	viewer  core.PlayerID
	cpuWait int

	runtime   core.RuntimeConfig
	rng       *rand.Rand
	score     int
	message   string
	tickCount int
}

// New creates a game against the CPU.
func New() *Game {
	return &Game{viewer: core.Player1}
}

// NewOnline creates a game where both sides are driven by StepMulti.
func NewOnline() *Game {
	return &Game{online: true, viewer: core.Player1}
}

func (g *Game) ID() string    { return "connect4" }
func (g *Game) Title() string { return "Connect Four" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Line up four discs before the CPU or a friend does" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryPuzzle }

// SetViewer sets which side the local player controls, for status text.
func (g *Game) SetViewer(p core.PlayerID) { g.viewer = p }

// Reset empties the board. Player1 always opens.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.board = Board{}
	g.turn = core.Player1
	g.cursor = [3]int{0, Cols / 2, Cols / 2}
	g.winner = 0
	g.draw = false
	g.moves = 0
	g.lastRow, g.lastCol = -1, -1
	g.cpuWait = 0
	g.score = 0
	g.message = ""
	g.tickCount = 0

	g.lc.Restart()
	g.lc.Start()
}

// Step advances a game against the CPU by one tick.
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

	if g.turn == core.Player2 && !g.online {
		g.cpuWait--
		if g.cpuWait <= 0 {
			g.drop(core.Player2, g.board.ChooseMove(core.Player2, g.rng))
		}
		return core.StepResult{State: g.State()}
	}

	g.handleInput(core.Player1, in)
	return core.StepResult{State: g.State()}
}

// StepMulti advances an online game. Both players may move their cursor,
// only the player on turn may drop.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	if g.lc.Over() {
		return core.StepResult{State: g.State()}
	}
	g.tickCount++

	g.handleInput(core.Player1, in.Player1())
	if !g.lc.Over() {
		g.handleInput(core.Player2, in.Player2())
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(p core.PlayerID, in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.cursor[p] = core.Clamp(g.cursor[p]-1, 0, Cols-1)
	}
	if in.Has(core.ActionRight) {
		g.cursor[p] = core.Clamp(g.cursor[p]+1, 0, Cols-1)
	}

	dropNow := in.Has(core.ActionConfirm) || in.Has(core.ActionJump) || in.Has(core.ActionDown)
	if in.Click != nil {
		if col, ok := g.columnAt(in.Click.X, in.Click.Y); ok {
			g.cursor[p] = col
			dropNow = true
		}
	}
	if !dropNow {
		return
	}
	if p != g.turn {
		if p == g.viewer {
			g.message = "Wait for your turn"
		}
		return
	}
	g.drop(p, g.cursor[p])
}

// drop places a disc for p and settles win, draw and turn order.
func (g *Game) drop(p core.PlayerID, col int) {
	row, err := g.board.Drop(col, p)
	if err != nil {
		switch {
		case errors.Is(err, ErrColumnFull):
			g.message = "That column is full"
		default:
			g.message = "Pick a column"
		}
		return
	}
	g.moves++
	g.lastRow, g.lastCol = row, col
	g.message = ""

	switch {
	case g.board.WinsAt(row, col):
		g.winner = p
		g.finish()
	case g.board.Full():
		g.draw = true
		g.finish()
	default:
		g.turn = opponent(p)
		if g.turn == core.Player2 && !g.online {
			g.cpuWait = g.runtime.TicksFor(CPUDelayMs)
		}
	}
}

func (g *Game) finish() {
	if g.winner == g.viewer {
		// faster wins rank higher
		g.score = 10 * (g.board.Empty() + 1)
	}
	g.message = g.resultText()
	g.lc.End(g.winner == g.viewer)
}

func (g *Game) resultText() string {
	switch {
	case g.draw:
		return "It's a draw!"
	case g.winner == g.viewer:
		return "You win!"
	case g.online:
		return fmt.Sprintf("%s wins", playerName(g.winner))
	default:
		return "The CPU wins"
	}
}

func playerName(p core.PlayerID) string {
	if p == core.Player1 {
		return "Red"
	}
	return "Yellow"
}

func playerColor(p core.PlayerID) core.Color {
	if p == core.Player1 {
		return core.ColorRed
	}
	return core.ColorYellow
}

func (g *Game) boardLeft() int {
	return (g.runtime.ScreenW - Cols*cellW) / 2
}

// columnAt maps a click to a board column.
func (g *Game) columnAt(x, y int) (int, bool) {
	if y < boardTop-1 || y >= boardTop+Rows {
		return 0, false
	}
	dx := x - g.boardLeft()
	if dx < 0 || dx >= Cols*cellW {
		return 0, false
	}
	return dx / cellW, true
}

// IsGameOver implements multiplayer.OnlineGame.
func (g *Game) IsGameOver() bool { return g.lc.Over() }

// Winner returns the winning player, or 0 while playing or on a draw.
func (g *Game) Winner() core.PlayerID { return g.winner }

// Score1 is 1 when Red has won.
func (g *Game) Score1() int {
	if g.winner == core.Player1 {
		return 1
	}
	return 0
}

// Score2 is 1 when Yellow has won.
func (g *Game) Score2() int {
	if g.winner == core.Player2 {
		return 1
	}
	return 0
}

// Render draws the board.
func (g *Game) Render(dst *core.Screen) {
	left := g.boardLeft()

	if !g.lc.Over() {
		cx := left + g.cursor[g.viewer]*cellW + cellW/2
		dst.SetColor(cx, boardTop-1, CursorChar, playerColor(g.viewer))
	}

	for r := 0; r < Rows; r++ {
		dst.Set(left, boardTop+r, '│')
		dst.Set(left+Cols*cellW, boardTop+r, '│')
		for c := 0; c < Cols; c++ {
			x := left + c*cellW + cellW/2
			if p := g.board[r][c]; p != 0 {
				dst.SetColor(x, boardTop+r, DiscChar, playerColor(p))
			} else {
				dst.SetColor(x, boardTop+r, EmptyChar, core.ColorGray)
			}
		}
	}
	dst.DrawHLine(left, boardTop+Rows, Cols*cellW+1, '─')
	for c := 0; c < Cols; c++ {
		dst.DrawText(left+c*cellW+cellW/2, boardTop+Rows+1, fmt.Sprint(c+1))
	}

	dst.DrawText(2, 0, g.statusLine())
	if g.message != "" && !g.lc.Over() {
		dst.DrawTextCentered(boardTop+Rows+3, g.message)
	}

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.lc.Over() {
		dst.DrawMessageBox(g.resultText(), "Press R to play again")
	}
}

func (g *Game) statusLine() string {
	switch {
	case g.lc.Over():
		return fmt.Sprintf(" Moves: %d ", g.moves)
	case g.turn == g.viewer:
		return fmt.Sprintf(" Your turn (%s) ", playerName(g.viewer))
	case g.online:
		return fmt.Sprintf(" Waiting for %s ", playerName(g.turn))
	default:
		return " CPU is thinking... "
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.lc.Over(),
		Won:      g.lc.Won(),
		Paused:   g.lc.Paused(),
		Message:  g.message,
	}
}

func init() {
	registry.Register("connect4", func() registry.Game { return New() })
}
