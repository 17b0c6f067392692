package connect4

import (
	"math"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/multiplayer"
)

// Snapshot contains the complete state of a Connect Four game for
// transmission to sessions. Uses primitive types only.
type Snapshot struct {
	Tick     uint64
	Cells    [Rows * Cols]int // row-major, 0=empty, 1=Red, 2=Yellow
	Turn     int
	Cursor1  int
	Cursor2  int
	Moves    int
	LastRow  int
	LastCol  int
	Winner   int
	Draw     bool
	GameOver bool
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (Snapshot) IsGameSnapshot() {}

var (
	_ multiplayer.GameSnapshot = Snapshot{}
	_ multiplayer.OnlineGame   = (*Game)(nil)
)

// Snapshot returns the current game state.
func (g *Game) Snapshot() multiplayer.GameSnapshot {
	snap := Snapshot{
		Tick:     uint64(max(0, g.tickCount)), //nolint:gosec // tickCount is never negative
		Turn:     int(g.turn),
		Cursor1:  g.cursor[core.Player1],
		Cursor2:  g.cursor[core.Player2],
		Moves:    g.moves,
		LastRow:  g.lastRow,
		LastCol:  g.lastCol,
		Winner:   int(g.winner),
		Draw:     g.draw,
		GameOver: g.lc.Over(),
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			snap.Cells[r*Cols+c] = int(g.board[r][c])
		}
	}
	return snap
}

// ApplySnapshot updates the game state from a snapshot.
// Used by sessions to mirror the authoritative match.
func (g *Game) ApplySnapshot(snap Snapshot) {
	g.tickCount = int(min(snap.Tick, math.MaxInt)) //nolint:gosec // clamped to max int
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			g.board[r][c] = core.PlayerID(snap.Cells[r*Cols+c])
		}
	}
	g.turn = core.PlayerID(snap.Turn)
	g.cursor[core.Player1] = snap.Cursor1
	g.cursor[core.Player2] = snap.Cursor2
	g.moves = snap.Moves
	g.lastRow, g.lastCol = snap.LastRow, snap.LastCol
	g.winner = core.PlayerID(snap.Winner)
	g.draw = snap.Draw

	if snap.GameOver && !g.lc.Over() {
		g.message = g.resultText()
		g.lc.End(g.winner == g.viewer)
	}
}

// ApplyGameSnapshot applies snap if it came from a Connect Four match.
func (g *Game) ApplyGameSnapshot(snap multiplayer.GameSnapshot) bool {
	s, ok := snap.(Snapshot)
	if ok {
		g.ApplySnapshot(s)
	}
	return ok
}
