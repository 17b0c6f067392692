package connect4

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

func newGame() *Game {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// board builds a board from rows drawn top to bottom, "R" and "Y" discs.
func board(rows ...string) Board {
	var b Board
	offset := Rows - len(rows)
	for i, line := range rows {
		for c, ch := range line {
			switch ch {
			case 'R':
				b[offset+i][c] = core.Player1
			case 'Y':
				b[offset+i][c] = core.Player2
			}
		}
	}
	return b
}

func TestDropStacks(t *testing.T) {
	var b Board
	for i := 0; i < Rows; i++ {
		row, err := b.Drop(3, core.Player1)
		if err != nil {
			t.Fatalf("drop %d: %v", i, err)
		}
		if row != Rows-1-i {
			t.Errorf("drop %d landed on row %d, want %d", i, row, Rows-1-i)
		}
	}
	if _, err := b.Drop(3, core.Player1); !errors.Is(err, ErrColumnFull) {
		t.Errorf("drop into full column: err = %v", err)
	}
	if _, err := b.Drop(Cols, core.Player1); !errors.Is(err, ErrColumnRange) {
		t.Errorf("drop outside board: err = %v", err)
	}
}

func TestWinDirections(t *testing.T) {
	tests := []struct {
		name string
		b    Board
		want core.PlayerID
	}{
		{"horizontal", board("RRRR..."), core.Player1},
		{"vertical", board("..Y", "..Y", "..Y", "..Y"), core.Player2},
		{"diagonal up", board("...R", "..RY", ".RYY", "RYYR"), core.Player1},
		{"diagonal down", board("Y...", "RY..", "RRY.", "RRRY"), core.Player2},
		{"three only", board("RRR.YYY"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Winner(); got != tt.want {
				t.Errorf("Winner() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCPUTakesWin(t *testing.T) {
	b := board("YYY.RR.")
	if got := b.ChooseMove(core.Player2, rand.New(rand.NewSource(1))); got != 3 {
		t.Errorf("CPU should complete its line in column 3, got %d", got)
	}
}

func TestCPUBlocks(t *testing.T) {
	b := board("Y", "RRR....")
	if got := b.ChooseMove(core.Player2, rand.New(rand.NewSource(1))); got != 3 {
		t.Errorf("CPU should block column 3, got %d", got)
	}
}

func TestCPUPrefersCentre(t *testing.T) {
	var b Board
	rng := rand.New(rand.NewSource(7))
	counts := make([]int, Cols)
	for i := 0; i < 2000; i++ {
		counts[b.ChooseMove(core.Player2, rng)]++
	}
	if counts[3] <= counts[0] || counts[3] <= counts[6] {
		t.Errorf("centre should be favoured, counts = %v", counts)
	}
}

func TestCPUSkipsFullColumns(t *testing.T) {
	b := board("RYRYRY.", "YRYRYR.", "RYRYRY.", "RYRYRY.", "YRYRYR.", "RYRYRY.")
	if got := b.ChooseMove(core.Player2, rand.New(rand.NewSource(3))); got != 6 {
		t.Errorf("only column 6 is open, got %d", got)
	}
}

func TestCursorAndDrop(t *testing.T) {
	g := newGame()
	g.Step(input(core.ActionLeft))
	g.Step(input(core.ActionLeft))
	if g.cursor[core.Player1] != 1 {
		t.Fatalf("cursor = %d, want 1", g.cursor[core.Player1])
	}
	g.Step(input(core.ActionConfirm))
	if g.board[Rows-1][1] != core.Player1 {
		t.Error("disc should land at the bottom of column 1")
	}
	if g.turn != core.Player2 {
		t.Error("turn should pass to the CPU")
	}
}

func TestCursorClamped(t *testing.T) {
	g := newGame()
	for i := 0; i < 10; i++ {
		g.Step(input(core.ActionRight))
	}
	if g.cursor[core.Player1] != Cols-1 {
		t.Errorf("cursor = %d, want %d", g.cursor[core.Player1], Cols-1)
	}
}

func TestClickDropsIntoColumn(t *testing.T) {
	g := newGame()
	in := core.NewInputFrame()
	in.Press(g.boardLeft()+5*cellW+1, boardTop+2, false)
	g.Step(in)
	if g.board[Rows-1][5] != core.Player1 {
		t.Error("click should drop into column 5")
	}
}

func TestCPURepliesAfterDelay(t *testing.T) {
	g := newGame()
	g.Step(input(core.ActionConfirm))

	delay := g.runtime.TicksFor(CPUDelayMs)
	for i := 0; i < delay-1; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.moves != 1 {
		t.Fatalf("CPU moved too early, moves = %d", g.moves)
	}
	g.Step(core.NewInputFrame())
	if g.moves != 2 || g.turn != core.Player1 {
		t.Errorf("CPU should have replied, moves = %d turn = %d", g.moves, g.turn)
	}
}

func TestFullColumnRejected(t *testing.T) {
	g := newGame()
	for r := 0; r < Rows; r++ {
		g.board[r][3] = core.Player2
	}
	g.Step(input(core.ActionConfirm))
	if g.moves != 0 || g.turn != core.Player1 {
		t.Error("full column should not consume the turn")
	}
	if g.State().Message == "" {
		t.Error("full column should explain itself")
	}
}

func TestPlayerWinScores(t *testing.T) {
	g := newGame()
	g.board = board("RRR....")
	g.cursor[core.Player1] = 3
	g.Step(input(core.ActionConfirm))

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Fatalf("four in a row should win, state = %+v", st)
	}
	if st.Score <= 0 {
		t.Error("a win should score")
	}
	if st.Message != "You win!" {
		t.Errorf("Message = %q", st.Message)
	}
}

func TestDrawWhenFull(t *testing.T) {
	g := newGame()
	g.board = board(".YRYRYR", "RYRYRYR", "RYRYRYR", "YRYRYRY", "YRYRYRY", "RYRYRYR")
	g.cursor[core.Player1] = 0
	g.Step(input(core.ActionConfirm))

	if !g.draw || !g.State().GameOver || g.State().Won {
		t.Errorf("full board should be a draw, winner = %d", g.winner)
	}
}

func TestStepMultiTurns(t *testing.T) {
	g := NewOnline()
	g.Reset(core.DefaultConfig())

	m := core.NewMultiInputFrame()
	m.SetPlayer(core.Player2, input(core.ActionConfirm))
	g.StepMulti(m)
	if g.moves != 0 {
		t.Fatal("Player2 must not drop on Player1's turn")
	}

	m = core.NewMultiInputFrame()
	m.SetPlayer(core.Player1, input(core.ActionConfirm))
	g.StepMulti(m)
	if g.turn != core.Player2 || g.board[Rows-1][3] != core.Player1 {
		t.Fatal("Player1 drop should pass the turn")
	}

	m = core.NewMultiInputFrame()
	m.SetPlayer(core.Player2, input(core.ActionLeft, core.ActionConfirm))
	g.StepMulti(m)
	if g.board[Rows-1][2] != core.Player2 {
		t.Error("Player2 should drop in column 2")
	}
}

func TestOnlineWinnerScores(t *testing.T) {
	g := NewOnline()
	g.Reset(core.DefaultConfig())
	g.board = board("YYY....")
	g.turn = core.Player2
	g.cursor[core.Player2] = 3

	m := core.NewMultiInputFrame()
	m.SetPlayer(core.Player2, input(core.ActionConfirm))
	g.StepMulti(m)

	if !g.IsGameOver() || g.Winner() != core.Player2 {
		t.Fatalf("Yellow should win, winner = %d", g.Winner())
	}
	if g.Score1() != 0 || g.Score2() != 1 {
		t.Errorf("scores = %d:%d", g.Score1(), g.Score2())
	}
}

func TestSnapshotRoundTripMirrorsBoard(t *testing.T) {
	src := NewOnline()
	src.Reset(core.DefaultConfig())
	src.board = board("RRR....")
	src.turn = core.Player1
	src.cursor[core.Player1] = 3
	m := core.NewMultiInputFrame()
	m.SetPlayer(core.Player1, input(core.ActionConfirm))
	src.StepMulti(m)

	dst := NewOnline()
	dst.Reset(core.DefaultConfig())
	dst.SetViewer(core.Player2)
	dst.ApplySnapshot(src.Snapshot().(Snapshot))

	if dst.board != src.board {
		t.Error("board should match after apply")
	}
	if !dst.IsGameOver() || dst.State().Won {
		t.Error("the losing viewer should see a finished, lost game")
	}
	if dst.State().Message != "Red wins" {
		t.Errorf("Message = %q", dst.State().Message)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	// click a different column every half second
	drop := func(tick int) core.InputFrame {
		in := core.NewInputFrame()
		if tick%30 == 0 {
			col := (tick / 30) % Cols
			in.Press(26+col*cellW+1, boardTop, false)
		}
		return in
	}
	run := func() engine.Result {
		res, err := engine.Run(t.Context(), newGame(), drop, 5000)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	a, b := run(), run()
	if a != b {
		t.Errorf("same seed should replay identically: %+v vs %+v", a, b)
	}
	if !a.State.GameOver {
		t.Error("a full game should finish within the run")
	}
}

func TestResetIdempotent(t *testing.T) {
	g := newGame()
	g.Step(input(core.ActionConfirm))
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	if g.moves != 0 || g.board != (Board{}) || g.turn != core.Player1 || g.State().GameOver {
		t.Error("reset should clear the board")
	}
}

func TestRenderDoesNotScore(t *testing.T) {
	g := newGame()
	g.board = board("RRR....")
	g.cursor[core.Player1] = 3
	g.Step(input(core.ActionConfirm))
	before := g.State()

	s := core.NewScreen(80, 24)
	g.Render(s)
	g.Render(s)
	if g.State() != before {
		t.Error("render should not change state")
	}
	if !strings.Contains(s.String(), "You win!") {
		t.Error("win overlay missing")
	}
}
