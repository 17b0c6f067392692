package lightsout

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

func newGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func TestPressFlipsNeighbours(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"centre", 2, 2, 5},
		{"edge", 2, 0, 4},
		{"corner", 0, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Board
			b.Press(tt.x, tt.y)
			if got := b.Lit(); got != tt.want {
				t.Errorf("Lit() = %d, want %d", got, tt.want)
			}
			b.Press(tt.x, tt.y)
			if b.Lit() != 0 {
				t.Error("pressing twice should restore the board")
			}
		})
	}
}

func TestScrambledBoardsAreSolvable(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		b, walk := Scramble(rng, ScramblePresses)
		if b.Lit() == 0 {
			t.Fatal("scramble should never return a dark board")
		}
		for _, p := range walk {
			b.Press(p[0], p[1])
		}
		if b.Lit() != 0 {
			t.Fatalf("board %d: replaying the walk should solve it", i)
		}
	}
}

func TestReplayWinsGame(t *testing.T) {
	g := newGame(7)
	for _, p := range g.walk {
		if g.State().GameOver {
			break
		}
		g.curX, g.curY = p[0], p[1]
		in := core.NewInputFrame()
		in.Set(core.ActionConfirm)
		g.Step(in)
	}

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Fatalf("replaying the walk should win, state = %+v", st)
	}
	if st.Score != g.presses || st.Score > ScramblePresses {
		t.Errorf("score = %d presses", st.Score)
	}
	if !g.LowerIsBetter() {
		t.Error("lights out ranks by fewest presses")
	}
}

func TestClickPresses(t *testing.T) {
	g := newGame(1)
	before := g.board
	in := core.NewInputFrame()
	in.Press(g.gridLeft()+1*cellW+2, gridTop+3*2, false)
	g.Step(in)

	if g.curX != 1 || g.curY != 3 {
		t.Errorf("cursor = (%d,%d), want (1,3)", g.curX, g.curY)
	}
	before.Press(1, 3)
	if g.board != before || g.presses != 1 {
		t.Error("click should press the cell under the pointer")
	}
}

func TestCursorWraps(t *testing.T) {
	g := newGame(1)
	for i := 0; i < Size; i++ {
		in := core.NewInputFrame()
		in.Set(core.ActionRight)
		g.Step(in)
	}
	if g.curX != Size/2 {
		t.Errorf("cursor should wrap back to %d, got %d", Size/2, g.curX)
	}
}

func TestResetIdempotent(t *testing.T) {
	g := newGame(3)
	first := g.board
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})
	if g.board != first || g.presses != 0 || g.State().GameOver {
		t.Error("reset with the same seed should rebuild the same board")
	}
}

func TestRenderDoesNotScore(t *testing.T) {
	g := newGame(1)
	before := g.State()
	s := core.NewScreen(80, 24)
	g.Render(s)
	if g.State() != before {
		t.Error("render should not change state")
	}
}
