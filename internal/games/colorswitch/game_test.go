package colorswitch

import (
	"testing"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

func newGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func jump() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

// paintBars recolours every segment.
func paintBars(g *Game, c core.Color) {
	g.world.Each(func(e *engine.Entity) {
		if e.Kind == engine.KindObstacle {
			e.Tag = c
		}
	})
}

func TestWaitsForFirstJump(t *testing.T) {
	g := newGame(1)
	y := g.ball.Y
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.ball.Y != y || g.lc.Phase() != engine.PhaseReady {
		t.Errorf("ball should rest until the first jump, y %f -> %f", y, g.ball.Y)
	}
}

func TestMatchingColourPasses(t *testing.T) {
	g := newGame(2)
	for i := 0; i < 300 && !g.State().GameOver; i++ {
		paintBars(g, g.ball.Tag)
		in := core.NewInputFrame()
		if i%12 == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(in)
	}
	if g.State().GameOver {
		t.Fatalf("climb through matching bars should not end, crashed=%v", g.crashed)
	}
	if g.passed < 3 {
		t.Errorf("passed = %d, expected the ball to clear several bars", g.passed)
	}
}

func TestWrongColourEndsGame(t *testing.T) {
	g := newGame(3)
	other := g.colors()[0]
	if other == g.ball.Tag {
		other = g.colors()[1]
	}
	for i := 0; i < 300 && !g.State().GameOver; i++ {
		paintBars(g, other)
		in := core.NewInputFrame()
		if i%12 == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(in)
	}
	if !g.State().GameOver || !g.crashed {
		t.Errorf("touching a wrong colour should end the game, over=%v crashed=%v", g.State().GameOver, g.crashed)
	}
}

func TestFallingEndsGame(t *testing.T) {
	g := newGame(4)
	g.Step(jump())
	res, err := engine.Run(t.Context(), g, engine.NoInput, 600)
	if err != nil {
		t.Fatal(err)
	}
	if !res.State.GameOver || g.crashed {
		t.Errorf("ball should fall off the bottom, got %+v crashed=%v", res.State, g.crashed)
	}
}

func TestSwitcherChangesColour(t *testing.T) {
	g := newGame(5)
	before := g.ball.Tag
	g.switchColor()
	if g.ball.Tag == before {
		t.Error("switcher must always pick a different colour")
	}
}

func TestSegmentsStayTiled(t *testing.T) {
	g := newGame(6)
	g.lc.Start()
	for i := 0; i < 2000; i++ {
		g.scrollBars()
	}
	g.world.Each(func(e *engine.Entity) {
		if e.Kind == engine.KindObstacle && (e.Left() < g.wrapLeft || e.Left() >= g.wrapLeft+g.span) {
			t.Fatalf("segment escaped its wrap window: x=%f", e.X)
		}
	})
}

func TestDeterminismAndReset(t *testing.T) {
	inputs := func(tick int) core.InputFrame {
		in := core.NewInputFrame()
		if tick%14 == 0 {
			in.Set(core.ActionJump)
		}
		return in
	}
	a, b := newGame(8), newGame(8)
	ra, _ := engine.Run(t.Context(), a, inputs, 400)
	rb, _ := engine.Run(t.Context(), b, inputs, 400)
	if ra != rb || a.ball.Tag != b.ball.Tag {
		t.Errorf("same seed diverged: %+v vs %+v", ra, rb)
	}

	a.Reset(a.runtime)
	first, tag, n := a.State(), a.ball.Tag, a.world.Len()
	a.Reset(a.runtime)
	if a.State() != first || a.ball.Tag != tag || a.world.Len() != n || first.Score != 0 {
		t.Error("Reset not idempotent")
	}
}

func TestRenderDoesNotScore(t *testing.T) {
	g := newGame(9)
	g.Step(jump())
	before := g.State()
	g.Render(core.NewScreen(80, 24))
	if g.State() != before {
		t.Error("Render changed state")
	}
}
