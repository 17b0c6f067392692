package catcher

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

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestCatcherClamped(t *testing.T) {
	tests := []struct {
		name   string
		action core.Action
		want   float64
	}{
		{"far left", core.ActionLeft, 0},
		{"far right", core.ActionRight, 80 - 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(1)
			for i := 0; i < 100; i++ {
				g.Step(press(tt.action))
				if g.catcher.X < 0 || g.catcher.X > 80-g.catcher.W {
					t.Fatalf("catcher escaped: x=%f", g.catcher.X)
				}
			}
			if g.catcher.X != tt.want {
				t.Errorf("x = %f, want %f", g.catcher.X, tt.want)
			}
		})
	}
}

func TestClickMovesCatcher(t *testing.T) {
	g := newGame(1)
	in := core.NewInputFrame()
	in.Press(200, 5, false)
	g.Step(in)
	if g.catcher.X != 80-g.catcher.W {
		t.Errorf("click beyond the edge should clamp, x=%f", g.catcher.X)
	}
}

func TestCatchScoresAndMissCostsLife(t *testing.T) {
	g := newGame(1)

	star := engine.NewCircle(engine.KindCollectible, g.catcher.X+2, g.catcher.Y-0.2, 0.5)
	star.DY = 0.1
	star.Value = 10
	g.stars.Spawn(star)

	miss := engine.NewCircle(engine.KindCollectible, 70, 23, 0.5)
	miss.DY = 0.5
	g.stars.Spawn(miss)

	// Keep the Bernoulli spawner quiet for this tick
	g.cfg.Stars.SpawnChance = 0
	g.Step(core.NewInputFrame())

	if g.score != 10 || g.caught != 1 {
		t.Errorf("score=%d caught=%d, expected one catch", g.score, g.caught)
	}
	if g.lives != g.cfg.Lives-1 {
		t.Errorf("lives=%d, expected one life lost", g.lives)
	}
}

func TestGameOverAtZeroLives(t *testing.T) {
	g := newGame(5)
	// Park the catcher in a corner and let stars fall
	res, err := engine.Run(t.Context(), g, func(int) core.InputFrame { return press(core.ActionLeft) }, 20000)
	if err != nil {
		t.Fatal(err)
	}
	if !res.State.GameOver || res.State.Lives != 0 {
		t.Errorf("expected game over with 0 lives, got %+v", res.State)
	}
}

func TestDeterminismAndReset(t *testing.T) {
	a, b := newGame(99), newGame(99)
	for i := 0; i < 500; i++ {
		in := core.NewInputFrame()
		if i%20 < 10 {
			in.Set(core.ActionRight)
		}
		a.Step(in)
		b.Step(in)
	}
	if a.State() != b.State() || a.stars.Len() != b.stars.Len() {
		t.Errorf("same seed diverged: %+v vs %+v", a.State(), b.State())
	}

	a.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 99})
	first := a.State()
	a.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 99})
	if a.State() != first || first.Score != 0 || first.Lives != a.cfg.Lives || a.stars.Len() != 0 {
		t.Errorf("Reset not idempotent: %+v vs %+v", first, a.State())
	}
}

func TestRenderDoesNotScore(t *testing.T) {
	g := newGame(3)
	for i := 0; i < 200; i++ {
		g.Step(core.NewInputFrame())
	}
	before := g.State()
	g.Render(core.NewScreen(80, 24))
	if g.State() != before {
		t.Errorf("Render changed state")
	}
}
