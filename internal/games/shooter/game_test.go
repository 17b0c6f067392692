package shooter

import (
	"testing"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

func newGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	// Tests place enemies by hand
	g.spawner.Every = 1 << 20
	g.spawner.Reset()
	g.cfg.Enemies.SpawnEvery = 1 << 20
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestFireRespectsCooldown(t *testing.T) {
	g := newGame(1)
	g.Step(input(core.ActionJump))
	g.Step(input(core.ActionJump))
	if n := g.count(Bullet); n != 1 {
		t.Fatalf("bullets = %d, cooldown should allow only one", n)
	}
	for i := 0; i < g.cfg.Bullets.Cooldown; i++ {
		g.Step(input(core.ActionJump))
	}
	if n := g.count(Bullet); n != 2 {
		t.Errorf("bullets = %d, expected a second shot after the cooldown", n)
	}
}

func TestBulletDestroysEnemy(t *testing.T) {
	g := newGame(1)
	enemy := engine.NewBox(engine.KindObstacle, g.ship.X, 10, g.ship.W, 1)
	enemy.Value = 10
	g.spawn(enemy, Enemy, ResolvEnemy)

	g.Step(input(core.ActionJump))
	for i := 0; i < 40 && g.score == 0; i++ {
		g.Step(input())
	}
	if g.score != 10 || g.kills != 1 {
		t.Fatalf("score=%d kills=%d, expected the enemy shot down", g.score, g.kills)
	}
	if g.count(Enemy) != 0 || g.count(Bullet) != 0 {
		t.Error("bullet and enemy should both be removed")
	}
}

func TestEnemyReachingBottomCostsLife(t *testing.T) {
	g := newGame(1)
	enemy := engine.NewBox(engine.KindObstacle, 0, 21, 3, 1)
	enemy.DY = 1
	g.spawn(enemy, Enemy, ResolvEnemy)

	g.Step(input())
	g.Step(input())
	if g.lives != g.cfg.Lives-1 {
		t.Errorf("lives = %d, expected one life lost", g.lives)
	}
	if g.count(Enemy) != 0 {
		t.Error("enemy should be removed after landing")
	}
}

func TestShipClamped(t *testing.T) {
	g := newGame(1)
	for i := 0; i < 100; i++ {
		g.Step(input(core.ActionRight))
	}
	if g.ship.X != 80-g.ship.W {
		t.Errorf("ship x = %f, want %f", g.ship.X, 80-g.ship.W)
	}
	if g.shipObj.X != g.ship.X {
		t.Error("collision object should follow the ship")
	}
}

func TestGameOverAndDeterminism(t *testing.T) {
	run := func() (engine.Result, int) {
		g := New()
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 31})
		res, err := engine.Run(t.Context(), g, engine.NoInput, 50000)
		if err != nil {
			t.Fatal(err)
		}
		return res, g.kills
	}
	a, ka := run()
	b, kb := run()
	if a != b || ka != kb {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
	if !a.State.GameOver || a.State.Lives != 0 {
		t.Errorf("a ship that never fires should eventually lose, got %+v", a.State)
	}
}

func TestResetIdempotent(t *testing.T) {
	g := newGame(2)
	for i := 0; i < 50; i++ {
		g.Step(input(core.ActionJump, core.ActionLeft))
	}
	g.Reset(g.runtime)
	first := g.State()
	g.Reset(g.runtime)
	if g.State() != first || first.Score != 0 || first.Lives != g.cfg.Lives || g.count(Bullet) != 0 {
		t.Errorf("Reset not idempotent: %+v", g.State())
	}
}

func TestRenderDoesNotScore(t *testing.T) {
	g := newGame(3)
	g.Step(input(core.ActionJump))
	before := g.State()
	g.Render(core.NewScreen(80, 24))
	if g.State() != before {
		t.Error("Render changed state")
	}
}
