// Package shooter implements a vertical space shooter. Entities live in a
// donburi ECS world and are paired with resolv objects for broad-phase
// collision; candidate pairs are confirmed with the engine's shape test.
package shooter

import (
	"fmt"
	"math/rand"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	ShipChar   = '▲'
	EnemyChar  = '▼'
	BulletChar = '|'
)

// Game implements the space shooter.
type Game struct {
	lc         engine.Lifecycle
	cfg        config.ShooterConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *rand.Rand

	world   donburi.World
	space   *resolv.Space
	ship    engine.Entity
	shipObj *resolv.Object
	spawner *engine.IntervalSpawner

	cooldown  int
	score     int
	lives     int
	kills     int
	tickCount int
	hitFlash  int
}

// New creates a new game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "shooter" }
func (g *Game) Title() string { return "Space Shooter" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Blast the descending invaders before they reach you" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryArcade }

// Reset builds a fresh world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = config.LoadShooter()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.world = donburi.NewWorld()
	g.space = resolv.NewSpace(runtime.ScreenW, runtime.ScreenH, 1, 1)

	w := float64(g.cfg.Ship.Width)
	g.ship = engine.NewBox(engine.KindPlayer, (float64(runtime.ScreenW)-w)/2, float64(runtime.ScreenH-2), w, 1)
	g.shipObj = resolv.NewObject(g.ship.X, g.ship.Y, g.ship.W, g.ship.H, ResolvShip)
	g.space.Add(g.shipObj)

	g.spawner = engine.NewIntervalSpawner(g.cfg.Enemies.SpawnEvery, g.cfg.Enemies.Jitter)

	g.cooldown = 0
	g.score = 0
	g.lives = g.cfg.Lives
	g.kills = 0
	g.tickCount = 0
	g.hitFlash = 0

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
	if g.cooldown > 0 {
		g.cooldown--
	}
	if g.hitFlash > 0 {
		g.hitFlash--
	}

	g.moveShip(in)
	if (in.Has(core.ActionJump) || in.Has(core.ActionUp)) && g.cooldown == 0 {
		g.fire()
	}

	g.spawner.Every = g.difficulty.Spacing(g.cfg.Enemies.SpawnEvery, 5, g.score, g.tickCount)
	if g.spawner.Tick(g.rng) {
		g.spawnEnemy()
	}

	g.moveBodies()
	g.resolveHits()

	if g.lives <= 0 {
		g.lives = 0
		g.lc.End(false)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) moveShip(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.ship.X -= g.cfg.Ship.Speed
	}
	if in.Has(core.ActionRight) {
		g.ship.X += g.cfg.Ship.Speed
	}
	engine.ClampToBounds(&g.ship, float64(g.runtime.ScreenW), float64(g.runtime.ScreenH))
	g.shipObj.X = g.ship.X
	g.shipObj.Update()
}

func (g *Game) fire() {
	x := g.ship.X + g.ship.W/2 - 0.5
	b := engine.NewBox(engine.KindProjectile, x, g.ship.Y-1, 1, 1)
	b.DY = -g.cfg.Bullets.Speed
	g.spawn(b, Bullet, ResolvBullet)
	g.cooldown = g.cfg.Bullets.Cooldown
}

func (g *Game) spawnEnemy() {
	e := g.cfg.Enemies
	w := float64(e.Width)
	x := float64(g.rng.Intn(max(g.runtime.ScreenW-e.Width, 1)))
	enemy := engine.NewBox(engine.KindObstacle, x, 1, w, 1)
	enemy.Speed = g.difficulty.Speed(e.Speed, g.score, g.tickCount)
	enemy.DY = enemy.Speed
	enemy.Value = e.Points
	g.spawn(enemy, Enemy, ResolvEnemy)
}

func (g *Game) spawn(body engine.Entity, tag donburi.IComponentType, resolvTag string) {
	entity := g.world.Create(Body, Object, tag)
	entry := g.world.Entry(entity)

	obj := resolv.NewObject(body.X, body.Y, body.W, body.H, resolvTag)
	obj.Data = entity
	g.space.Add(obj)

	Body.SetValue(entry, body)
	Object.SetValue(entry, ObjectData{Object: obj})
}

func (g *Game) moveBodies() {
	Body.Each(g.world, func(entry *donburi.Entry) {
		body := Body.Get(entry)
		body.Move(1)
		obj := Object.Get(entry)
		obj.X, obj.Y = body.X, body.Y
		obj.Update()

		if body.Bottom() <= 0 {
			body.Dead = true
		}
	})
}

// resolveHits runs the collision rules, then removes dead entities.
func (g *Game) resolveHits() {
	Bullet.Each(g.world, func(entry *donburi.Entry) {
		bullet := Body.Get(entry)
		if bullet.Dead {
			return
		}
		check := Object.Get(entry).Check(0, 0, ResolvEnemy)
		if check == nil {
			return
		}
		for _, obj := range check.ObjectsByTags(ResolvEnemy) {
			enemy := g.bodyOf(obj)
			if enemy == nil || enemy.Dead || !engine.Collides(bullet, enemy) {
				continue
			}
			enemy.Dead = true
			bullet.Dead = true
			g.score += enemy.Value
			g.kills++
			return
		}
	})

	Enemy.Each(g.world, func(entry *donburi.Entry) {
		enemy := Body.Get(entry)
		if enemy.Dead {
			return
		}
		if engine.Collides(enemy, &g.ship) || enemy.Top() >= float64(g.runtime.ScreenH-1) {
			enemy.Dead = true
			g.lives--
			g.hitFlash = g.runtime.TicksFor(300)
		}
	})

	g.sweep()
}

func (g *Game) bodyOf(obj *resolv.Object) *engine.Entity {
	entity, ok := obj.Data.(donburi.Entity)
	if !ok || !g.world.Valid(entity) {
		return nil
	}
	return Body.Get(g.world.Entry(entity))
}

// sweep removes dead entities after iteration is done.
func (g *Game) sweep() {
	var dead []*donburi.Entry
	Body.Each(g.world, func(entry *donburi.Entry) {
		if Body.Get(entry).Dead {
			dead = append(dead, entry)
		}
	})
	for _, entry := range dead {
		g.space.Remove(Object.Get(entry).Object)
		g.world.Remove(entry.Entity())
	}
}

// count returns the number of live entities carrying tag.
func (g *Game) count(tag donburi.IComponentType) int {
	n := 0
	Body.Each(g.world, func(entry *donburi.Entry) {
		if entry.HasComponent(tag) {
			n++
		}
	})
	return n
}

// Render draws ship, bullets and enemies.
func (g *Game) Render(dst *core.Screen) {
	Enemy.Each(g.world, func(entry *donburi.Entry) {
		dst.DrawRectColor(Body.Get(entry).Bounds(), EnemyChar, core.ColorMagenta)
	})
	Bullet.Each(g.world, func(entry *donburi.Entry) {
		x, y := Body.Get(entry).Cell()
		dst.SetColor(x, y, BulletChar, core.ColorBrightYellow)
	})

	shipColor := core.ColorBrightCyan
	if g.hitFlash > 0 {
		shipColor = core.ColorBrightRed
	}
	dst.DrawRectColor(g.ship.Bounds(), ShipChar, shipColor)

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d  Lives: %d ", g.score, g.lives))

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.lc.Over() {
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("%d invaders destroyed  |  Press R", g.kills))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		GameOver: g.lc.Over(),
		Paused:   g.lc.Paused(),
	}
}

func init() {
	registry.Register("shooter", func() registry.Game { return New() })
}
