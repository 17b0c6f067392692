// Package reaction implements a reaction-time test: wait for green, then
// press as fast as you can.
package reaction

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	Rounds = 5

	MinDelayMs = 1500
	MaxDelayMs = 4000

	// PauseMs separates one result from the next round.
	PauseMs = 1200
)

type phase int

const (
	phaseWait phase = iota // red, do not press
	phaseGo                // green, press now
	phaseShow              // showing the last result
)

// Game implements the reaction test.
type Game struct {
	lc      engine.Lifecycle
	prefs   registry.Prefs
	phase   phase
	timer   int // ticks left in wait or show
	waited  int // ticks since green
	times   []int
	last    int
	best    int
	hasBest bool
	newBest bool
	message string
	runtime core.RuntimeConfig
	rng     *rand.Rand
}

// New creates a new game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "reaction" }
func (g *Game) Title() string { return "Reaction Time" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Press the moment the screen turns green" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryReflex }

// LowerIsBetter implements registry.LowerIsBetter: score is milliseconds.
func (g *Game) LowerIsBetter() bool { return true }

// AttachPrefs implements registry.PrefsAware.
func (g *Game) AttachPrefs(p registry.Prefs) { g.prefs = p }

// Reset starts the first round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.times = g.times[:0]
	g.last = 0
	g.newBest = false
	g.message = ""
	g.best, g.hasBest = 0, false
	if g.prefs != nil {
		g.best, g.hasBest = g.prefs.Best(g.ID())
	}

	g.lc.Restart()
	g.lc.Start()
	g.arm()
}

// arm starts a random red wait.
func (g *Game) arm() {
	ms := MinDelayMs + g.rng.Intn(MaxDelayMs-MinDelayMs+1)
	g.phase = phaseWait
	g.timer = g.runtime.TicksFor(ms)
	g.waited = 0
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

	pressed := in.Has(core.ActionJump) || in.Has(core.ActionConfirm) || in.Click != nil

	switch g.phase {
	case phaseWait:
		if pressed {
			g.message = "Too soon! Wait for green."
			g.arm()
			break
		}
		g.timer--
		if g.timer <= 0 {
			g.phase = phaseGo
			g.message = ""
		}
	case phaseGo:
		g.waited++
		if pressed {
			g.record(g.ms(g.waited))
		}
	case phaseShow:
		g.timer--
		if g.timer <= 0 {
			g.message = ""
			g.arm()
		}
	}
	return core.StepResult{State: g.State()}
}

// ms converts a tick count to milliseconds.
func (g *Game) ms(ticks int) int {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return ticks * 1000 / rate
}

func (g *Game) record(ms int) {
	g.last = ms
	g.times = append(g.times, ms)
	g.message = fmt.Sprintf("%d ms", ms)

	if !g.hasBest || ms < g.best {
		g.best, g.hasBest = ms, true
		g.newBest = true
		g.message = fmt.Sprintf("%d ms, a new best!", ms)
		if g.prefs != nil {
			if _, err := g.prefs.RecordBest(g.ID(), ms, true); err != nil {
				g.message = fmt.Sprintf("%d ms (best not saved)", ms)
			}
		}
	}

	if len(g.times) >= Rounds {
		g.lc.End(true)
		return
	}
	g.phase = phaseShow
	g.timer = g.runtime.TicksFor(PauseMs)
}

// Average is the mean of the recorded rounds.
func (g *Game) Average() int {
	if len(g.times) == 0 {
		return 0
	}
	sum := 0
	for _, t := range g.times {
		sum += t
	}
	return sum / len(g.times)
}

// Render fills the play area red or green.
func (g *Game) Render(dst *core.Screen) {
	area := core.NewRect(4, 3, dst.Width()-8, dst.Height()-7)
	text := "Wait for green..."
	color := core.ColorRed
	switch g.phase {
	case phaseGo:
		text, color = "PRESS NOW!", core.ColorBrightGreen
	case phaseShow:
		text, color = g.message, core.ColorBlue
	}
	if !g.lc.Over() {
		dst.DrawRectColor(area, '█', color)
		dst.DrawTextCentered(area.Y+area.H/2, " "+text+" ")
	}

	hud := fmt.Sprintf(" Round %d/%d ", min(len(g.times)+1, Rounds), Rounds)
	if g.hasBest {
		hud += fmt.Sprintf(" Best: %d ms ", g.best)
	}
	dst.DrawText(2, 0, hud)
	if g.phase == phaseWait && g.message != "" {
		dst.DrawTextCentered(dst.Height()-2, g.message)
	}

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.lc.Over() {
		dst.DrawMessageBox(fmt.Sprintf("Average: %d ms", g.Average()), "Press R to try again")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.Average(),
		GameOver: g.lc.Over(),
		Won:      g.lc.Won(),
		Paused:   g.lc.Paused(),
		Message:  g.message,
	}
	if st.GameOver {
		st.Message = fmt.Sprintf("Average reaction: %d ms", st.Score)
	}
	return st
}

func init() {
	registry.Register("reaction", func() registry.Game { return New() })
}
