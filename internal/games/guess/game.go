// Package guess implements number guessing with higher/lower hints.
package guess

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	Min = 1
	Max = 100

	MaxScore    = 100
	AttemptCost = 10
	MinScore    = 10

	maxInput = 6
)

// Backspace is the rune the platform sends for the backspace key.
const Backspace = '\b'

// Score returns the points for solving in the given number of attempts.
func Score(attempts int) int {
	return max(MinScore, MaxScore-AttemptCost*(attempts-1))
}

// Game implements number guessing.
type Game struct {
	lc       engine.Lifecycle
	secret   int
	input    []rune
	attempts int
	history  []string
	score    int
	message  string
	runtime  core.RuntimeConfig
	rng      *rand.Rand
}

// New creates a new game instance.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string    { return "guess" }
func (g *Game) Title() string { return "Guess the Number" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Find the number between 1 and 100" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryWord }

// AcceptsText implements registry.TextInput.
func (g *Game) AcceptsText() bool { return true }

// Reset picks a new secret number.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.secret = Min + g.rng.Intn(Max-Min+1)
	g.input = g.input[:0]
	g.attempts = 0
	g.history = g.history[:0]
	g.score = 0
	g.message = fmt.Sprintf("I'm thinking of a number between %d and %d", Min, Max)

	g.lc.Restart()
	g.lc.Start()
}

// Step consumes typed characters; Enter submits the guess.
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

	for _, r := range in.Runes {
		switch {
		case r == Backspace:
			if len(g.input) > 0 {
				g.input = g.input[:len(g.input)-1]
			}
		case len(g.input) < maxInput:
			g.input = append(g.input, r)
		}
	}
	if in.Has(core.ActionConfirm) {
		g.submit()
	}
	return core.StepResult{State: g.State()}
}

// submit validates the typed text and applies it as a guess.
func (g *Game) submit() {
	text := strings.TrimSpace(string(g.input))
	g.input = g.input[:0]

	n, err := strconv.Atoi(text)
	switch {
	case text == "":
		g.message = "Type a number first"
		return
	case err != nil:
		g.message = fmt.Sprintf("%q is not a number", text)
		return
	case n < Min || n > Max:
		g.message = fmt.Sprintf("Pick a number from %d to %d", Min, Max)
		return
	}

	g.attempts++
	switch {
	case n < g.secret:
		g.message = fmt.Sprintf("%d is too low, go higher", n)
		g.history = append(g.history, fmt.Sprintf("%d ↑", n))
	case n > g.secret:
		g.message = fmt.Sprintf("%d is too high, go lower", n)
		g.history = append(g.history, fmt.Sprintf("%d ↓", n))
	default:
		g.score = Score(g.attempts)
		g.message = fmt.Sprintf("Correct! %d in %d attempts", n, g.attempts)
		g.history = append(g.history, fmt.Sprintf("%d ✓", n))
		g.lc.End(true)
	}
}

// Render draws the prompt, the hint and past guesses.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" Attempts: %d ", g.attempts))
	dst.DrawTextCentered(4, g.message)

	prompt := "> " + string(g.input)
	if !g.lc.Over() {
		prompt += "_"
	}
	dst.DrawTextColor(dst.Width()/2-5, 7, prompt, core.ColorBrightWhite)

	if len(g.history) > 0 {
		dst.DrawTextCentered(10, strings.Join(g.history, "  "))
	}

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.lc.Over() {
		dst.DrawMessageBox(fmt.Sprintf("You got it in %d!", g.attempts), fmt.Sprintf("Score: %d  |  Press R to play again", g.score))
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
	registry.Register("guess", func() registry.Game { return New() })
}
