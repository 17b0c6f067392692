// Package hangman implements the classic word-guessing game.
package hangman

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"unicode"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	MaxWrong = 6

	// WinMessage is shown when every letter has been found.
	WinMessage = "You Win! 🎉"
)

// gallows frames indexed by wrong guesses.
var gallows = [MaxWrong + 1][]string{
	{"  +---+", "  |   |", "      |", "      |", "      |", "      |", "========="},
	{"  +---+", "  |   |", "  O   |", "      |", "      |", "      |", "========="},
	{"  +---+", "  |   |", "  O   |", "  |   |", "      |", "      |", "========="},
	{"  +---+", "  |   |", "  O   |", " /|   |", "      |", "      |", "========="},
	{"  +---+", "  |   |", "  O   |", " /|\\  |", "      |", "      |", "========="},
	{"  +---+", "  |   |", "  O   |", " /|\\  |", " /    |", "      |", "========="},
	{"  +---+", "  |   |", "  O   |", " /|\\  |", " / \\  |", "      |", "========="},
}

// Game implements hangman.
type Game struct {
	lc      engine.Lifecycle
	words   []string
	word    string
	guessed map[rune]bool
	wrong   int
	score   int
	message string
	rng     *rand.Rand
	runtime core.RuntimeConfig
}

// New creates a game over the embedded word pool.
func New() *Game {
	words, err := config.LoadWords()
	if err != nil {
		words = []string{"arcade"}
	}
	return &Game{words: words, guessed: make(map[rune]bool)}
}

func (g *Game) ID() string    { return "hangman" }
func (g *Game) Title() string { return "Hangman" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Guess the word before the stick figure is complete" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryWord }

// AcceptsText implements registry.TextInput.
func (g *Game) AcceptsText() bool { return true }

// Words returns the word pool.
func (g *Game) Words() []string { return g.words }

// Reset seeds the picker and starts a new round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.newGame()
}

// newGame picks a word and clears all guesses.
func (g *Game) newGame() {
	g.word = g.words[g.rng.Intn(len(g.words))]
	clear(g.guessed)
	g.wrong = 0
	g.score = 0
	g.message = ""
	g.lc.Restart()
	g.lc.Start()
}

// Step consumes typed letters.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.lc.Over() {
		if in.Has(core.ActionConfirm) {
			g.newGame()
		}
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.lc.TogglePause()
	}
	if !g.lc.Running() {
		return core.StepResult{State: g.State()}
	}

	for _, r := range in.Runes {
		g.guess(r)
		if g.lc.Over() {
			break
		}
	}
	return core.StepResult{State: g.State()}
}

// guess applies one typed character.
func (g *Game) guess(r rune) {
	r = unicode.ToLower(r)
	if r < 'a' || r > 'z' {
		g.message = fmt.Sprintf("%q is not a letter", r)
		return
	}
	if g.guessed[r] {
		g.message = fmt.Sprintf("You already tried '%c'", r)
		return
	}
	g.guessed[r] = true

	if !strings.ContainsRune(g.word, r) {
		g.wrong++
		g.message = fmt.Sprintf("No '%c' in the word", r)
		if g.wrong >= MaxWrong {
			g.message = fmt.Sprintf("You lose! The word was %q", g.word)
			g.lc.End(false)
		}
		return
	}

	g.message = ""
	if g.solved() {
		g.score = 10*len(g.word) + 20*(MaxWrong-g.wrong)
		g.message = WinMessage
		g.lc.End(true)
	}
}

func (g *Game) solved() bool {
	for _, r := range g.word {
		if !g.guessed[r] {
			return false
		}
	}
	return true
}

// Masked returns the word with unguessed letters as underscores.
func (g *Game) Masked() string {
	parts := make([]string, 0, len(g.word))
	for _, r := range g.word {
		if g.guessed[r] || g.lc.Over() {
			parts = append(parts, string(r))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

func (g *Game) triedLetters() string {
	letters := make([]rune, 0, len(g.guessed))
	for r := range g.guessed {
		letters = append(letters, r)
	}
	slices.Sort(letters)
	return string(letters)
}

// Render draws the gallows, the word and the tried letters.
func (g *Game) Render(dst *core.Screen) {
	top := 3
	left := g.runtime.ScreenW/2 - 20
	for i, line := range gallows[min(g.wrong, MaxWrong)] {
		dst.DrawText(left, top+i, line)
	}

	dst.DrawTextColor(left+16, top+2, g.Masked(), core.ColorBrightWhite)
	dst.DrawText(left+16, top+4, "Tried: "+g.triedLetters())
	dst.DrawText(left+16, top+5, fmt.Sprintf("Wrong: %d/%d", g.wrong, MaxWrong))

	dst.DrawText(2, 0, " Type a letter to guess ")
	if g.message != "" {
		color := core.ColorYellow
		switch {
		case g.lc.Won():
			color = core.ColorBrightGreen
		case g.lc.Over():
			color = core.ColorBrightRed
		}
		dst.DrawTextColor(left, top+9, g.message, color)
	}
	if g.lc.Over() {
		dst.DrawText(left, top+11, "Press Enter for a new word")
	}
	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    MaxWrong - g.wrong,
		GameOver: g.lc.Over(),
		Won:      g.lc.Won(),
		Paused:   g.lc.Paused(),
		Message:  g.message,
	}
}

func init() {
	registry.Register("hangman", func() registry.Game { return New() })
}
