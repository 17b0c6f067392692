// Package quiz implements a multiple-choice trivia quiz.
package quiz

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

const (
	PointsPerAnswer = 10

	// FeedbackMs is how long the verdict stays up before the next question.
	FeedbackMs = 1500

	choicesTop = 6
)

// Game implements the quiz.
type Game struct {
	lc        engine.Lifecycle
	pool      []config.Question
	questions []config.Question
	current   int
	selected  int
	correct   int
	answered  int // choice picked for the current question, -1 while waiting
	feedback  int // ticks left on the verdict
	loadErr   error
	message   string
	runtime   core.RuntimeConfig
	rng       *rand.Rand
}

// New creates a quiz over the embedded question set.
func New() *Game {
	pool, err := config.LoadQuestions()
	return &Game{pool: pool, loadErr: err}
}

// NewWithQuestions creates a quiz over qs.
func NewWithQuestions(qs []config.Question) *Game {
	return &Game{pool: qs}
}

func (g *Game) ID() string    { return "quiz" }
func (g *Game) Title() string { return "Trivia Quiz" }

// Description implements registry.Described.
func (g *Game) Description() string { return "Answer multiple-choice questions with 1-4" }

// Category implements registry.Described.
func (g *Game) Category() registry.Category { return registry.CategoryWord }

// AcceptsText implements registry.TextInput.
func (g *Game) AcceptsText() bool { return true }

// Reset shuffles the questions and starts from the first.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.questions = append(g.questions[:0], g.pool...)
	g.rng.Shuffle(len(g.questions), func(i, j int) {
		g.questions[i], g.questions[j] = g.questions[j], g.questions[i]
	})
	g.current = 0
	g.selected = 0
	g.correct = 0
	g.answered = -1
	g.feedback = 0
	g.message = ""

	g.lc.Restart()
	g.lc.Start()
	if len(g.questions) == 0 {
		g.message = "No questions available"
		g.lc.End(false)
	}
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

	if g.answered >= 0 {
		g.feedback--
		if g.feedback <= 0 || in.Has(core.ActionConfirm) {
			g.next()
		}
		return core.StepResult{State: g.State()}
	}

	q := g.questions[g.current]
	switch {
	case in.Has(core.ActionUp):
		g.selected = (g.selected + len(q.Choices) - 1) % len(q.Choices)
	case in.Has(core.ActionDown):
		g.selected = (g.selected + 1) % len(q.Choices)
	case in.Has(core.ActionConfirm):
		g.answer(g.selected)
		return core.StepResult{State: g.State()}
	}

	if in.Click != nil {
		i := in.Click.Y - choicesTop
		if i >= 0 && i < len(q.Choices) {
			g.answer(i)
			return core.StepResult{State: g.State()}
		}
	}

	for _, r := range in.Runes {
		i := int(r - '1')
		if i < 0 || i >= len(q.Choices) {
			g.message = fmt.Sprintf("Answer with 1-%d", len(q.Choices))
			continue
		}
		g.answer(i)
		break
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) answer(i int) {
	q := g.questions[g.current]
	g.answered = i
	g.selected = i
	g.feedback = g.runtime.TicksFor(FeedbackMs)
	if i == q.Answer {
		g.correct++
		g.message = "Correct!"
		return
	}
	g.message = fmt.Sprintf("Wrong, the answer was %d) %s", q.Answer+1, q.Choices[q.Answer])
}

func (g *Game) next() {
	g.current++
	g.answered = -1
	g.selected = 0
	g.message = ""
	if g.current >= len(g.questions) {
		g.current = len(g.questions) - 1
		g.message = fmt.Sprintf("You answered %d of %d correctly", g.correct, len(g.questions))
		g.lc.End(g.correct == len(g.questions))
	}
}

// Render draws the current question and its choices.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.correct*PointsPerAnswer))
	if len(g.questions) == 0 {
		dst.DrawMessageBox("NO QUESTIONS", g.loadErrText())
		return
	}

	if !g.lc.Over() {
		q := g.questions[g.current]
		dst.DrawText(4, 2, fmt.Sprintf("Question %d of %d", g.current+1, len(g.questions)))
		dst.DrawTextColor(4, 4, q.Question, core.ColorBrightWhite)
		for i, c := range q.Choices {
			color := core.ColorDefault
			switch {
			case g.answered >= 0 && i == q.Answer:
				color = core.ColorBrightGreen
			case g.answered == i:
				color = core.ColorBrightRed
			case g.answered < 0 && i == g.selected:
				color = core.ColorBrightYellow
			}
			dst.DrawTextColor(6, choicesTop+i, fmt.Sprintf("%d) %s", i+1, c), color)
		}
		if g.message != "" {
			dst.DrawText(4, choicesTop+len(q.Choices)+1, g.message)
		}
	}

	if g.lc.Paused() {
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
	if g.lc.Over() {
		dst.DrawMessageBox("QUIZ COMPLETE", g.message)
	}
}

func (g *Game) loadErrText() string {
	if g.loadErr != nil {
		return g.loadErr.Error()
	}
	return "The question list is empty"
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.correct * PointsPerAnswer,
		GameOver: g.lc.Over(),
		Won:      g.lc.Won(),
		Paused:   g.lc.Paused(),
		Message:  g.message,
	}
}

func init() {
	registry.Register("quiz", func() registry.Game { return New() })
}
