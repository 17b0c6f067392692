package quiz

import (
	"strings"
	"testing"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
)

var fixture = []config.Question{
	{Question: "2 + 2?", Choices: []string{"3", "4", "5", "22"}, Answer: 1},
	{Question: "Sky colour?", Choices: []string{"Blue", "Green", "Red", "Pink"}, Answer: 0},
	{Question: "Largest number?", Choices: []string{"1", "10", "100", "1000"}, Answer: 3},
}

func newGame() *Game {
	g := NewWithQuestions(fixture)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g
}

func typed(s string) core.InputFrame {
	in := core.NewInputFrame()
	for _, r := range s {
		in.Type(r)
	}
	return in
}

func confirm() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	return in
}

func key(g *Game, right bool) string {
	q := g.questions[g.current]
	i := q.Answer
	if !right {
		i = (q.Answer + 1) % len(q.Choices)
	}
	return string(rune('1' + i))
}

func TestEmbeddedQuestionsLoad(t *testing.T) {
	g := New()
	if g.loadErr != nil || len(g.pool) == 0 {
		t.Fatalf("embedded questions should load: %v", g.loadErr)
	}
}

func TestShuffleKeepsAllQuestions(t *testing.T) {
	g := newGame()
	if len(g.questions) != len(fixture) {
		t.Fatalf("questions = %d", len(g.questions))
	}
	seen := make(map[string]bool)
	for _, q := range g.questions {
		seen[q.Question] = true
	}
	if len(seen) != len(fixture) {
		t.Error("shuffle should keep every question once")
	}
	if fixture[0].Question != "2 + 2?" {
		t.Error("shuffle must not reorder the caller's slice")
	}
}

func TestCorrectAnswerScores(t *testing.T) {
	g := newGame()
	g.Step(typed(key(g, true)))

	st := g.State()
	if st.Score != PointsPerAnswer || st.Message != "Correct!" {
		t.Errorf("state = %+v", st)
	}
}

func TestWrongAnswerShowsCorrectOne(t *testing.T) {
	g := newGame()
	q := g.questions[0]
	g.Step(typed(key(g, false)))

	st := g.State()
	if st.Score != 0 {
		t.Error("wrong answer should not score")
	}
	if !strings.Contains(st.Message, q.Choices[q.Answer]) {
		t.Errorf("message should reveal %q, got %q", q.Choices[q.Answer], st.Message)
	}
}

func TestInvalidKeyRejected(t *testing.T) {
	g := newGame()
	g.Step(typed("9"))
	if g.answered != -1 {
		t.Error("9 should not answer")
	}
	if !strings.Contains(g.State().Message, "1-4") {
		t.Errorf("Message = %q", g.State().Message)
	}
}

func TestFeedbackAdvancesAfterDelay(t *testing.T) {
	g := newGame()
	g.Step(typed("1"))
	for i := 0; i < g.runtime.TicksFor(FeedbackMs); i++ {
		g.Step(core.NewInputFrame())
	}
	if g.current != 1 || g.answered != -1 {
		t.Errorf("should move to the next question, current = %d", g.current)
	}
}

func TestArrowsAndConfirm(t *testing.T) {
	g := newGame()
	q := g.questions[0]
	for g.selected != q.Answer {
		in := core.NewInputFrame()
		in.Set(core.ActionDown)
		g.Step(in)
	}
	g.Step(confirm())
	if g.correct != 1 {
		t.Error("confirm should answer the highlighted choice")
	}
}

func TestClickAnswers(t *testing.T) {
	g := newGame()
	q := g.questions[0]
	in := core.NewInputFrame()
	in.Press(8, choicesTop+q.Answer, false)
	g.Step(in)
	if g.correct != 1 {
		t.Error("click on the right choice should score")
	}
}

func TestSummaryAtEnd(t *testing.T) {
	g := newGame()
	for i := range fixture {
		g.Step(typed(key(g, i != 1)))
		g.Step(confirm())
	}

	st := g.State()
	if !st.GameOver || st.Won {
		t.Fatalf("quiz should end without a perfect run, state = %+v", st)
	}
	if st.Message != "You answered 2 of 3 correctly" {
		t.Errorf("Message = %q", st.Message)
	}
	if st.Score != 2*PointsPerAnswer {
		t.Errorf("Score = %d", st.Score)
	}
}

func TestEmptyPoolEndsImmediately(t *testing.T) {
	g := NewWithQuestions(nil)
	g.Reset(core.DefaultConfig())
	if !g.State().GameOver {
		t.Error("an empty quiz should be over")
	}
	g.Render(core.NewScreen(80, 24))
}

func TestResetIdempotent(t *testing.T) {
	g := newGame()
	order := append([]config.Question(nil), g.questions...)
	g.Step(typed("1"))
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	if g.current != 0 || g.correct != 0 || g.answered != -1 {
		t.Error("reset should restart the quiz")
	}
	for i := range order {
		if order[i].Question != g.questions[i].Question {
			t.Fatal("same seed should give the same order")
		}
	}
}

func TestRenderDoesNotScore(t *testing.T) {
	g := newGame()
	g.Step(typed(key(g, true)))
	before := g.State()
	s := core.NewScreen(80, 24)
	g.Render(s)
	if g.State() != before {
		t.Error("render should not change state")
	}
}
