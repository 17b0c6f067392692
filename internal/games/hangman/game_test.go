package hangman

import (
	"strings"
	"testing"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

func newGame() *Game {
	g := New()
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

// missing returns a letter that is not in the current word.
func missing(g *Game) rune {
	for r := 'a'; r <= 'z'; r++ {
		if !strings.ContainsRune(g.word, r) {
			return r
		}
	}
	return 0
}

func TestWordPoolHasFifteenWords(t *testing.T) {
	g := New()
	if len(g.Words()) != 15 {
		t.Errorf("pool has %d words, want 15", len(g.Words()))
	}
	for _, w := range g.Words() {
		if w != strings.ToLower(w) || w == "" {
			t.Errorf("word %q should be lowercase", w)
		}
	}
}

func TestNewGameClearsState(t *testing.T) {
	g := newGame()
	g.Step(typed(string(missing(g))))
	g.Step(typed(g.word[:1]))

	g.newGame()
	if len(g.guessed) != 0 {
		t.Errorf("guessed = %v, want empty", g.guessed)
	}
	if g.wrong != 0 {
		t.Errorf("wrong = %d, want 0", g.wrong)
	}
	if !g.lc.Running() {
		t.Error("new game should be running")
	}
}

func TestAllCorrectGuessesWin(t *testing.T) {
	g := newGame()
	g.Step(typed(g.word))

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Fatalf("guessing every letter should win, state = %+v", st)
	}
	if st.Message != "You Win! 🎉" {
		t.Errorf("Message = %q, want %q", st.Message, "You Win! 🎉")
	}
	if st.Score <= 0 {
		t.Error("a win should score")
	}
}

func TestSixWrongGuessesLose(t *testing.T) {
	g := newGame()
	var wrong []rune
	for r := 'a'; r <= 'z' && len(wrong) < MaxWrong; r++ {
		if !strings.ContainsRune(g.word, r) {
			wrong = append(wrong, r)
		}
	}
	for i, r := range wrong {
		g.Step(typed(string(r)))
		if i < MaxWrong-1 && g.State().GameOver {
			t.Fatalf("game ended after %d wrong guesses", i+1)
		}
	}

	st := g.State()
	if !st.GameOver || st.Won {
		t.Fatalf("six wrong guesses should lose, state = %+v", st)
	}
	if !strings.Contains(st.Message, g.word) {
		t.Errorf("lose message should reveal the word, got %q", st.Message)
	}
}

func TestRejectedInput(t *testing.T) {
	tests := []struct {
		name  string
		input func(g *Game) string
	}{
		{"digit", func(*Game) string { return "7" }},
		{"punctuation", func(*Game) string { return "!" }},
		{"repeat", func(g *Game) string { return string(missing(g)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame()
			if tt.name == "repeat" {
				g.Step(typed(tt.input(g)))
			}
			wrongBefore := g.wrong
			triedBefore := len(g.guessed)

			g.Step(typed(tt.input(g)))

			if g.wrong != wrongBefore || len(g.guessed) != triedBefore {
				t.Error("rejected input should not be penalised")
			}
			if g.State().Message == "" {
				t.Error("rejected input should show a message")
			}
		})
	}
}

func TestUppercaseCounts(t *testing.T) {
	g := newGame()
	g.Step(typed(strings.ToUpper(g.word[:1])))
	if !g.guessed[rune(g.word[0])] {
		t.Error("uppercase guess should count as lowercase")
	}
}

func TestEnterStartsNewWordAfterGameOver(t *testing.T) {
	g := newGame()
	g.Step(typed(g.word))
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)

	if g.State().GameOver || len(g.guessed) != 0 {
		t.Error("Enter after game over should start a new round")
	}
}

func TestResetIdempotent(t *testing.T) {
	g := newGame()
	first := g.word
	g.Step(typed("xyz"))

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	if g.word != first || g.wrong != 0 || len(g.guessed) != 0 {
		t.Error("reset with the same seed should pick the same fresh word")
	}
}

func TestRenderDoesNotScore(t *testing.T) {
	g := newGame()
	g.Step(typed(g.word))
	before := g.State()

	s := core.NewScreen(80, 24)
	g.Render(s)
	if g.State() != before {
		t.Error("render should not change state")
	}
	if !strings.Contains(s.String(), g.Masked()) {
		t.Error("word should be drawn")
	}
}
