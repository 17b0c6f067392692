package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/storage"
)

// countdownGame ends after endAt steps with a fixed score.
type countdownGame struct {
	steps  int
	endAt  int
	score  int
	lower  bool
	won    bool
	resets int
}

func (g *countdownGame) ID() string    { return "countdown" }
func (g *countdownGame) Title() string { return "Countdown" }
func (g *countdownGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}
func (g *countdownGame) Step(core.InputFrame) core.StepResult {
	if g.steps < g.endAt {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}
func (g *countdownGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "countdown") }
func (g *countdownGame) LowerIsBetter() bool     { return g.lower }
func (g *countdownGame) State() core.GameState {
	over := g.steps >= g.endAt
	return core.GameState{Score: g.score, GameOver: over, Won: over && g.won}
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	return cfg
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(TickMsg{Gen: m.gen})
	require.NotNil(t, cmd)
	return next.(Model)
}

func TestModelSavesScoreOncePerGameOver(t *testing.T) {
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()
	prefs := storage.NewMemoryPrefs()

	g := &countdownGame{endAt: 2, score: 40}
	m := NewModel(g, testConfig(), Options{Store: store, Prefs: prefs, Player: "ada"})
	m.Init()

	for range 5 {
		m = tick(t, m)
	}
	assert.True(t, m.State().GameOver)

	scores, err := store.TopScores("countdown", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 40, scores[0].Score)
	assert.Equal(t, "ada", scores[0].Player)

	best, ok := prefs.Best("countdown")
	assert.True(t, ok)
	assert.Equal(t, 40, best)
	assert.Equal(t, "New personal best!", m.helpText())
}

func TestModelSkipsLostLowerIsBetterRounds(t *testing.T) {
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	g := &countdownGame{endAt: 1, score: 12, lower: true}
	m := NewModel(g, testConfig(), Options{Store: store})
	m.Init()
	m = tick(t, m)

	scores, err := store.TopScores("countdown", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestModelRestartRetiresOldTicks(t *testing.T) {
	g := &countdownGame{endAt: 100}
	m := NewModel(g, testConfig(), Options{})
	m.Init()

	oldGen := m.gen
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	m = next.(Model)
	assert.NotEqual(t, oldGen, m.gen)
	assert.Equal(t, 2, g.resets)

	next, cmd = m.Update(TickMsg{Gen: oldGen})
	assert.Nil(t, cmd, "a stale tick must not start a second chain")
	assert.Equal(t, 0, next.(Model).game.(*countdownGame).steps)
}

func TestEmbeddedModelReturnsToMenu(t *testing.T) {
	m := NewModel(&countdownGame{endAt: 10}, testConfig(), Options{})
	m.embedded = true

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Nil(t, cmd)
	assert.True(t, next.(Model).BackToMenu())
	assert.False(t, next.(Model).IsQuitting())
}

func TestModelViewShowsHelpLine(t *testing.T) {
	cfg := testConfig()
	m := NewModel(&countdownGame{endAt: 10}, cfg, Options{})
	m.Init()

	m.View()
	bottom := make([]rune, 0, cfg.ScreenW)
	for x := 0; x < cfg.ScreenW; x++ {
		bottom = append(bottom, m.screen.GetCell(x, cfg.ScreenH-1).Rune)
	}
	assert.Contains(t, string(bottom), "P: pause")
}
