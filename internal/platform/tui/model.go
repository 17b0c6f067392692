package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
	"github.com/vovakirdan/minigame-arcade/internal/storage"
)

// Options carries the optional collaborators of a game model.
type Options struct {
	Store  *storage.Store // leaderboard, nil to skip saving
	Prefs  registry.Prefs // personal bests, nil to skip
	Logger *log.Logger
	Player string // name stored with scores
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	prefs      registry.Prefs
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	gen        int
	embedded   bool // hosted by a session; quit returns to its menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	newBest    bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Prefs != nil {
		registry.AttachPrefs(game, opts.Prefs)
	}

	km := NewKeyMapper()
	if registry.IsTextInput(game) {
		km = NewTextKeyMapper()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		prefs:      opts.Prefs,
		logger:     opts.Logger,
		player:     opts.Player,
		config:     cfg,
		keyMapper:  km,
		inputFrame: core.NewInputFrame(),
		gen:        nextGeneration(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouse(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	frame := core.NewInputFrame()
	if m.keyMapper.MapKeyToFrame(msg, &frame) {
		return m.quit()
	}

	switch {
	case frame.Has(core.ActionRestart):
		return m.restart()
	case frame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused):
		return m.quit()
	}

	m.inputFrame.Merge(frame)
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.embedded {
		m.backToMenu = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// restart starts a fresh round with a new seed. The new generation
// retires the tick already in flight.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.newBest = false
	m.inputFrame.Clear()
	m.gen = nextGeneration()
	return m, tickCmd(m.config.TickRate, m.gen)
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Layouts depend on the screen size, so an unfinished round restarts
	// with the same seed.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.recordResult()

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.gen)
}

// recordResult saves the score once per game over. Lower-is-better games
// only count finished wins, since an abandoned round has a flattering score.
// Games that keep their own personal best are left to do so.
func (m *Model) recordResult() {
	if !m.gameState.GameOver {
		m.scoreSaved = false
		return
	}
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	id := m.game.ID()
	score := m.gameState.Score
	lower := registry.IsLowerBetter(m.game)
	if score <= 0 || (lower && !m.gameState.Won) {
		return
	}

	if m.store != nil {
		if _, err := m.store.SaveScoreFor(id, m.player, score); err != nil {
			m.logger.Warn("could not save score", "game", id, "err", err)
		}
	}

	if _, ok := m.game.(registry.PrefsAware); ok || m.prefs == nil {
		return
	}
	improved, err := m.prefs.RecordBest(id, score, lower)
	if err != nil {
		m.logger.Warn("could not save personal best", "game", id, "err", err)
		return
	}
	m.newBest = improved
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	base, err := config.DataDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(base, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot not written", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m Model) draw() {
	m.screen.Clear()
	m.game.Render(m.screen)
	drawHelpLine(m.screen, m.helpText())
}

func (m Model) helpText() string {
	switch {
	case m.gameState.GameOver && m.newBest:
		return "New personal best!"
	case m.keyMapper.TextMode():
		return "Enter: submit  Ctrl+R: restart  Ctrl+P: pause  Esc: quit"
	case m.gameState.GameOver:
		return "R: play again  B: back  Q: quit"
	default:
		return "P: pause  R: restart  Q: quit"
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
