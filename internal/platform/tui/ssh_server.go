package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/multiplayer"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
	"github.com/vovakirdan/minigame-arcade/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session and online match.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server for the arcade.
// All sessions share the leaderboard and one coordinator, so players on
// different connections can meet in online matches.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	prefs       *storage.Prefs
	logger      *log.Logger
	sessions    *multiplayer.SessionRegistry
	coordinator *multiplayer.Coordinator
}

// NewSSHServer creates a new SSH server with the given configuration.
// store may be nil, in which case scores are not kept.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	sessions := multiplayer.NewSessionRegistry()
	coordCfg := multiplayer.DefaultCoordinatorConfig()
	coordCfg.TickRate = cfg.TickRate
	coordinator := multiplayer.NewCoordinator(coordCfg, NewOnlineGame, sessions)
	coordinator.SetLogger(logger)
	if store != nil {
		coordinator.SetResultSaver(store)
	}

	srv := &SSHServer{
		config:      cfg,
		store:       store,
		prefs:       storage.NewMemoryPrefs(),
		logger:      logger.WithPrefix("ssh"),
		sessions:    sessions,
		coordinator: coordinator,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		dir, err := config.DataDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot locate host key: %w", err)
		}
		hostKeyPath = filepath.Join(dir, "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// SetPrefs sets the store of personal bests. Each SSH user gets their
// own keys in it. Without it bests last until the server stops.
func (s *SSHServer) SetPrefs(prefs *storage.Prefs) {
	if prefs != nil {
		s.prefs = prefs
	}
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "The arcade needs a terminal. Connect with: ssh -t")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	channel := multiplayer.NewChannelSession(multiplayer.NewSessionID(), 0)
	s.sessions.Register(channel)
	go func() {
		<-sshSession.Context().Done()
		s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: channel.ID()})
		s.sessions.Unregister(channel.ID())
		channel.Close()
	}()

	model := NewSessionModel(SessionConfig{
		Runtime:     cfg,
		Store:       s.store,
		Prefs:       s.prefs.ForUser(sshSession.User()),
		Logger:      s.logger.With("user", sshSession.User()),
		Username:    sshSession.User(),
		Coordinator: s.coordinator,
		Channel:     channel,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// Serve runs the coordinator and the SSH listener until ctx is cancelled
// or the listener fails, then shuts both down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.coordinator.Start()
	defer s.coordinator.Stop()

	s.logger.Info("starting SSH server", "address", s.config.Address)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("tui: ssh listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("tui: ssh shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionConfig wires a SessionModel to its collaborators. Coordinator and
// Channel are optional; without them online play is not offered.
type SessionConfig struct {
	Runtime     core.RuntimeConfig
	Store       *storage.Store
	Prefs       registry.Prefs
	Logger      *log.Logger
	Username    string
	Coordinator *multiplayer.Coordinator
	Channel     *multiplayer.ChannelSession
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenMode
	screenLobby
	screenMatch
	screenGame
	screenScores
)

// SessionModel manages the full arcade session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions. It owns the single
// reader of the session's coordinator events and routes them to the
// lobby or match screen.
type SessionModel struct {
	deps       SessionConfig
	config     core.RuntimeConfig
	screen     sessionScreen
	menu       MenuModel
	mode       ModeModel
	lobby      OnlineLobbyModel
	match      OnlineMatchModel
	game       Model
	scoreboard ScoreboardModel
	gameID     string
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionConfig) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	return SessionModel{
		deps:   deps,
		config: deps.Runtime,
		menu:   NewMenuModel(deps.Runtime),
	}
}

func (m SessionModel) online() bool {
	return m.deps.Coordinator != nil && m.deps.Channel != nil
}

// waitForEvent returns a command that waits for the next coordinator event.
func (m SessionModel) waitForEvent() tea.Cmd {
	if !m.online() {
		return nil
	}
	events := m.deps.Channel.Events()
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return nil
		}
		return evt
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.waitForEvent())
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if evt, ok := msg.(multiplayer.SessionEvent); ok {
		next, cmd := m.routeEvent(evt)
		return next, tea.Batch(cmd, m.waitForEvent())
	}

	switch m.screen {
	case screenMode:
		return m.updateMode(msg)
	case screenLobby:
		return m.updateLobby(msg)
	case screenMatch:
		return m.updateMatch(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// routeEvent hands coordinator events to the screen that expects them.
// Anything else is left over from an abandoned lobby or match.
func (m SessionModel) routeEvent(evt multiplayer.SessionEvent) (SessionModel, tea.Cmd) {
	switch m.screen {
	case screenLobby:
		next, cmd := m.updateLobby(evt)
		return next.(SessionModel), cmd
	case screenMatch:
		next, cmd := m.updateMatch(evt)
		return next.(SessionModel), cmd
	}
	return m, nil
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.gameID = ""
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.deps.Store, m.deps.Prefs, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard.embedded = true
		m.screen = screenScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		selected := m.menu.Selected()
		m.gameID = selected.GameID
		if selected.Mode == multiplayer.MatchModeVsCPU && m.online() {
			m.mode = NewModeModel(selected.Title, m.config.ScreenW, m.config.ScreenH)
			m.screen = screenMode
			return m, m.mode.Init()
		}
		return m.startGame()
	}

	return m, cmd
}

// startGame runs the chosen game locally.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	game, err := registry.Create(m.gameID)
	if err != nil {
		m.deps.Logger.Error("cannot create game", "game", m.gameID, "err", err)
		return m.toMenu()
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	m.game = NewModel(game, cfg, Options{
		Store:  m.deps.Store,
		Prefs:  m.deps.Prefs,
		Logger: m.deps.Logger,
		Player: m.deps.Username,
	})
	m.game.embedded = true
	m.screen = screenGame
	m.deps.Logger.Debug("game started", "game", m.gameID)
	return m, m.game.Init()
}

func (m SessionModel) updateMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMode, cmd := m.mode.Update(msg)
	if mm, ok := newMode.(ModeModel); ok {
		m.mode = mm
	}

	switch {
	case m.mode.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.mode.WantsBack():
		return m.toMenu()
	case m.mode.Selected() == multiplayer.MatchModeVsCPU:
		return m.startGame()
	case m.mode.Selected() == multiplayer.MatchModeOnlinePvP:
		m.lobby = NewOnlineLobbyModel(m.gameID, m.deps.Channel.ID(), m.deps.Coordinator, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLobby
		return m, m.lobby.Init()
	}
	return m, cmd
}

func (m SessionModel) updateLobby(msg tea.Msg) (tea.Model, tea.Cmd) {
	newLobby, cmd := m.lobby.Update(msg)
	if lm, ok := newLobby.(OnlineLobbyModel); ok {
		m.lobby = lm
	}

	switch {
	case m.lobby.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.lobby.BackToMenu():
		return m.toMenu()
	case m.lobby.State() == OnlineStateInMatch:
		match, err := NewOnlineMatchModel(m.gameID, m.lobby, m.config)
		if err != nil {
			m.deps.Logger.Error("cannot open match view", "game", m.gameID, "err", err)
			m.deps.Coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: m.deps.Channel.ID(), MatchID: m.lobby.MatchID()})
			return m.toMenu()
		}
		m.match = match
		m.screen = screenMatch
		return m, m.match.Init()
	}
	return m, cmd
}

func (m SessionModel) updateMatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMatch, cmd := m.match.Update(msg)
	if mm, ok := newMatch.(OnlineMatchModel); ok {
		m.match = mm
	}

	switch {
	case m.match.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.match.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if sb, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenMode:
		return m.mode.View()
	case screenLobby:
		return m.lobby.View()
	case screenMatch:
		return m.match.View()
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
