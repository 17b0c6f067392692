package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/games/connect4"
	"github.com/vovakirdan/minigame-arcade/internal/multiplayer"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

// OnlineView is the local mirror of an online match. It never simulates;
// it only applies snapshots from the authoritative match and renders them.
type OnlineView interface {
	Reset(cfg core.RuntimeConfig)
	Render(dst *core.Screen)
	SetViewer(p core.PlayerID)
	ApplyGameSnapshot(snap multiplayer.GameSnapshot) bool
}

// onlineGame pairs the authoritative game run by the coordinator with the
// view each session renders.
type onlineGame struct {
	host func() multiplayer.OnlineGame
	view func() OnlineView
}

var onlineGames = map[string]onlineGame{
	"connect4": {
		host: func() multiplayer.OnlineGame { return connect4.NewOnline() },
		view: func() OnlineView { return connect4.NewOnline() },
	},
}

// HasOnlineMode reports whether the game can be played against another session.
func HasOnlineMode(gameID string) bool {
	_, ok := onlineGames[gameID]
	return ok
}

// NewOnlineGame is the coordinator's multiplayer.GameFactory.
func NewOnlineGame(gameID string, cfg core.RuntimeConfig) (multiplayer.OnlineGame, error) {
	og, ok := onlineGames[gameID]
	if !ok {
		return nil, fmt.Errorf("tui: no online mode for %w %q", registry.ErrUnknownGame, gameID)
	}
	g := og.host()
	g.Reset(cfg)
	return g, nil
}

var _ multiplayer.GameFactory = NewOnlineGame

func newOnlineView(gameID string) (OnlineView, error) {
	og, ok := onlineGames[gameID]
	if !ok {
		return nil, fmt.Errorf("tui: no online mode for %w %q", registry.ErrUnknownGame, gameID)
	}
	return og.view(), nil
}

func gameTitle(gameID string) string {
	if info, ok := registry.Info(gameID); ok {
		return info.Title
	}
	return gameID
}

func sideName(p core.PlayerID) string {
	if p == core.Player2 {
		return "Yellow (P2)"
	}
	return "Red (P1, moves first)"
}

// OnlineState represents the current state of the online matchmaking flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for joiner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInMatch                          // Match started, hand over to OnlineMatchModel
)

// joinCodeLen matches the coordinator's lobby codes.
const joinCodeLen = 6

// OnlineLobbyModel handles the online matchmaking flow.
// Coordinator events are delivered to Update by the owning session.
type OnlineLobbyModel struct {
	state       OnlineState
	width       int
	height      int
	gameID      string
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator

	// Host state
	lobbyCode string

	// Join state
	joinCodeInput string
	joinError     string

	// Match state
	matchID multiplayer.MatchID
	side    core.PlayerID

	backToMenu bool
	quitting   bool
}

// NewOnlineLobbyModel creates a new online lobby model.
func NewOnlineLobbyModel(
	gameID string,
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	width, height int,
) OnlineLobbyModel {
	return OnlineLobbyModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		gameID:      gameID,
		sessionID:   sessionID,
		coordinator: coordinator,
	}
}

// Init initializes the lobby model.
func (m OnlineLobbyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OnlineLobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = msg.Code
		m.state = OnlineStateHostWaiting
		return m, nil
	case multiplayer.LobbyJoinedEvent:
		m.side = msg.Side
		return m, nil
	case multiplayer.LobbyErrorEvent:
		m.joinError = msg.Message
		if m.state == OnlineStateJoinWaiting {
			m.state = OnlineStateJoinEnterCode
		}
		return m, nil
	case multiplayer.MatchStartedEvent:
		m.matchID = msg.MatchID
		m.side = msg.Side
		m.lobbyCode = msg.Code
		m.state = OnlineStateInMatch
		return m, nil
	}
	return m, nil
}

func (m OnlineLobbyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting:
		return m.handleHostWaitingKey(msg)
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	case OnlineStateJoinWaiting:
		return m.handleJoinWaitingKey(msg)
	}

	return m, nil
}

// leave withdraws from whatever lobby this session is in.
func (m OnlineLobbyModel) leave() {
	switch m.state {
	case OnlineStateHostWaiting:
		m.coordinator.Send(multiplayer.CancelLobbyMsg{SessionID: m.sessionID, Code: m.lobbyCode})
	case OnlineStateJoinWaiting:
		m.coordinator.Send(multiplayer.LeaveLobbyMsg{SessionID: m.sessionID, Code: m.joinCodeInput})
	}
}

func (m OnlineLobbyModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.joinError = ""
		m.coordinator.Send(multiplayer.CreateLobbyMsg{
			SessionID: m.sessionID,
			GameID:    m.gameID,
		})
		return m, nil
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinCodeInput = ""
		m.joinError = ""
		return m, nil
	case "esc", "b":
		m.backToMenu = true
		return m, nil
	case "q":
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m OnlineLobbyModel) handleHostWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.backToMenu = true
		return m, nil
	case "q":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m OnlineLobbyModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = OnlineStateChooseMode
		return m, nil
	case tea.KeyEnter:
		if len(m.joinCodeInput) != joinCodeLen {
			m.joinError = fmt.Sprintf("Codes are %d characters", joinCodeLen)
			return m, nil
		}
		m.state = OnlineStateJoinWaiting
		m.joinError = ""
		m.coordinator.Send(multiplayer.JoinLobbyMsg{
			SessionID: m.sessionID,
			Code:      m.joinCodeInput,
		})
		return m, nil
	case tea.KeyBackspace:
		if m.joinCodeInput != "" {
			m.joinCodeInput = m.joinCodeInput[:len(m.joinCodeInput)-1]
		}
		return m, nil
	}

	r, ok := typedRune(msg)
	if !ok || len(m.joinCodeInput) >= joinCodeLen {
		return m, nil
	}
	c := strings.ToUpper(string(r))
	if (c[0] >= 'A' && c[0] <= 'Z') || (c[0] >= '0' && c[0] <= '9') {
		m.joinCodeInput += c
	}
	return m, nil
}

func (m OnlineLobbyModel) handleJoinWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.state = OnlineStateJoinEnterCode
		return m, nil
	}

	return m, nil
}

// View renders the current state.
func (m OnlineLobbyModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.viewChooseMode()
	case OnlineStateHostWaiting:
		return m.viewHostWaiting()
	case OnlineStateJoinEnterCode:
		return m.viewJoinEnterCode()
	case OnlineStateJoinWaiting:
		return m.viewJoinWaiting()
	case OnlineStateInMatch:
		return m.viewMatchStarting()
	}
	return ""
}

func (m OnlineLobbyModel) viewChooseMode() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("ONLINE "+strings.ToUpper(gameTitle(m.gameID))), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose an option:", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("[H] Host a game", m.width))
	b.WriteString("\n")
	b.WriteString(centerText("[J] Join a game", m.width))
	b.WriteString("\n")
	if m.joinError != "" {
		b.WriteString("\n")
		b.WriteString(centerText("Error: "+m.joinError, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m OnlineLobbyModel) viewHostWaiting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("HOSTING GAME"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Share this code with your opponent:", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("[ %s ]", m.lobbyCode), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Waiting for player to join...", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(helpStyle.Render("Esc: Cancel  |  Q: Quit"), m.width))

	return b.String()
}

func (m OnlineLobbyModel) viewJoinEnterCode() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("JOIN GAME"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter the game code:", m.width))
	b.WriteString("\n\n")

	codeDisplay := m.joinCodeInput
	if len(codeDisplay) < joinCodeLen {
		codeDisplay += "_" + strings.Repeat(" ", joinCodeLen-1-len(m.joinCodeInput))
	}
	b.WriteString(centerText(fmt.Sprintf("[ %s ]", codeDisplay), m.width))
	b.WriteString("\n")

	if m.joinError != "" {
		b.WriteString("\n")
		b.WriteString(centerText(fmt.Sprintf("Error: %s", m.joinError), m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(centerText(helpStyle.Render("Enter: Connect  |  Esc: Back"), m.width))

	return b.String()
}

func (m OnlineLobbyModel) viewJoinWaiting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("CONNECTING"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Joining game: %s", m.joinCodeInput), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Please wait...", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(helpStyle.Render("Esc: Cancel"), m.width))

	return b.String()
}

func (m OnlineLobbyModel) viewMatchStarting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("MATCH STARTING"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("You are: %s", sideName(m.side)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Get ready!", m.width))

	return b.String()
}

// State returns the current online state.
func (m OnlineLobbyModel) State() OnlineState {
	return m.state
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineLobbyModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineLobbyModel) IsQuitting() bool {
	return m.quitting
}

// MatchID returns the match ID if a match was started.
func (m OnlineLobbyModel) MatchID() multiplayer.MatchID {
	return m.matchID
}

// Side returns which side (P1/P2) this session plays.
func (m OnlineLobbyModel) Side() core.PlayerID {
	return m.side
}

// LobbyCode returns the lobby code.
func (m OnlineLobbyModel) LobbyCode() string {
	return m.lobbyCode
}

// OnlineMatchModel plays one side of an online match. Keys are forwarded
// to the coordinator as input frames and the board is drawn from snapshots.
type OnlineMatchModel struct {
	view        OnlineView
	screen      *core.Screen
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	coordinator *multiplayer.Coordinator
	sessionID   multiplayer.SessionID
	matchID     multiplayer.MatchID
	side        core.PlayerID
	code        string

	ended           *multiplayer.MatchEndedEvent
	rematchSent     bool
	opponentRematch bool
	notice          string

	backToMenu bool
	quitting   bool
}

// NewOnlineMatchModel creates the match screen for a started match.
func NewOnlineMatchModel(
	gameID string,
	lobby OnlineLobbyModel,
	cfg core.RuntimeConfig,
) (OnlineMatchModel, error) {
	view, err := newOnlineView(gameID)
	if err != nil {
		return OnlineMatchModel{}, err
	}
	m := OnlineMatchModel{
		view:        view,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:      cfg,
		keyMapper:   NewKeyMapper(),
		coordinator: lobby.coordinator,
		sessionID:   lobby.sessionID,
		code:        lobby.LobbyCode(),
	}
	m.begin(lobby.MatchID(), lobby.Side())
	return m, nil
}

// begin resets the mirror for a new match, including rematches.
func (m *OnlineMatchModel) begin(id multiplayer.MatchID, side core.PlayerID) {
	m.matchID = id
	m.side = side
	m.ended = nil
	m.rematchSent = false
	m.opponentRematch = false
	m.notice = ""
	m.view.Reset(m.config)
	m.view.SetViewer(side)
}

// Init initializes the match model.
func (m OnlineMatchModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OnlineMatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		frame := core.NewInputFrame()
		m.keyMapper.MapMouse(msg, &frame)
		m.send(frame)
		return m, nil
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case multiplayer.SnapshotEvent:
		if msg.MatchID == m.matchID {
			m.view.ApplyGameSnapshot(msg.Snapshot)
		}
	case multiplayer.MatchEndedEvent:
		if msg.MatchID == m.matchID {
			m.ended = &msg
			m.notice = m.endText()
		}
	case multiplayer.RematchRequestedEvent:
		if msg.MatchID == m.matchID {
			m.opponentRematch = true
		}
	case multiplayer.MatchStartedEvent:
		m.code = msg.Code
		m.begin(msg.MatchID, msg.Side)
	case multiplayer.LobbyErrorEvent:
		m.notice = msg.Message
	}
	return m, nil
}

func (m OnlineMatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	case "esc", "b":
		m.leave()
		m.backToMenu = true
		return m, nil
	case "r":
		if m.ended != nil && m.ended.Reason == multiplayer.MatchEndReasonCompleted && !m.rematchSent {
			m.rematchSent = true
			m.coordinator.Send(multiplayer.ReadyForRematchMsg{SessionID: m.sessionID, MatchID: m.matchID})
		}
		return m, nil
	}

	frame := core.NewInputFrame()
	m.keyMapper.MapKeyToFrame(msg, &frame)
	m.send(frame)
	return m, nil
}

// send forwards input while the match is live.
func (m OnlineMatchModel) send(frame core.InputFrame) {
	if m.ended != nil || frame.Empty() {
		return
	}
	m.coordinator.Send(multiplayer.PlayerInputMsg{
		MatchID: m.matchID,
		Player:  m.side,
		Input:   frame,
	})
}

func (m OnlineMatchModel) leave() {
	if m.ended == nil {
		m.coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: m.sessionID, MatchID: m.matchID})
	}
}

func (m OnlineMatchModel) endText() string {
	e := m.ended
	if e.Reason != multiplayer.MatchEndReasonCompleted {
		return e.Reason.String()
	}
	switch e.Winner {
	case m.side:
		return "You win!"
	case 0:
		return "It's a draw!"
	default:
		return "You lose"
	}
}

func (m OnlineMatchModel) statusText() string {
	switch {
	case m.ended == nil:
		return fmt.Sprintf("You are %s  |  Code %s  |  Esc: leave", sideName(m.side), m.code)
	case m.ended.Reason != multiplayer.MatchEndReasonCompleted:
		return m.notice + "  |  Esc: back to menu"
	case m.rematchSent:
		return m.notice + "  |  Waiting for opponent..."
	case m.opponentRematch:
		return m.notice + "  |  Opponent wants a rematch! R: accept  Esc: menu"
	default:
		return m.notice + "  |  R: rematch  Esc: menu"
	}
}

// View renders the mirrored game with a status line.
func (m OnlineMatchModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.view.Render(m.screen)
	y := m.screen.Height() - 1
	text := m.statusText()
	m.screen.DrawHLine(0, y, m.screen.Width(), ' ')
	m.screen.DrawTextColor(max(0, (m.screen.Width()-len(text))/2), y, text, core.ColorBrightYellow)
	return RenderScreen(m.screen)
}

// BackToMenu returns true if user left the match.
func (m OnlineMatchModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineMatchModel) IsQuitting() bool {
	return m.quitting
}

// Ended returns the end event of the current match, or nil while it runs.
func (m OnlineMatchModel) Ended() *multiplayer.MatchEndedEvent {
	return m.ended
}

// ModeModel lets users choose between Vs CPU and Online PvP.
type ModeModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  multiplayer.MatchMode
	choosing  bool
	quitting  bool
	back      bool
}

// NewModeModel creates a new mode selection model for the named game.
func NewModeModel(title string, width, height int) ModeModel {
	return ModeModel{
		title:     title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m ModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

var modeChoices = []multiplayer.MatchMode{multiplayer.MatchModeVsCPU, multiplayer.MatchModeOnlinePvP}

func (m ModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(modeChoices)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selected = modeChoices[m.cursor]
	case MenuActionBack:
		m.back = true
	}

	return m, nil
}

// View renders the mode selection.
func (m ModeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i, mode := range modeChoices {
		line := "  " + mode.String() + "  "
		if i == m.cursor {
			line = menuSelectedStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the selected mode, or -1 if still choosing.
func (m ModeModel) Selected() multiplayer.MatchMode {
	if m.choosing {
		return -1
	}
	return m.selected
}

// IsChoosing returns true if still in selection mode.
func (m ModeModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m ModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ModeModel) WantsBack() bool {
	return m.back
}
