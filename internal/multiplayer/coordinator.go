package multiplayer

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// Lobby represents a waiting room for a match.
type Lobby struct {
	Code      string
	GameID    string
	Host      SessionHandle
	Joiner    SessionHandle
	CreatedAt time.Time
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout   time.Duration // How long before an empty lobby expires
	RematchTimeout time.Duration // How long a finished pair may still ask for a rematch
	TickRate       int           // Game tick rate (Hz)
	CleanupPeriod  time.Duration // How often to clean up expired lobbies
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:   2 * time.Minute,
		RematchTimeout: time.Minute,
		TickRate:       60,
		CleanupPeriod:  30 * time.Second,
	}
}

// GameFactory creates game instances for matches.
type GameFactory func(gameID string, cfg core.RuntimeConfig) (OnlineGame, error)

// MatchResultSaver is an interface for saving match results.
// This allows the coordinator to save results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID        string
	GameID         string
	Player1Session string
	Player2Session string
	Score1         int
	Score2         int
	WinnerSession  string
	EndReason      string
	DurationSecs   int
}

// finishedMatch remembers a pair after their match ended so they can rematch.
type finishedMatch struct {
	code    string
	gameID  string
	player1 SessionHandle
	player2 SessionHandle
	ready   map[SessionID]bool
	endedAt time.Time
}

// Coordinator manages lobbies and active matches.
type Coordinator struct {
	config      CoordinatorConfig
	gameFactory GameFactory
	sessions    *SessionRegistry
	resultSaver MatchResultSaver // Optional, can be nil
	logger      *log.Logger

	mu       sync.RWMutex
	lobbies  map[string]*Lobby          // code -> lobby
	matches  map[MatchID]*OnlineMatch   // matchID -> match
	finished map[MatchID]*finishedMatch // ended matches open for rematch

	// Track which session is in which lobby/match
	sessionLobby map[SessionID]string  // sessionID -> lobby code
	sessionMatch map[SessionID]MatchID // sessionID -> matchID

	// Message channel for async processing
	msgChan  chan CoordinatorMessage
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewCoordinator creates a new coordinator.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory, sessions *SessionRegistry) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		config:       cfg,
		gameFactory:  factory,
		sessions:     sessions,
		logger:       log.New(io.Discard),
		lobbies:      make(map[string]*Lobby),
		matches:      make(map[MatchID]*OnlineMatch),
		finished:     make(map[MatchID]*finishedMatch),
		sessionLobby: make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
		msgChan:      make(chan CoordinatorMessage, 256),
		ctx:          ctx,
		cancel:       cancel,
	}
	return c
}

// SetResultSaver sets the optional match result saver.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.resultSaver = saver
}

// SetLogger sets the logger used for lobby and match events.
func (c *Coordinator) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger.WithPrefix("coordinator")
	}
}

// Start begins the coordinator's background processing.
func (c *Coordinator) Start() {
	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		c.processMessages()
	}()
	go func() {
		defer c.wg.Done()
		c.cleanupLoop()
	}()
}

// Stop shuts down the coordinator and every running match.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		c.cancel()
		c.wg.Wait()

		c.mu.Lock()
		matches := make([]*OnlineMatch, 0, len(c.matches))
		for _, m := range c.matches {
			matches = append(matches, m)
		}
		c.mu.Unlock()

		for _, m := range matches {
			m.Stop()
		}
	})
}

// Send sends a message to the coordinator for async processing.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgChan <- msg:
	case <-c.ctx.Done():
	}
}

// processMessages handles incoming messages.
func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.handleCreateLobby(m)
	case JoinLobbyMsg:
		c.handleJoinLobby(m)
	case CancelLobbyMsg:
		c.handleCancelLobby(m)
	case LeaveLobbyMsg:
		c.handleLeaveLobby(m)
	case LeaveMatchMsg:
		c.handleLeaveMatch(m)
	case PlayerInputMsg:
		c.handlePlayerInput(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	case ReadyForRematchMsg:
		c.handleRematch(m)
	}
}

func (c *Coordinator) handleCreateLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	if _, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}
	if _, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a match"})
		return
	}

	code := c.generateUniqueCode()

	lobby := &Lobby{
		Code:      code,
		GameID:    msg.GameID,
		Host:      session,
		CreatedAt: time.Now(),
	}

	c.lobbies[code] = lobby
	c.sessionLobby[msg.SessionID] = code
	c.mu.Unlock()

	c.logger.Info("lobby created", "code", code, "game", msg.GameID, "host", msg.SessionID.Short())
	session.Send(LobbyCreatedEvent{Code: code, GameID: msg.GameID})
}

func (c *Coordinator) handleJoinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	lobby, exists := c.lobbies[code]
	if !exists {
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
		return
	}

	if lobby.Joiner != nil {
		session.Send(LobbyErrorEvent{Message: "Lobby is full"})
		return
	}

	if lobby.Host.ID() == msg.SessionID {
		session.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
		return
	}

	lobby.Joiner = session
	c.sessionLobby[msg.SessionID] = code

	lobby.Host.Send(LobbyJoinedEvent{
		Code:       code,
		Side:       Player1,
		OpponentID: msg.SessionID,
	})
	session.Send(LobbyJoinedEvent{
		Code:       code,
		Side:       Player2,
		OpponentID: lobby.Host.ID(),
	})

	c.startMatch(lobby.Code, lobby.GameID, lobby.Host, lobby.Joiner)
	delete(c.lobbies, lobby.Code)
}

// startMatch must be called with c.mu held.
func (c *Coordinator) startMatch(code, gameID string, host, joiner SessionHandle) {
	matchID := NewMatchID()

	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: c.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	game, err := c.gameFactory(gameID, cfg)
	if err != nil {
		c.logger.Error("cannot create game", "game", gameID, "err", err)
		host.Send(LobbyErrorEvent{Message: "Failed to create game"})
		joiner.Send(LobbyErrorEvent{Message: "Failed to create game"})
		delete(c.sessionLobby, host.ID())
		delete(c.sessionLobby, joiner.ID())
		return
	}

	match := NewOnlineMatch(matchID, code, gameID, game, host, joiner, c.config.TickRate)

	c.matches[matchID] = match
	delete(c.sessionLobby, host.ID())
	delete(c.sessionLobby, joiner.ID())
	c.sessionMatch[host.ID()] = matchID
	c.sessionMatch[joiner.ID()] = matchID

	host.Send(MatchStartedEvent{MatchID: matchID, Side: Player1, Code: code})
	joiner.Send(MatchStartedEvent{MatchID: matchID, Side: Player2, Code: code})

	c.logger.Info("match started", "match", matchID, "game", gameID, "code", code)

	go func() {
		if err := match.Run(c.ctx, func(result MatchResult) {
			c.handleMatchEnded(matchID, result)
		}); err != nil {
			c.logger.Error("match loop failed", "match", matchID, "err", err)
		}
	}()
}

func (c *Coordinator) handleMatchEnded(matchID MatchID, result MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, exists := c.matches[matchID]
	if !exists {
		return
	}
	p1, p2 := match.Sessions()

	if c.resultSaver != nil {
		winnerSession := ""
		switch result.Winner {
		case Player1:
			winnerSession = string(p1.ID())
		case Player2:
			winnerSession = string(p2.ID())
		}

		tickRate := max(1, c.config.TickRate)
		resultData := MatchResultData{
			MatchID:        string(matchID),
			GameID:         match.GameID(),
			Player1Session: string(p1.ID()),
			Player2Session: string(p2.ID()),
			Score1:         result.Score1,
			Score2:         result.Score2,
			WinnerSession:  winnerSession,
			EndReason:      result.Reason.Code(),
			DurationSecs:   int(result.Ticks / uint64(tickRate)), //nolint:gosec // tickRate is clamped positive
		}
		saver := c.resultSaver
		logger := c.logger
		// Best effort; a storage failure must not hold up the players.
		go func() {
			if err := saver.SaveMatchResult(resultData); err != nil {
				logger.Warn("could not save match result", "match", resultData.MatchID, "err", err)
			}
		}()
	}

	delete(c.sessionMatch, p1.ID())
	delete(c.sessionMatch, p2.ID())
	delete(c.matches, matchID)

	if result.Reason == MatchEndReasonCompleted {
		c.finished[matchID] = &finishedMatch{
			code:    match.Code(),
			gameID:  match.GameID(),
			player1: p1,
			player2: p2,
			ready:   make(map[SessionID]bool),
			endedAt: time.Now(),
		}
	}

	c.logger.Info("match ended", "match", matchID, "reason", result.Reason, "winner", int(result.Winner))

	endEvent := MatchEndedEvent{
		MatchID: matchID,
		Reason:  result.Reason,
		Winner:  result.Winner,
		Score1:  result.Score1,
		Score2:  result.Score2,
	}
	p1.Send(endEvent)
	p2.Send(endEvent)
}

func (c *Coordinator) handleRematch(msg ReadyForRematchMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fm, ok := c.finished[msg.MatchID]
	if !ok {
		if s, found := c.sessions.Get(msg.SessionID); found {
			s.Send(LobbyErrorEvent{Message: "Rematch no longer available"})
		}
		return
	}

	var other SessionHandle
	switch msg.SessionID {
	case fm.player1.ID():
		other = fm.player2
	case fm.player2.ID():
		other = fm.player1
	default:
		return
	}

	fm.ready[msg.SessionID] = true
	if !fm.ready[other.ID()] {
		other.Send(RematchRequestedEvent{MatchID: msg.MatchID})
		return
	}

	delete(c.finished, msg.MatchID)
	// Sides swap so the other player moves first.
	c.startMatch(fm.code, fm.gameID, fm.player2, fm.player1)
}

func (c *Coordinator) handleCancelLobby(msg CancelLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, exists := c.lobbies[msg.Code]
	if !exists {
		return
	}

	// Only host can cancel
	if lobby.Host.ID() != msg.SessionID {
		return
	}

	if lobby.Joiner != nil {
		lobby.Joiner.Send(MatchEndedEvent{
			Reason: MatchEndReasonHostLeft,
		})
		delete(c.sessionLobby, lobby.Joiner.ID())
	}

	delete(c.lobbies, msg.Code)
	delete(c.sessionLobby, msg.SessionID)
	c.logger.Debug("lobby cancelled", "code", msg.Code)
}

func (c *Coordinator) handleLeaveLobby(msg LeaveLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, exists := c.lobbies[msg.Code]
	if !exists {
		return
	}

	if lobby.Joiner != nil && lobby.Joiner.ID() == msg.SessionID {
		lobby.Joiner = nil
		delete(c.sessionLobby, msg.SessionID)
		lobby.Host.Send(LobbyPlayerLeftEvent{Code: msg.Code})
		return
	}

	// Host leaving closes the lobby
	if lobby.Host.ID() == msg.SessionID {
		if lobby.Joiner != nil {
			lobby.Joiner.Send(MatchEndedEvent{Reason: MatchEndReasonHostLeft})
			delete(c.sessionLobby, lobby.Joiner.ID())
		}
		delete(c.lobbies, msg.Code)
		delete(c.sessionLobby, msg.SessionID)
	}
}

func (c *Coordinator) handleLeaveMatch(msg LeaveMatchMsg) {
	c.mu.Lock()
	match, exists := c.matches[msg.MatchID]
	c.dropFinishedLocked(msg.SessionID)
	c.mu.Unlock()

	if !exists {
		return
	}

	match.PlayerDisconnected(msg.SessionID)
}

func (c *Coordinator) handlePlayerInput(msg PlayerInputMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if !exists {
		return
	}

	match.SendInput(msg.Player, msg.Input)
}

func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		if lobby, exists := c.lobbies[code]; exists {
			if lobby.Host.ID() == msg.SessionID {
				if lobby.Joiner != nil {
					lobby.Joiner.Send(MatchEndedEvent{Reason: MatchEndReasonHostLeft})
					delete(c.sessionLobby, lobby.Joiner.ID())
				}
				delete(c.lobbies, code)
			} else if lobby.Joiner != nil && lobby.Joiner.ID() == msg.SessionID {
				lobby.Joiner = nil
				lobby.Host.Send(LobbyPlayerLeftEvent{Code: code})
			}
		}
		delete(c.sessionLobby, msg.SessionID)
	}

	if matchID, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		if match, exists := c.matches[matchID]; exists {
			match.PlayerDisconnected(msg.SessionID)
		}
	}

	c.dropFinishedLocked(msg.SessionID)
}

// dropFinishedLocked forgets rematch offers involving a departed session.
func (c *Coordinator) dropFinishedLocked(id SessionID) {
	for mid, fm := range c.finished {
		if fm.player1.ID() == id || fm.player2.ID() == id {
			other := fm.player1
			if other.ID() == id {
				other = fm.player2
			}
			if fm.ready[other.ID()] {
				other.Send(LobbyErrorEvent{Message: "Opponent left"})
			}
			delete(c.finished, mid)
		}
	}
}

func (c *Coordinator) cleanupLoop() {
	period := c.config.CleanupPeriod
	if period <= 0 {
		period = 30 * time.Second
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpired(time.Now())
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Coordinator) cleanupExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, lobby := range c.lobbies {
		// Only expire lobbies without joiners
		if lobby.Joiner == nil && now.Sub(lobby.CreatedAt) > c.config.LobbyTimeout {
			lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			delete(c.sessionLobby, lobby.Host.ID())
			delete(c.lobbies, code)
			c.logger.Debug("lobby expired", "code", code)
		}
	}

	for mid, fm := range c.finished {
		if now.Sub(fm.endedAt) > c.config.RematchTimeout {
			delete(c.finished, mid)
		}
	}
}

func (c *Coordinator) generateUniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// generateJoinCode creates a 6-character uppercase alphanumeric code.
func generateJoinCode() string {
	b := make([]byte, 4) // 4 bytes = 32 bits, base32 encodes to 8 chars, we take 6
	_, err := rand.Read(b)
	if err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	// Use base32 encoding (A-Z, 2-7), take first 6 chars
	return base32.StdEncoding.EncodeToString(b)[:6]
}

// GetLobby returns a lobby by code (for testing/debug).
func (c *Coordinator) GetLobby(code string) (*Lobby, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.lobbies[strings.ToUpper(code)]
	return l, ok
}

// GetMatch returns a match by ID (for testing/debug).
func (c *Coordinator) GetMatch(id MatchID) (*OnlineMatch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.matches[id]
	return m, ok
}

// LobbyCount returns the number of active lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of active matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
