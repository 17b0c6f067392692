package multiplayer

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

// OnlineGame is the interface that games must implement to support online multiplayer.
type OnlineGame interface {
	// Reset initializes the game state.
	Reset(cfg core.RuntimeConfig)

	// StepMulti advances the game by one tick using input from both players.
	StepMulti(input core.MultiInputFrame) core.StepResult

	// Snapshot returns the current game state for the sessions to render.
	Snapshot() GameSnapshot

	// IsGameOver returns true if the game has ended.
	IsGameOver() bool

	// Winner returns the winning player (Player1/Player2) or 0 for a draw.
	Winner() PlayerID

	// Score1 returns Player 1's score.
	Score1() int

	// Score2 returns Player 2's score.
	Score2() int
}

// MatchResult contains the outcome of a completed match.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID
	Score1  int
	Score2  int
	Ticks   uint64
}

// OnlineMatch represents an active multiplayer game session.
// The game is only touched from the scheduler goroutine; inputs and
// disconnects arrive over buffered channels drained at the top of each tick.
type OnlineMatch struct {
	id     MatchID
	code   string
	gameID string
	game   OnlineGame

	player1Session SessionHandle
	player2Session SessionHandle

	lastInput1 core.InputFrame
	lastInput2 core.InputFrame
	inputChan  chan playerInput

	disconnectChan chan SessionID

	sched    engine.Scheduler
	tick     uint64
	tickRate int

	cancelMu sync.Mutex
	cancel   context.CancelFunc
	stopped  bool
	done     chan struct{}
}

type playerInput struct {
	player PlayerID
	input  core.InputFrame
}

// NewOnlineMatch creates a new online match.
func NewOnlineMatch(
	id MatchID,
	code string,
	gameID string,
	game OnlineGame,
	p1Session, p2Session SessionHandle,
	tickRate int,
) *OnlineMatch {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &OnlineMatch{
		id:             id,
		code:           code,
		gameID:         gameID,
		game:           game,
		player1Session: p1Session,
		player2Session: p2Session,
		lastInput1:     core.NewInputFrame(),
		lastInput2:     core.NewInputFrame(),
		inputChan:      make(chan playerInput, 64),
		disconnectChan: make(chan SessionID, 2),
		tickRate:       tickRate,
		done:           make(chan struct{}),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code used to create this match.
func (m *OnlineMatch) Code() string {
	return m.code
}

// GameID returns the game identifier.
func (m *OnlineMatch) GameID() string {
	return m.gameID
}

// Sessions returns both player sessions.
func (m *OnlineMatch) Sessions() (SessionHandle, SessionHandle) {
	return m.player1Session, m.player2Session
}

// Done is closed once Run has returned.
func (m *OnlineMatch) Done() <-chan struct{} {
	return m.done
}

// SendInput sends player input to the match.
// Non-blocking, uses a buffered channel.
func (m *OnlineMatch) SendInput(player PlayerID, input core.InputFrame) {
	select {
	case m.inputChan <- playerInput{player: player, input: input.Clone()}:
	default:
		// Channel full, drop input (rare under normal conditions)
	}
}

// PlayerDisconnected signals that a player has disconnected.
func (m *OnlineMatch) PlayerDisconnected(sessionID SessionID) {
	select {
	case m.disconnectChan <- sessionID:
	default:
	}
}

// Run drives the authoritative match loop until the game ends, a player
// disconnects, ctx is cancelled or Stop is called. onComplete is called
// at most once, for a finished or abandoned game.
func (m *OnlineMatch) Run(ctx context.Context, onComplete func(MatchResult)) error {
	defer close(m.done)

	ctx, cancel := context.WithCancel(ctx)
	m.cancelMu.Lock()
	m.cancel = cancel
	if m.stopped {
		cancel()
	}
	m.cancelMu.Unlock()
	defer cancel()

	var once sync.Once
	finish := func(r MatchResult) {
		once.Do(func() {
			if onComplete != nil {
				onComplete(r)
			}
			cancel()
		})
	}

	interval := time.Second / time.Duration(m.tickRate)
	err := m.sched.Start(ctx, interval, func(int) {
		if ctx.Err() != nil {
			return
		}
		if r, over := m.runTick(); over {
			finish(r)
		}
	})
	if err != nil {
		return err
	}

	go m.monitorSessions(ctx)

	<-ctx.Done()
	m.sched.Stop()
	return nil
}

// runTick handles one tick. Reports true when the match is over.
func (m *OnlineMatch) runTick() (MatchResult, bool) {
	select {
	case sessionID := <-m.disconnectChan:
		return m.handleDisconnect(sessionID), true
	default:
	}

	m.drainInputs()

	multiInput := core.NewMultiInputFrame()
	multiInput.SetPlayer(Player1, m.lastInput1.Clone())
	multiInput.SetPlayer(Player2, m.lastInput2.Clone())
	// Inputs are consumed by this tick
	m.lastInput1.Clear()
	m.lastInput2.Clear()

	m.game.StepMulti(multiInput)
	m.tick++

	snapshotEvent := SnapshotEvent{
		MatchID:  m.id,
		Tick:     m.tick,
		Snapshot: m.game.Snapshot(),
	}
	m.player1Session.Send(snapshotEvent)
	m.player2Session.Send(snapshotEvent)

	if m.game.IsGameOver() {
		return MatchResult{
			MatchID: m.id,
			Reason:  MatchEndReasonCompleted,
			Winner:  m.game.Winner(),
			Score1:  m.game.Score1(),
			Score2:  m.game.Score2(),
			Ticks:   m.tick,
		}, true
	}

	return MatchResult{}, false
}

func (m *OnlineMatch) drainInputs() {
	for {
		select {
		case pi := <-m.inputChan:
			if pi.player == Player1 {
				m.lastInput1.Merge(pi.input)
			} else {
				m.lastInput2.Merge(pi.input)
			}
		default:
			return
		}
	}
}

func (m *OnlineMatch) handleDisconnect(sessionID SessionID) MatchResult {
	winner := Player1
	if sessionID == m.player1Session.ID() {
		winner = Player2
	}

	return MatchResult{
		MatchID: m.id,
		Reason:  MatchEndReasonDisconnect,
		Winner:  winner,
		Score1:  m.game.Score1(),
		Score2:  m.game.Score2(),
		Ticks:   m.tick,
	}
}

func (m *OnlineMatch) monitorSessions(ctx context.Context) {
	select {
	case <-m.player1Session.Done():
		m.PlayerDisconnected(m.player1Session.ID())
	case <-m.player2Session.Done():
		m.PlayerDisconnected(m.player2Session.ID())
	case <-ctx.Done():
	}
}

// Stop ends the match loop without reporting a result.
func (m *OnlineMatch) Stop() {
	m.cancelMu.Lock()
	defer m.cancelMu.Unlock()
	m.stopped = true
	if m.cancel != nil {
		m.cancel()
	}
}
