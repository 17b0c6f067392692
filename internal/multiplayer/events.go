package multiplayer

import "github.com/vovakirdan/minigame-arcade/internal/core"

// SessionEvent flows from the coordinator or a running match to one
// player's session. Events are delivered in order, except that a newer
// SnapshotEvent for a match supersedes one still waiting to be read.
type SessionEvent interface {
	sessionEvent()
}

// Lobby lifecycle.

type (
	// LobbyCreatedEvent hands the host the code to share.
	LobbyCreatedEvent struct {
		Code   string
		GameID string
	}

	// LobbyErrorEvent reports a rejected create or join.
	LobbyErrorEvent struct {
		Message string
	}

	// LobbyJoinedEvent goes to both seats once the lobby is full. Side is
	// the seat of the receiving session.
	LobbyJoinedEvent struct {
		Code       string
		Side       PlayerID
		OpponentID SessionID
	}

	// LobbyPlayerLeftEvent tells the remaining player the lobby closed.
	LobbyPlayerLeftEvent struct {
		Code string
	}
)

func (LobbyCreatedEvent) sessionEvent()    {}
func (LobbyErrorEvent) sessionEvent()      {}
func (LobbyJoinedEvent) sessionEvent()     {}
func (LobbyPlayerLeftEvent) sessionEvent() {}

// Match lifecycle.

type (
	// MatchStartedEvent switches the receiving session into play. Code is
	// the lobby code, kept for the status line.
	MatchStartedEvent struct {
		MatchID MatchID
		Side    PlayerID
		Code    string
	}

	// MatchEndedEvent carries the final result. Winner is zero for a draw
	// or when nobody could be credited.
	MatchEndedEvent struct {
		MatchID MatchID
		Reason  MatchEndReason
		Winner  PlayerID
		Score1  int
		Score2  int
	}

	// RematchRequestedEvent tells a player the opponent pressed rematch.
	RematchRequestedEvent struct {
		MatchID MatchID
	}

	// SnapshotEvent is the board state after Tick. Only the newest
	// snapshot of a match matters to a reader.
	SnapshotEvent struct {
		MatchID  MatchID
		Tick     uint64
		Snapshot GameSnapshot
	}
)

func (MatchStartedEvent) sessionEvent()     {}
func (MatchEndedEvent) sessionEvent()       {}
func (RematchRequestedEvent) sessionEvent() {}
func (SnapshotEvent) sessionEvent()         {}

// GameSnapshot is the game-specific payload of a SnapshotEvent.
type GameSnapshot interface {
	IsGameSnapshot()
}

// supersedes reports whether evt makes the queued event old redundant.
func supersedes(evt, old SessionEvent) bool {
	next, ok := evt.(SnapshotEvent)
	if !ok {
		return false
	}
	prev, ok := old.(SnapshotEvent)
	return ok && prev.MatchID == next.MatchID && prev.Tick <= next.Tick
}

// MatchEndReason says why a match stopped.
type MatchEndReason int

const (
	MatchEndReasonCompleted MatchEndReason = iota
	MatchEndReasonDisconnect
	MatchEndReasonCancelled
	MatchEndReasonHostLeft
	MatchEndReasonJoinerLeft
)

var endReasonNames = [...]struct{ label, code string }{
	MatchEndReasonCompleted:  {"Match completed", "completed"},
	MatchEndReasonDisconnect: {"Opponent disconnected", "disconnect"},
	MatchEndReasonCancelled:  {"Match cancelled", "cancelled"},
	MatchEndReasonHostLeft:   {"Host left", "host_left"},
	MatchEndReasonJoinerLeft: {"Opponent left", "joiner_left"},
}

func (r MatchEndReason) known() bool {
	return r >= 0 && int(r) < len(endReasonNames)
}

// String is the text shown to players.
func (r MatchEndReason) String() string {
	if !r.known() {
		return "Unknown"
	}
	return endReasonNames[r].label
}

// Code is the short form stored with match results.
func (r MatchEndReason) Code() string {
	if !r.known() {
		return "unknown"
	}
	return endReasonNames[r].code
}

// CoordinatorMessage flows from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

type (
	// CreateLobbyMsg opens a lobby for GameID hosted by SessionID.
	CreateLobbyMsg struct {
		SessionID SessionID
		GameID    string
	}

	// JoinLobbyMsg takes the second seat of the lobby with Code.
	JoinLobbyMsg struct {
		SessionID SessionID
		Code      string
	}

	// CancelLobbyMsg closes a lobby the sender hosts.
	CancelLobbyMsg struct {
		SessionID SessionID
		Code      string
	}

	// LeaveLobbyMsg gives up a joined seat before the match starts.
	LeaveLobbyMsg struct {
		SessionID SessionID
		Code      string
	}

	// LeaveMatchMsg forfeits a running match.
	LeaveMatchMsg struct {
		SessionID SessionID
		MatchID   MatchID
	}

	// PlayerInputMsg is one frame of input for Player's seat. TickHint is
	// the client's own tick counter and may be zero.
	PlayerInputMsg struct {
		MatchID  MatchID
		Player   PlayerID
		TickHint uint64
		Input    core.InputFrame
	}

	// ReadyForRematchMsg asks for another game after MatchID ended. The
	// next match starts once both players have sent it.
	ReadyForRematchMsg struct {
		SessionID SessionID
		MatchID   MatchID
	}

	// SessionDisconnectedMsg is sent by the transport when a session goes away.
	SessionDisconnectedMsg struct {
		SessionID SessionID
	}
)

func (CreateLobbyMsg) coordinatorMessage()         {}
func (JoinLobbyMsg) coordinatorMessage()           {}
func (CancelLobbyMsg) coordinatorMessage()         {}
func (LeaveLobbyMsg) coordinatorMessage()          {}
func (LeaveMatchMsg) coordinatorMessage()          {}
func (PlayerInputMsg) coordinatorMessage()         {}
func (ReadyForRematchMsg) coordinatorMessage()     {}
func (SessionDisconnectedMsg) coordinatorMessage() {}
