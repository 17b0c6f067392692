// Package multiplayer provides lobbies, sessions and authoritative online
// matches for two-player games played between SSH sessions.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is always the host / local human player, Player2 the CPU or joiner.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// NewSessionID returns a fresh random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Short returns the first eight characters, for display.
func (id SessionID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// MatchID uniquely identifies a game match.
type MatchID string

// NewMatchID returns a fresh random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines how a game match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single-player game.
	MatchModeSolo MatchMode = iota

	// MatchModeVsCPU is player vs computer (Connect Four vs CPU).
	MatchModeVsCPU

	// MatchModeOnlinePvP is player vs player between two sessions.
	MatchModeOnlinePvP
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeVsCPU:
		return "vs CPU"
	case MatchModeOnlinePvP:
		return "Online PvP"
	default:
		return "Unknown"
	}
}

// Match records which sessions take part in a local game and in what mode.
type Match struct {
	id   MatchID
	mode MatchMode

	// SessionIDs tracks which sessions are part of this match.
	// For Solo/VsCPU: one session. For OnlinePvP: two sessions.
	SessionIDs []SessionID
}

// NewMatch creates a new match with a fresh ID.
func NewMatch(mode MatchMode, sessions ...SessionID) *Match {
	return &Match{
		id:         NewMatchID(),
		mode:       mode,
		SessionIDs: sessions,
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Mode returns the match mode.
func (m *Match) Mode() MatchMode {
	return m.mode
}

// Sessions returns the session IDs participating in this match.
func (m *Match) Sessions() []SessionID {
	return m.SessionIDs
}
