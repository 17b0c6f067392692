package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up / cursor up
	ActionDown           // S, Down arrow - move down / cursor down
	ActionLeft           // A, Left arrow - move left / cursor left
	ActionRight          // D, Right arrow - move right / cursor right
	ActionJump           // Space - primary action (jump, flap, fire, flip)
	ActionDuck           // secondary action (duck, dive)
	ActionConfirm        // Enter - confirm selection, reveal, submit
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionFlag           // F - mark a cell (minesweeper)
	ActionHint           // H - ask for a hint / auto-solve
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionDuck:
		return "Duck"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionFlag:
		return "Flag"
	case ActionHint:
		return "Hint"
	default:
		return "Unknown"
	}
}

// PlayerID identifies a player slot within a match.
// Player1 is always the local human player, Player2 can be CPU or remote.
type PlayerID int

const (
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Click is a pointer press in screen cell coordinates.
type Click struct {
	X, Y      int
	Secondary bool // Right button
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Runes holds characters typed this frame, for text-entry games.
	Runes []rune

	// Click is set when a pointer press happened this frame.
	Click *Click
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Type appends a typed character to this frame.
func (f *InputFrame) Type(r rune) {
	f.Runes = append(f.Runes, r)
}

// Press records a pointer press.
func (f *InputFrame) Press(x, y int, secondary bool) {
	f.Click = &Click{X: x, Y: y, Secondary: secondary}
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return len(f.Runes) == 0 && f.Click == nil
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Runes = f.Runes[:0]
	f.Click = nil
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Runes) > 0 {
		clone.Runes = append([]rune(nil), f.Runes...)
	}
	if f.Click != nil {
		c := *f.Click
		clone.Click = &c
	}
	return clone
}

// Merge ORs the actions of other into f and appends its runes.
func (f *InputFrame) Merge(other InputFrame) {
	for a, pressed := range other.Actions {
		if pressed {
			f.Set(a)
		}
	}
	f.Runes = append(f.Runes, other.Runes...)
	if other.Click != nil {
		c := *other.Click
		f.Click = &c
	}
}

// MultiInputFrame contains input from all players for a single tick.
// Platform builds this from keyboard input (Player1) and the network (Player2).
type MultiInputFrame struct {
	ByPlayer map[PlayerID]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		ByPlayer: make(map[PlayerID]InputFrame),
	}
}

// Player returns the input frame for a specific player.
// Returns an empty frame if player has no input.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if m.ByPlayer == nil {
		return NewInputFrame()
	}
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// SetPlayer sets the input frame for a specific player.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	m.ByPlayer[id] = frame
}

// Player1 returns the input frame for Player 1 (convenience method).
func (m MultiInputFrame) Player1() InputFrame {
	return m.Player(Player1)
}

// Player2 returns the input frame for Player 2 (convenience method).
func (m MultiInputFrame) Player2() InputFrame {
	return m.Player(Player2)
}

// Clear resets all player inputs for the next frame.
func (m *MultiInputFrame) Clear() {
	for id := range m.ByPlayer {
		frame := m.ByPlayer[id]
		frame.Clear()
		m.ByPlayer[id] = frame
	}
}
