package engine

// Phase is the lifecycle state of a game session.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseRunning
	PhasePaused
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Lifecycle tracks start, pause, game over and restart for one game.
// The zero value is a game in PhaseReady.
type Lifecycle struct {
	phase      Phase
	won        bool
	generation int
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase { return l.phase }

// Start moves Ready to Running. Calling it while running is a no-op.
func (l *Lifecycle) Start() {
	if l.phase == PhaseReady {
		l.phase = PhaseRunning
	}
}

// Pause moves Running to Paused.
func (l *Lifecycle) Pause() {
	if l.phase == PhaseRunning {
		l.phase = PhasePaused
	}
}

// Resume moves Paused to Running.
func (l *Lifecycle) Resume() {
	if l.phase == PhasePaused {
		l.phase = PhaseRunning
	}
}

// TogglePause flips between Running and Paused and ignores other phases.
func (l *Lifecycle) TogglePause() {
	switch l.phase {
	case PhaseRunning:
		l.phase = PhasePaused
	case PhasePaused:
		l.phase = PhaseRunning
	}
}

// End finishes the game. Ending twice keeps the first outcome.
func (l *Lifecycle) End(won bool) {
	if l.phase == PhaseOver {
		return
	}
	l.phase = PhaseOver
	l.won = won
}

// Restart returns to Ready and bumps the generation so that callbacks
// scheduled by the previous run can recognise themselves as stale.
func (l *Lifecycle) Restart() int {
	l.phase = PhaseReady
	l.won = false
	l.generation++
	return l.generation
}

// Generation returns the number of restarts so far.
func (l *Lifecycle) Generation() int { return l.generation }

// Running reports whether the simulation should advance this tick.
func (l *Lifecycle) Running() bool { return l.phase == PhaseRunning }

// Paused reports whether the game is paused.
func (l *Lifecycle) Paused() bool { return l.phase == PhasePaused }

// Over reports whether the game has ended.
func (l *Lifecycle) Over() bool { return l.phase == PhaseOver }

// Won reports whether the game ended in a win.
func (l *Lifecycle) Won() bool { return l.phase == PhaseOver && l.won }
