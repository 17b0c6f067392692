// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen ties the tick to one run of a game: a restart moves the model to a
// new generation and ticks from the previous run are dropped, so only one
// tick chain is ever live.
type TickMsg struct {
	Gen int
	At  time.Time
}

var generations atomic.Int64

// nextGeneration returns a tick generation no other model has used.
func nextGeneration() int {
	return int(generations.Add(1))
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
