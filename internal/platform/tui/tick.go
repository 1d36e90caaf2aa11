// Package tui runs ringpong in a terminal with Bubble Tea: the local hot-seat
// game, the menu and scoreboard, and SSH sessions with online matches.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 30
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
