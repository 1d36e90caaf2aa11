package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ringpong/internal/core"
)

// GameKeyMap holds the in-game bindings. Each paddle has its own pair of
// keys so two players can share one keyboard.
type GameKeyMap struct {
	P1CCW   key.Binding
	P1CW    key.Binding
	P2CCW   key.Binding
	P2CW    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultGameKeyMap returns the hot-seat bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		P1CCW: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "red paddle"),
		),
		P1CW: key.NewBinding(
			key.WithKeys("right"),
		),
		P2CCW: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a/d", "green paddle"),
		),
		P2CW: key.NewBinding(
			key.WithKeys("d"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// OnlineGameKeyMap returns bindings for an online match: both key pairs turn
// the local player's paddle, and pause/restart are unavailable.
func OnlineGameKeyMap() GameKeyMap {
	k := DefaultGameKeyMap()
	k.P1CCW.SetKeys("left", "a")
	k.P1CCW.SetHelp("←/→ a/d", "turn")
	k.P1CW.SetKeys("right", "d")
	k.P2CCW.SetEnabled(false)
	k.P2CW.SetEnabled(false)
	k.Pause.SetEnabled(false)
	k.Restart.SetEnabled(false)
	k.Back.SetHelp("esc", "leave")
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1CCW, k.P2CCW, k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1CCW, k.P2CCW},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// Action maps a key press to the player it belongs to and the action it
// triggers. Player is zero for actions that are not tied to a paddle.
func (k GameKeyMap) Action(msg tea.KeyMsg) (core.PlayerID, core.Action) {
	switch {
	case key.Matches(msg, k.Quit):
		return 0, core.ActionQuit
	case key.Matches(msg, k.P1CCW):
		return core.Player1, core.ActionTurnCCW
	case key.Matches(msg, k.P1CW):
		return core.Player1, core.ActionTurnCW
	case key.Matches(msg, k.P2CCW):
		return core.Player2, core.ActionTurnCCW
	case key.Matches(msg, k.P2CW):
		return core.Player2, core.ActionTurnCW
	case key.Matches(msg, k.Pause):
		return 0, core.ActionPause
	case key.Matches(msg, k.Restart):
		return 0, core.ActionRestart
	case key.Matches(msg, k.Back):
		return 0, core.ActionBack
	}
	return 0, core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
