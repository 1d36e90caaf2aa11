package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
	"github.com/vovakirdan/ringpong/internal/games/ringpong"
	"github.com/vovakirdan/ringpong/internal/multiplayer"
)

// OnlineGameModel shows an online match. The server runs the game; this model
// mirrors it from snapshots and forwards the local player's turns.
type OnlineGameModel struct {
	sessionID   multiplayer.SessionID
	matchID     multiplayer.MatchID
	side        core.PlayerID
	coordinator CoordinatorSender

	mirror *ringpong.Game
	screen *core.Screen
	keys   GameKeyMap
	help   help.Model

	synced     bool
	ended      *multiplayer.MatchEndedEvent
	width      int
	quitting   bool
	backToMenu bool
}

// NewOnlineGameModel creates the view of match matchID played as side.
func NewOnlineGameModel(
	cfg config.RingPongConfig,
	sessionID multiplayer.SessionID,
	matchID multiplayer.MatchID,
	side core.PlayerID,
	coordinator CoordinatorSender,
	width, height int,
) OnlineGameModel {
	h := help.New()
	h.Width = width

	return OnlineGameModel{
		sessionID:   sessionID,
		matchID:     matchID,
		side:        side,
		coordinator: coordinator,
		mirror:      ringpong.New(cfg, core.DefaultConfig(), ringpong.Deps{}),
		screen:      core.NewScreen(width, height-helpRows),
		keys:        OnlineGameKeyMap(),
		help:        h,
		width:       width,
	}
}

// Init initializes the model.
func (m OnlineGameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OnlineGameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.screen.Resize(msg.Width, msg.Height-helpRows)
		m.help.Width = msg.Width
		return m, nil

	case multiplayer.SnapshotEvent:
		if msg.MatchID == m.matchID && m.ended == nil {
			m.mirror.ApplySnapshot(msg.Snapshot)
			m.synced = true
		}
		return m, nil

	case multiplayer.MatchEndedEvent:
		if msg.MatchID == m.matchID || msg.MatchID == "" {
			m.ended = &msg
		}
		return m, nil
	}
	return m, nil
}

func (m OnlineGameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.leave()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.leave()
		m.backToMenu = true
		return m, nil
	case core.ActionTurnCCW, core.ActionTurnCW:
		if m.ended == nil {
			m.coordinator.Send(multiplayer.TurnMsg{
				SessionID: m.sessionID,
				MatchID:   m.matchID,
				Steps:     action.Detents(),
			})
		}
	}
	return m, nil
}

// leave forfeits a running match.
func (m OnlineGameModel) leave() {
	if m.ended != nil {
		return
	}
	m.coordinator.Send(multiplayer.LeaveMatchMsg{
		SessionID: m.sessionID,
		MatchID:   m.matchID,
	})
}

// View renders the mirrored match.
func (m OnlineGameModel) View() string {
	if m.quitting {
		return ""
	}

	ringpong.Render(m.screen, m.mirror.Frame())

	mid := m.screen.Height() / 2
	switch {
	case m.ended != nil:
		m.screen.DrawTextCentered(mid+2, m.resultText())
		m.screen.DrawTextCentered(mid+3, "esc: menu")
	case !m.synced:
		m.screen.DrawTextCentered(mid, "waiting for server...")
	}

	footer := fmt.Sprintf("you are %s  ", sideName(m.side))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer+m.help.View(m.keys))
}

// resultText describes the outcome from the local player's point of view.
func (m OnlineGameModel) resultText() string {
	e := m.ended
	score := fmt.Sprintf("%d : %d", e.Score1, e.Score2)
	switch {
	case e.Winner == m.side && e.Reason == multiplayer.MatchEndReasonDisconnect:
		return "opponent left, you win  " + score
	case e.Winner == m.side:
		return "you win  " + score
	case e.Winner != 0:
		return "you lose  " + score
	default:
		return e.Reason.String()
	}
}

func sideName(p core.PlayerID) string {
	if p == core.Player2 {
		return "GREEN"
	}
	return "RED"
}

// Ended returns the match result once the match is over.
func (m OnlineGameModel) Ended() *multiplayer.MatchEndedEvent {
	return m.ended
}

// IsQuitting returns true if user requested to quit entirely.
func (m OnlineGameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m OnlineGameModel) BackToMenu() bool {
	return m.backToMenu
}
