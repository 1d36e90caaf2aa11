package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
	"github.com/vovakirdan/ringpong/internal/multiplayer"
	"github.com/vovakirdan/ringpong/internal/storage"
)

// RallyStore is the storage an SSH session needs. *storage.Store implements it.
type RallyStore interface {
	RallySaver
	RallySource
}

// sessionView is the screen a session is currently on.
type sessionView int

const (
	viewMenu sessionView = iota
	viewHotSeat
	viewLobby
	viewOnlineGame
	viewScores
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Session     *multiplayer.ChannelSession
	Coordinator CoordinatorSender
	Store       RallyStore // Optional
	Config      config.RingPongConfig
	Runtime     core.RuntimeConfig
	Logger      *log.Logger // Optional
}

// SessionModel is the top-level model of an SSH session:
// menu -> hot-seat, online or scoreboard -> menu.
//
// It owns the single pending read of the session's event queue and forwards
// each event to the active screen.
type SessionModel struct {
	opts    SessionOptions
	runtime core.RuntimeConfig
	view    sessionView

	menu    MenuModel
	hotSeat GameModel
	lobby   OnlineLobbyModel
	online  OnlineGameModel
	scores  ScoreboardModel

	quitting bool
}

func (o SessionOptions) online() bool {
	return o.Session != nil && o.Coordinator != nil
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	return SessionModel{
		opts:    opts,
		runtime: opts.Runtime,
		menu:    NewMenuModel(opts.Runtime, opts.online()),
	}
}

// Init starts the menu and the event pump.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.pump())
}

func (m SessionModel) pump() tea.Cmd {
	if m.opts.Session == nil {
		return nil
	}
	return waitForEvent(m.opts.Session.Events())
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	// Events are forwarded, then the pump is re-armed.
	if evt, ok := msg.(multiplayer.SessionEvent); ok {
		var cmd tea.Cmd
		switch m.view {
		case viewLobby, viewOnlineGame:
			m, cmd = m.updateActive(evt)
		}
		return m, tea.Batch(cmd, m.pump())
	}

	// A tick left over from a finished hot-seat game ends its loop here.
	if _, ok := msg.(TickMsg); ok && m.view != viewHotSeat {
		return m, nil
	}

	return m.updateActive(msg)
}

func (m SessionModel) updateActive(msg tea.Msg) (SessionModel, tea.Cmd) {
	switch m.view {
	case viewHotSeat:
		return m.updateHotSeat(msg)
	case viewLobby:
		return m.updateLobby(msg)
	case viewOnlineGame:
		return m.updateOnline(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case ChoiceHotSeat:
		var saver RallySaver
		if m.opts.Store != nil {
			saver = m.opts.Store
		}
		m.hotSeat = NewGameModel(GameOptions{
			Config:  m.opts.Config,
			Runtime: m.runtime,
			Store:   saver,
			Logger:  m.opts.Logger,
		})
		m.view = viewHotSeat
		return m, m.hotSeat.Init()

	case ChoiceOnline:
		m.lobby = NewOnlineLobbyModel(m.opts.Session.ID(), m.opts.Coordinator, m.runtime.ScreenW, m.runtime.ScreenH)
		m.view = viewLobby
		return m, m.lobby.Init()

	case ChoiceScores:
		var source RallySource
		if m.opts.Store != nil {
			source = m.opts.Store
		}
		m.scores = NewScoreboardModel(source, m.runtime.ScreenW, m.runtime.ScreenH)
		m.view = viewScores
		return m, m.scores.Init()

	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) updateHotSeat(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.hotSeat.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.hotSeat = game
	}
	if m.hotSeat.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.hotSeat.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateLobby(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.lobby.Update(msg)
	if lobby, ok := next.(OnlineLobbyModel); ok {
		m.lobby = lobby
	}
	if m.lobby.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.lobby.BackToMenu() {
		return m.toMenu()
	}
	if m.lobby.State() == OnlineStateInMatch {
		m.online = NewOnlineGameModel(
			m.opts.Config,
			m.opts.Session.ID(),
			m.lobby.MatchID(),
			m.lobby.Side(),
			m.opts.Coordinator,
			m.runtime.ScreenW,
			m.runtime.ScreenH,
		)
		m.view = viewOnlineGame
		if m.opts.Logger != nil {
			m.opts.Logger.Debug("entered match", "session", m.opts.Session.ID(), "match", m.lobby.MatchID())
		}
		return m, m.online.Init()
	}
	return m, cmd
}

func (m SessionModel) updateOnline(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.online.Update(msg)
	if online, ok := next.(OnlineGameModel); ok {
		m.online = online
	}
	if m.online.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.online.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}
	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) toMenu() (SessionModel, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.runtime, m.opts.online())
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewHotSeat:
		return m.hotSeat.View()
	case viewLobby:
		return m.lobby.View()
	case viewOnlineGame:
		return m.online.View()
	case viewScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

var _ RallyStore = (*storage.Store)(nil)
