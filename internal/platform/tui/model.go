package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
	"github.com/vovakirdan/ringpong/internal/games/ringpong"
	"github.com/vovakirdan/ringpong/internal/storage"
)

// helpRows is the number of rows under the arena used by the help footer.
const helpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// RallySaver persists finished rallies. *storage.Store implements it.
type RallySaver interface {
	SaveRally(mode string, length int) (int64, error)
}

// GameOptions configures a hot-seat game.
type GameOptions struct {
	Config  config.RingPongConfig
	Runtime core.RuntimeConfig
	Store   RallySaver         // Optional
	Cues    ringpong.CuePlayer // Optional; nil is silent
	Logger  *log.Logger        // Optional
	Clock   core.Clock         // Optional; nil is the system clock
}

// GameModel is the Bubble Tea model for a local two-player match.
type GameModel struct {
	game    *ringpong.Game
	enc1    *core.Encoder
	enc2    *core.Encoder
	screen  *core.Screen
	store   RallySaver
	runtime core.RuntimeConfig
	keys    GameKeyMap
	help    help.Model
	logger  *log.Logger

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a hot-seat game model.
func NewGameModel(opts GameOptions) GameModel {
	runtime := opts.Runtime
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	enc1, enc2 := core.NewEncoder(), core.NewEncoder()
	game := ringpong.New(opts.Config, runtime, ringpong.Deps{
		Input1: enc1,
		Input2: enc2,
		Cues:   opts.Cues,
		Clock:  opts.Clock,
		Logger: logger,
	})

	h := help.New()
	h.Width = runtime.ScreenW

	return GameModel{
		game:    game,
		enc1:    enc1,
		enc2:    enc2,
		screen:  core.NewScreen(runtime.ScreenW, runtime.ScreenH-helpRows),
		store:   opts.Store,
		runtime: runtime,
		keys:    DefaultGameKeyMap(),
		help:    h,
		logger:  logger,
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.frameRate())
}

func (m GameModel) frameRate() int {
	if m.runtime.FrameRate > 0 {
		return m.runtime.FrameRate
	}
	return m.game.Config().Loop.FrameRate
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-helpRows)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	player, action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		return m, nil
	case core.ActionPause:
		m.game.TogglePause()
	case core.ActionRestart:
		m.game.Restart()
		m.logger.Info("match restarted")
	case core.ActionTurnCCW, core.ActionTurnCW:
		m.encoder(player).Turn(action.Detents())
	}
	return m, nil
}

func (m GameModel) encoder(player core.PlayerID) *core.Encoder {
	if player == core.Player2 {
		return m.enc2
	}
	return m.enc1
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	res := m.game.Step()
	if res.Missed && res.FinishedRally > 0 && m.store != nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveRally(storage.ModeHotSeat, res.FinishedRally)
	}

	return m, tickCmd(m.frameRate())
}

// saveScreenshot writes the current frame as plain text under ~/.ringpong/screenshots.
func (m *GameModel) saveScreenshot() {
	ringpong.Render(m.screen, m.game.Frame())

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".ringpong", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	path := filepath.Join(dir, fmt.Sprintf("ringpong_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	ringpong.Render(m.screen, m.game.Frame())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Game returns the underlying game.
func (m GameModel) Game() *ringpong.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame starts a hot-seat game in its own Bubble Tea program.
// It reports whether the player asked to go back to the menu.
func RunGame(opts GameOptions) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewGameModel(opts),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
