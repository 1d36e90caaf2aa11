package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ringpong/internal/multiplayer"
	"github.com/vovakirdan/ringpong/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type savedRally struct {
	mode   string
	length int
}

type fakeRallyStore struct {
	mu      sync.Mutex
	saved   []savedRally
	rallies []storage.RallyEntry
	err     error
}

func (f *fakeRallyStore) SaveRally(mode string, length int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, savedRally{mode, length})
	return int64(len(f.saved)), nil
}

func (f *fakeRallyStore) TopRallies(mode string, limit int) ([]storage.RallyEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []storage.RallyEntry
	for _, r := range f.rallies {
		if mode == "" || r.Mode == mode {
			out = append(out, r)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCoordinator struct {
	sent []multiplayer.CoordinatorMessage
}

func (f *fakeCoordinator) Send(msg multiplayer.CoordinatorMessage) {
	f.sent = append(f.sent, msg)
}

func (f *fakeCoordinator) last() multiplayer.CoordinatorMessage {
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}
