package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ringpong/internal/storage"
)

func testRallies() []storage.RallyEntry {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []storage.RallyEntry{
		{ID: 1, Mode: storage.ModeHotSeat, Length: 12, CreatedAt: now},
		{ID: 2, Mode: storage.ModeOnline, Length: 9, CreatedAt: now},
		{ID: 3, Mode: storage.ModeHotSeat, Length: 4, CreatedAt: now},
	}
}

func TestScoreboardTabs(t *testing.T) {
	m := NewScoreboardModel(&fakeRallyStore{rallies: testRallies()}, 100, 30)
	if got := len(m.Rallies()); got != 3 {
		t.Fatalf("All tab shows %d rallies, expected 3", got)
	}

	tests := []struct {
		key  tea.KeyMsg
		want int
		mode string
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, 2, storage.ModeHotSeat},
		{keyMsg("right"), 1, storage.ModeOnline},
		{keyMsg("l"), 3, ""},
		{keyMsg("left"), 1, storage.ModeOnline},
	}

	for _, tc := range tests {
		next, _ := m.Update(tc.key)
		m = next.(ScoreboardModel)
		if got := len(m.Rallies()); got != tc.want {
			t.Errorf("after %q: %d rallies, expected %d", tc.key.String(), got, tc.want)
		}
		for _, r := range m.Rallies() {
			if tc.mode != "" && r.Mode != tc.mode {
				t.Errorf("after %q: rally mode %q, expected %q", tc.key.String(), r.Mode, tc.mode)
			}
		}
	}
}

func TestScoreboardEmptyStates(t *testing.T) {
	tests := []struct {
		name  string
		store RallySource
		want  string
	}{
		{"no storage", nil, "unavailable"},
		{"load error", &fakeRallyStore{err: errors.New("disk on fire")}, "disk on fire"},
		{"no rallies", &fakeRallyStore{}, "No rallies recorded yet"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewScoreboardModel(tc.store, 100, 30)
			if view := m.View(); !strings.Contains(view, tc.want) {
				t.Errorf("View() does not mention %q:\n%s", tc.want, view)
			}
		})
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	next, _ := m.Update(keyMsg("esc"))
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}

	next, _ = m.Update(keyMsg("q"))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}
