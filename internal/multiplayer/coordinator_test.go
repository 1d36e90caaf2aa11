package multiplayer

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/ringpong/internal/core"
)

func fastConfig() CoordinatorConfig {
	cfg := DefaultCoordinatorConfig()
	cfg.FrameRate = 120
	cfg.Seed = 7
	return cfg
}

func TestGenerateJoinCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := generateJoinCode()
		if len(code) != 6 {
			t.Fatalf("generateJoinCode() = %q, expected 6 characters", code)
		}
		if strings.Trim(code, "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567") != "" {
			t.Fatalf("generateJoinCode() = %q, expected base32 alphabet", code)
		}
		seen[code] = true
	}
	if len(seen) < 45 {
		t.Errorf("only %d distinct codes out of 50", len(seen))
	}
}

func TestCoordinatorCreateLobby(t *testing.T) {
	srv := newTestServer(t, fastConfig())
	host := srv.connect("host", 16)

	srv.coord.Send(CreateLobbyMsg{SessionID: host.ID()})
	created := waitFor[LobbyCreatedEvent](t, host)

	if srv.coord.LobbyCount() != 1 {
		t.Errorf("LobbyCount() = %d, expected 1", srv.coord.LobbyCount())
	}
	lobby, ok := srv.coord.GetLobby(strings.ToLower(created.Code))
	if !ok {
		t.Fatalf("GetLobby(%q) not found", created.Code)
	}
	if lobby.Host.ID() != host.ID() || lobby.Joiner != nil {
		t.Errorf("lobby = %+v, expected host only", lobby)
	}

	// A second lobby from the same session is refused
	srv.coord.Send(CreateLobbyMsg{SessionID: host.ID()})
	if e := waitFor[LobbyErrorEvent](t, host); e.Message != "Already in a lobby" {
		t.Errorf("error = %q, expected Already in a lobby", e.Message)
	}
}

func TestCoordinatorJoinErrors(t *testing.T) {
	srv := newTestServer(t, fastConfig())
	host := srv.connect("host", 16)
	other := srv.connect("other", 16)

	srv.coord.Send(JoinLobbyMsg{SessionID: other.ID(), Code: "NOPE42"})
	if e := waitFor[LobbyErrorEvent](t, other); e.Message != "Lobby not found" {
		t.Errorf("error = %q, expected Lobby not found", e.Message)
	}

	srv.coord.Send(CreateLobbyMsg{SessionID: host.ID()})
	created := waitFor[LobbyCreatedEvent](t, host)

	// Host is already in its own lobby
	srv.coord.Send(JoinLobbyMsg{SessionID: host.ID(), Code: created.Code})
	if e := waitFor[LobbyErrorEvent](t, host); e.Message != "Already in a lobby" {
		t.Errorf("error = %q, expected Already in a lobby", e.Message)
	}
}

func TestCoordinatorCancelLobby(t *testing.T) {
	srv := newTestServer(t, fastConfig())
	host := srv.connect("host", 16)

	srv.coord.Send(CreateLobbyMsg{SessionID: host.ID()})
	created := waitFor[LobbyCreatedEvent](t, host)

	srv.coord.Send(CancelLobbyMsg{SessionID: host.ID(), Code: strings.ToLower(created.Code)})
	waitUntil(t, "lobby is cancelled", func() bool { return srv.coord.LobbyCount() == 0 })

	// The host is free to create again
	srv.coord.Send(CreateLobbyMsg{SessionID: host.ID()})
	waitFor[LobbyCreatedEvent](t, host)
}

func TestCoordinatorMatchTurnAndLeave(t *testing.T) {
	srv := newTestServer(t, fastConfig())
	host := srv.connect("host", 256)
	joiner := srv.connect("joiner", 256)

	matchID := srv.pair(t, host, joiner)
	if srv.coord.MatchCount() != 1 || srv.coord.LobbyCount() != 0 {
		t.Errorf("counts = %d matches, %d lobbies, expected 1, 0", srv.coord.MatchCount(), srv.coord.LobbyCount())
	}
	match, ok := srv.coord.GetMatch(matchID)
	if !ok {
		t.Fatalf("GetMatch(%s) not found", matchID)
	}
	sides := []struct {
		session SessionID
		want    PlayerID
		ok      bool
	}{
		{host.ID(), Player1, true},
		{joiner.ID(), Player2, true},
		{"stranger", 0, false},
	}
	for _, tt := range sides {
		if got, ok := match.SideOf(tt.session); got != tt.want || ok != tt.ok {
			t.Errorf("SideOf(%s) = %v, %v, expected %v, %v", tt.session, got, ok, tt.want, tt.ok)
		}
	}

	first := waitFor[SnapshotEvent](t, joiner)
	if first.MatchID != matchID {
		t.Errorf("snapshot match = %s, expected %s", first.MatchID, matchID)
	}
	start := first.Snapshot.Paddle2Angle

	// A stranger cannot steer either paddle.
	srv.coord.Send(TurnMsg{SessionID: "stranger", MatchID: matchID, Steps: 9})
	srv.coord.Send(TurnMsg{SessionID: joiner.ID(), MatchID: matchID, Steps: 5})

	deadline := time.After(eventTimeout)
	for moved := false; !moved; {
		select {
		case evt := <-joiner.Events():
			if snap, ok := evt.(SnapshotEvent); ok && snap.Snapshot.Paddle2Angle != start {
				moved = true
				if snap.Snapshot.Paddle1Angle != first.Snapshot.Paddle1Angle {
					t.Error("turning Player2 should not move Player1's paddle")
				}
			}
		case <-deadline:
			t.Fatal("paddle 2 never moved")
		}
	}

	srv.coord.Send(LeaveMatchMsg{SessionID: joiner.ID(), MatchID: matchID})

	ended := waitFor[MatchEndedEvent](t, host)
	if ended.Reason != MatchEndReasonDisconnect {
		t.Errorf("Reason = %v, expected %v", ended.Reason, MatchEndReasonDisconnect)
	}
	if ended.Winner != Player1 {
		t.Errorf("Winner = %v, expected Player1", ended.Winner)
	}
	waitUntil(t, "match is removed", func() bool { return srv.coord.MatchCount() == 0 })
}

func TestCoordinatorHostDisconnectForfeits(t *testing.T) {
	srv := newTestServer(t, fastConfig())
	host := srv.connect("host", 256)
	joiner := srv.connect("joiner", 256)

	srv.pair(t, host, joiner)

	host.Close()

	ended := waitFor[MatchEndedEvent](t, joiner)
	if ended.Reason != MatchEndReasonDisconnect || ended.Winner != Player2 {
		t.Errorf("MatchEndedEvent = %+v, expected disconnect won by Player2", ended)
	}
}

func TestCoordinatorCompletedMatchIsSaved(t *testing.T) {
	cfg := fastConfig()
	cfg.Game.Gameplay.WinScore = 1
	cfg.Clock = core.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	srv := newTestServer(t, cfg)
	saver := newRecordingSaver()
	srv.coord.SetResultSaver(saver)

	host := srv.connect("host", 4096)
	joiner := srv.connect("joiner", 4096)

	srv.coord.Send(CreateLobbyMsg{SessionID: host.ID()})
	created := waitFor[LobbyCreatedEvent](t, host)
	srv.coord.Send(JoinLobbyMsg{SessionID: joiner.ID(), Code: created.Code})

	ended := waitFor[MatchEndedEvent](t, host)
	if ended.Reason != MatchEndReasonCompleted {
		t.Fatalf("Reason = %v, expected %v", ended.Reason, MatchEndReasonCompleted)
	}

	var winnerScore, loserScore int
	var winnerSession string
	switch ended.Winner {
	case Player1:
		winnerScore, loserScore, winnerSession = ended.Score1, ended.Score2, "host"
	case Player2:
		winnerScore, loserScore, winnerSession = ended.Score2, ended.Score1, "joiner"
	default:
		t.Fatalf("Winner = %v, expected a player", ended.Winner)
	}
	if winnerScore != 1 || loserScore != 0 {
		t.Errorf("scores = %d:%d, expected 1:0 for the winner", winnerScore, loserScore)
	}

	select {
	case data := <-saver.results:
		if data.MatchID != string(ended.MatchID) {
			t.Errorf("saved MatchID = %q, expected %q", data.MatchID, ended.MatchID)
		}
		if data.WinnerSession != winnerSession {
			t.Errorf("saved WinnerSession = %q, expected %q", data.WinnerSession, winnerSession)
		}
		if data.EndReason != MatchEndReasonCompleted.String() {
			t.Errorf("saved EndReason = %q", data.EndReason)
		}
		if data.Player1Session != "host" || data.Player2Session != "joiner" {
			t.Errorf("saved sessions = %q, %q", data.Player1Session, data.Player2Session)
		}
	case <-time.After(eventTimeout):
		t.Fatal("match result was not saved")
	}
}

func TestCoordinatorCleanupExpiredLobbies(t *testing.T) {
	cfg := fastConfig()
	cfg.LobbyTimeout = time.Nanosecond
	cfg.CleanupPeriod = 10 * time.Millisecond

	srv := newTestServer(t, cfg)
	host := srv.connect("host", 16)

	srv.coord.Send(CreateLobbyMsg{SessionID: host.ID()})
	waitFor[LobbyCreatedEvent](t, host)

	if e := waitFor[LobbyErrorEvent](t, host); e.Message != "Lobby expired" {
		t.Errorf("error = %q, expected Lobby expired", e.Message)
	}
	if srv.coord.LobbyCount() != 0 {
		t.Errorf("LobbyCount() = %d, expected 0", srv.coord.LobbyCount())
	}
}

func TestCoordinatorLobbyDisconnect(t *testing.T) {
	srv := newTestServer(t, fastConfig())
	host := srv.connect("host", 16)

	srv.coord.Send(CreateLobbyMsg{SessionID: host.ID()})
	waitFor[LobbyCreatedEvent](t, host)

	srv.coord.Send(SessionDisconnectedMsg{SessionID: host.ID()})
	waitUntil(t, "lobby is removed", func() bool { return srv.coord.LobbyCount() == 0 })
}
