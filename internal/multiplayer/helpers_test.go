package multiplayer

import (
	"testing"
	"time"
)

const eventTimeout = 5 * time.Second

// waitFor reads events from s until one of type T arrives, skipping others.
func waitFor[T SessionEvent](t *testing.T, s *ChannelSession) T {
	t.Helper()
	deadline := time.After(eventTimeout)
	for {
		select {
		case evt := <-s.Events():
			if want, ok := evt.(T); ok {
				return want
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T on session %s", zero, s.ID())
			return zero
		}
	}
}

// waitUntil polls cond until it holds or the timeout expires.
func waitUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(eventTimeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting until %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

type recordingSaver struct {
	results chan MatchResultData
}

func newRecordingSaver() *recordingSaver {
	return &recordingSaver{results: make(chan MatchResultData, 4)}
}

func (r *recordingSaver) SaveMatchResult(d MatchResultData) error {
	r.results <- d
	return nil
}

type testServer struct {
	coord    *Coordinator
	registry *SessionRegistry
}

func newTestServer(t *testing.T, cfg CoordinatorConfig) *testServer {
	t.Helper()
	registry := NewSessionRegistry()
	coord := NewCoordinator(cfg, registry, nil)
	coord.Start()
	t.Cleanup(coord.Stop)
	return &testServer{coord: coord, registry: registry}
}

func (s *testServer) connect(id SessionID, buffer int) *ChannelSession {
	sess := NewChannelSession(id, buffer)
	s.registry.Register(sess)
	return sess
}

// pair creates a lobby hosted by host, joins it with joiner and returns the
// match ID once both sides have been told the match started.
func (s *testServer) pair(t *testing.T, host, joiner *ChannelSession) MatchID {
	t.Helper()
	s.coord.Send(CreateLobbyMsg{SessionID: host.ID()})
	created := waitFor[LobbyCreatedEvent](t, host)

	s.coord.Send(JoinLobbyMsg{SessionID: joiner.ID(), Code: created.Code})
	started := waitFor[MatchStartedEvent](t, host)
	if started.Side != Player1 {
		t.Errorf("host side = %v, expected Player1", started.Side)
	}
	joined := waitFor[MatchStartedEvent](t, joiner)
	if joined.Side != Player2 {
		t.Errorf("joiner side = %v, expected Player2", joined.Side)
	}
	if joined.MatchID != started.MatchID {
		t.Errorf("match IDs differ: %s vs %s", started.MatchID, joined.MatchID)
	}
	return started.MatchID
}
