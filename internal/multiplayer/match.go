package multiplayer

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
	"github.com/vovakirdan/ringpong/internal/games/ringpong"
)

// OnlineMatch is an authoritative ringpong game played by two sessions.
// Turns arrive on encoders from any goroutine; the game itself is only
// touched by the runner goroutine.
type OnlineMatch struct {
	id   MatchID
	code string

	game   *ringpong.Game
	enc1   *core.Encoder
	enc2   *core.Encoder
	clock  core.Clock
	logger *log.Logger

	player1Session SessionHandle
	player2Session SessionHandle

	done     chan struct{}
	doneOnce sync.Once

	disconnectChan chan SessionID
}

// NewOnlineMatch creates a match between the host (Player1) and joiner (Player2).
// Online games never play sound.
func NewOnlineMatch(
	id MatchID,
	code string,
	cfg config.RingPongConfig,
	runtime core.RuntimeConfig,
	p1Session, p2Session SessionHandle,
	clock core.Clock,
	logger *log.Logger,
) *OnlineMatch {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("match", id)

	m := &OnlineMatch{
		id:             id,
		code:           code,
		enc1:           core.NewEncoder(),
		enc2:           core.NewEncoder(),
		clock:          clock,
		logger:         logger,
		player1Session: p1Session,
		player2Session: p2Session,
		done:           make(chan struct{}),
		disconnectChan: make(chan SessionID, 2),
	}
	m.game = ringpong.New(cfg, runtime, ringpong.Deps{
		Input1: m.enc1,
		Input2: m.enc2,
		Cues:   ringpong.SilentCues{},
		Clock:  clock,
		Logger: logger,
	})
	return m
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code used to create this match.
func (m *OnlineMatch) Code() string {
	return m.code
}

// Turn rotates a player's paddle. Safe for concurrent use.
func (m *OnlineMatch) Turn(player PlayerID, steps int) {
	switch player {
	case Player1:
		m.enc1.Turn(steps)
	case Player2:
		m.enc2.Turn(steps)
	}
}

// SideOf returns the side played by sessionID.
func (m *OnlineMatch) SideOf(sessionID SessionID) (PlayerID, bool) {
	switch sessionID {
	case m.player1Session.ID():
		return Player1, true
	case m.player2Session.ID():
		return Player2, true
	}
	return 0, false
}

// PlayerDisconnected signals that a player has left or disconnected.
func (m *OnlineMatch) PlayerDisconnected(sessionID SessionID) {
	select {
	case m.disconnectChan <- sessionID:
	default:
	}
}

// Run plays the match until game over, a disconnect, Stop or ctx cancellation.
// onComplete receives the result unless the match was stopped.
func (m *OnlineMatch) Run(ctx context.Context, onComplete func(MatchResult)) {
	defer m.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startedAt := m.clock.Now()
	runner := ringpong.NewRunner(m.game, ringpong.RendererFunc(m.broadcast), m.clock, m.logger)

	runErr := make(chan error, 1)
	go func() {
		runErr <- runner.Run(ctx)
	}()

	go m.monitorSessions()

	var leaver SessionID
	var err error
	select {
	case err = <-runErr:
	case leaver = <-m.disconnectChan:
		cancel()
		<-runErr
	case <-m.done:
		cancel()
		<-runErr
		return
	}

	// The runner has exited; the game is ours to read.
	if err != nil && leaver == "" {
		if !errors.Is(err, context.Canceled) {
			m.logger.Error("match loop failed", "error", err)
		}
		return
	}

	result := m.result(leaver)
	result.Duration = m.clock.Now().Sub(startedAt)
	m.logger.Info("match ended",
		"reason", result.Reason,
		"score1", result.Score1,
		"score2", result.Score2,
		"best_rally", result.BestRally,
	)
	if onComplete != nil {
		onComplete(result)
	}
}

// broadcast sends the authoritative state to both sessions after each tick.
func (m *OnlineMatch) broadcast(f ringpong.Frame) error {
	evt := SnapshotEvent{
		MatchID:  m.id,
		Tick:     f.Tick,
		Snapshot: m.game.Snapshot(),
	}
	m.player1Session.Send(evt)
	m.player2Session.Send(evt)
	return nil
}

// result builds the match outcome. A leaver forfeits to the other side.
func (m *OnlineMatch) result(leaver SessionID) MatchResult {
	st := m.game.State()
	res := MatchResult{
		MatchID:   m.id,
		Reason:    MatchEndReasonCompleted,
		Winner:    st.Winner,
		Score1:    st.Score1,
		Score2:    st.Score2,
		BestRally: m.game.BestRally(),
		Ticks:     m.game.Tick(),
	}
	switch leaver {
	case "":
	case m.player1Session.ID():
		res.Reason = MatchEndReasonDisconnect
		res.Winner = Player2
	default:
		res.Reason = MatchEndReasonDisconnect
		res.Winner = Player1
	}
	return res
}

func (m *OnlineMatch) monitorSessions() {
	select {
	case <-m.player1Session.Done():
		m.PlayerDisconnected(m.player1Session.ID())
	case <-m.player2Session.Done():
		m.PlayerDisconnected(m.player2Session.ID())
	case <-m.done:
	}
}

// Stop ends the match without reporting a result. Safe to call multiple times.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}

// Done returns a channel that closes when the match is over.
func (m *OnlineMatch) Done() <-chan struct{} {
	return m.done
}
