// Package multiplayer runs ringpong matches between two remote sessions.
// The server owns the authoritative game; sessions send paddle turns and
// receive snapshots.
package multiplayer

import (
	"time"

	"github.com/vovakirdan/ringpong/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
// The lobby host plays Player1, the joiner Player2.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies an online match.
type MatchID string

// MatchResult contains the outcome of a finished match.
type MatchResult struct {
	MatchID   MatchID
	Reason    MatchEndReason
	Winner    PlayerID
	Score1    int
	Score2    int
	BestRally int
	Ticks     uint64
	Duration  time.Duration
}
