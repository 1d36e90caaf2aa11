package core

import "sync/atomic"

// PlayerID identifies one of the two paddles in a match.
type PlayerID int

const (
	// Player1 owns the first (red) paddle and wins collision ties.
	Player1 PlayerID = 1
	// Player2 owns the second (green) paddle.
	Player2 PlayerID = 2
)

// String returns a human-readable player name.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return "None"
	}
}

// Other returns the opposing player.
func (p PlayerID) Other() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionTurnCCW         // Rotate own paddle one detent counter-clockwise
	ActionTurnCW          // Rotate own paddle one detent clockwise
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R key - restart game after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTurnCCW:
		return "TurnCCW"
	case ActionTurnCW:
		return "TurnCW"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Detents converts a turn action into a signed encoder step.
// Non-turn actions return 0.
func (a Action) Detents() int {
	switch a {
	case ActionTurnCW:
		return 1
	case ActionTurnCCW:
		return -1
	default:
		return 0
	}
}

// Encoder is a software rotary encoder: an accumulating detent counter.
// Turn may be called from any goroutine (key handlers, network sessions),
// Position is read once per tick by the game loop.
type Encoder struct {
	pos atomic.Int64
}

// NewEncoder creates an encoder at position 0.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Turn adds steps detents (negative turns the other way).
func (e *Encoder) Turn(steps int) {
	e.pos.Add(int64(steps))
}

// Position returns the accumulated detent count.
func (e *Encoder) Position() int {
	return int(e.pos.Load())
}
