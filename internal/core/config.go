package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	FrameRate int   // Loop ticks per second (default 30)
	Seed      int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 30,
		Seed:      0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a two-player match.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score1   int      // Points scored by player 1
	Score2   int      // Points scored by player 2
	Rally    int      // Bounces since the last respawn
	Winner   PlayerID // Zero until a player reaches the win score
	GameOver bool     // Whether the game has ended
	Paused   bool     // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State         GameState
	Bounced       bool     // The ball bounced off a paddle this tick
	Missed        bool     // The ball escaped the arena this tick
	MissedBy      PlayerID // Player charged with the miss, if Missed
	FinishedRally int      // Length of the rally the miss ended, if Missed
	Respawn       bool     // The ball was reset this tick
}
