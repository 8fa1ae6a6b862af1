package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score      int    // Current score
	Coins      int    // Coins collected this round
	Goal       int    // Score needed to win, 0 if the game has no goal
	TimeLeft   int    // Seconds remaining
	Difficulty string // Active preset name
	Won        bool   // Whether the finished round met its goal
	GameOver   bool   // Whether the last session has ended
	Running    bool   // Whether a session is in progress
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
