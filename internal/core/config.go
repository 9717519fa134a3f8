package core

// Setup is the run configuration chosen by the player before a run starts.
// It is read at run start and on reset, never mutated by the simulation.
type Setup struct {
	Tier     int    // Difficulty tier: 1 = Grades K-2, 2 = Grades 3-5, 3 = Grades 6-8
	Players  int    // Number of actors (2-4)
	GridW    int    // Grid width in cells
	GridH    int    // Grid height in cells
	Protocol string // Wandering protocol name ("random" or "every-other")
}

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
	Setup    Setup // Run configuration
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Setup: Setup{
			Tier:     1,
			Players:  2,
			GridW:    5,
			GridH:    5,
			Protocol: "random",
		},
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase    string  // Lifecycle phase name
	AllFound bool    // Whether every actor has been found
	GameTime float64 // Elapsed run time in seconds
	Runs     int     // Completed runs this session
	Paused   bool    // Whether the simulation is paused

	// MenuRequested is set when the player asked to leave the run for the setup menu.
	MenuRequested bool
}

// RunSummary describes one completed run.
type RunSummary struct {
	RunID    string
	Tier     int
	Players  int
	GridW    int
	GridH    int
	Protocol string
	Elapsed  float64 // Seconds of run time
	Ticks    int     // Active ticks simulated
	Moves    []int   // Completed cell steps per actor before being found
}

// TotalMoves returns the sum of all actors' move counts.
func (r RunSummary) TotalMoves() int {
	total := 0
	for _, m := range r.Moves {
		total += m
	}
	return total
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any run that completed during the tick.
type StepResult struct {
	State     GameState
	Completed *RunSummary // Non-nil exactly once per completed run
}
