package config

import "github.com/yohamta/donburi/ecs"

// Default is the ECS layer every entity lives on. The simulation is headless
// and has no render layering needs.
const Default ecs.LayerID = 0

// SimulationConfig contains fixed-timestep simulation values.
type SimulationConfig struct {
	// TickRate is the number of simulation updates per second.
	TickRate int

	// CountdownSeconds is how long a match sits in the countdown state
	// before fighters may move and attack.
	CountdownSeconds float64

	// DespawnSeconds is how long a dead body stays in the world.
	DespawnSeconds float64

	// RestartSeconds is how long a finished match lingers before the server
	// resets the arena for a new round.
	RestartSeconds float64

	// FighterSize is the side length of a fighter's square collision body.
	FighterSize float64

	// SpaceCellSize is the resolv space cell size in pixels.
	SpaceCellSize int
}

// StepSeconds returns the fixed timestep in seconds.
func (c SimulationConfig) StepSeconds() float64 {
	return 1.0 / float64(c.TickRate)
}

// DespawnTicks returns DespawnSeconds converted to whole ticks.
func (c SimulationConfig) DespawnTicks() int {
	return int(c.DespawnSeconds * float64(c.TickRate))
}

// BotConfig tunes server-side bot behavior.
type BotConfig struct {
	DecisionTicks       int     // ticks between target re-evaluations
	DecisionJitterTicks int     // random extra ticks added per decision
	ApproachFactor      float64 // bots close to ApproachFactor*Range before stopping
}

var Sim = SimulationConfig{
	TickRate:         20,
	CountdownSeconds: 3,
	DespawnSeconds:   2,
	RestartSeconds:   5,
	FighterSize:      24,
	SpaceCellSize:    16,
}

var Bot = BotConfig{
	DecisionTicks:       10,
	DecisionJitterTicks: 10,
	ApproachFactor:      0.8,
}
