package components

import "github.com/yohamta/donburi"

// DeathData marks an entity as dead. It is added exactly once, when health
// first reaches zero, and is never removed; Timer counts ticks until the
// body is despawned from the world.
type DeathData struct {
	Timer  int
	Killer string // name of the fighter credited with the kill
}

var Death = donburi.NewComponentType[DeathData]()
