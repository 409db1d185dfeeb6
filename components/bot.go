package components

import "github.com/yohamta/donburi"

// BotData drives server-side fighters with no client attached.
type BotData struct {
	DecisionTimer int            // ticks until the next target re-evaluation
	Target        donburi.Entity // current target, may be stale
	HasTarget     bool
}

var Bot = donburi.NewComponentType[BotData]()
