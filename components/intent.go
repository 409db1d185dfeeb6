package components

import "github.com/yohamta/donburi"

// IntentData carries the per-tick wishes of whoever controls a fighter,
// whether that is a connected client or the bot AI. MoveX/MoveY form a
// direction vector (not necessarily normalized); Attack is a latch consumed
// by the attack system.
type IntentData struct {
	MoveX, MoveY float64
	Attack       bool
}

var Intent = donburi.NewComponentType[IntentData]()
