package netcomponents

import "github.com/yohamta/donburi"

// NetFighterStateData mirrors the render-relevant fighter state for clients.
// Discrete values, no interpolation.
type NetFighterStateData struct {
	Name      string
	TypeName  string
	Health    float64
	MaxHealth float64
	Alive     bool
	Bot       bool
	Width     float64
	Height    float64

	TintR, TintG, TintB uint8
}

var NetFighterState = donburi.NewComponentType[NetFighterStateData]()
