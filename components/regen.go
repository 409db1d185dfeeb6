package components

import "github.com/yohamta/donburi"

// RegenData heals a living fighter by PerSecond hit points each second.
type RegenData struct {
	PerSecond float64
}

var Regen = donburi.NewComponentType[RegenData]()
