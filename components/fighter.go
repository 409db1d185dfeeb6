package components

import "github.com/yohamta/donburi"

type FighterData struct {
	Name     string // display label, informational only
	TypeName string // key into the fighter definition library
	Bot      bool

	// Tint is the render color for this fighter type, kept as raw RGB so the
	// simulation stays free of render dependencies.
	TintR, TintG, TintB uint8
}

var Fighter = donburi.NewComponentType[FighterData]()
