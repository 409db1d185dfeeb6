// Package arenadata provides TMX arena parsing shared between client and
// server. It has no dependencies on ebitengine, donburi, or resolv, so both
// binaries can parse maps without pulling in the other side's stack.
package arenadata

// ArenaData holds the static geometry parsed from a TMX arena file.
type ArenaData struct {
	Walls       []WallRect
	SpawnPoints []SpawnPoint
	Width       int // pixels
	Height      int // pixels
}

// WallRect is an impassable axis-aligned rectangle.
type WallRect struct {
	X, Y, W, H float64
}

// SpawnPoint is a fighter spawn location.
type SpawnPoint struct {
	X, Y  float64
	Index int
}
