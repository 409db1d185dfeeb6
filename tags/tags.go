package tags

import "github.com/yohamta/donburi"

var (
	Fighter = donburi.NewTag().SetName("Fighter")
	Wall    = donburi.NewTag().SetName("Wall")
)

// Resolv tags for spatial collision
const (
	ResolvFighter = "fighter"
	ResolvWall    = "wall"
)
