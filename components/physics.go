package components

import "github.com/yohamta/donburi"

type PhysicsData struct {
	SpeedX    float64 // current velocity, pixels per second
	SpeedY    float64
	MoveSpeed float64 // top speed granted by the fighter definition
}

var Physics = donburi.NewComponentType[PhysicsData]()
