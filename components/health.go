package components

import "github.com/yohamta/donburi"

type HealthData struct {
	Current float64
	Max     float64
}

var Health = donburi.NewComponentType[HealthData]()

// Alive reports whether the entity has not yet entered its death sequence.
// Death is one-way: the Death component is added exactly once and never removed.
func Alive(e *donburi.Entry) bool {
	return !e.HasComponent(Death)
}
