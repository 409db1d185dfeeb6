package components

import "github.com/yohamta/donburi"

// DamageEventData queues incoming damage on an entity. Multiple hits landing
// on the same tick accumulate into Amount; the first attacker keeps credit.
type DamageEventData struct {
	Amount   float64
	Attacker string // fighter name for kill credit ("" = environment)
}

var DamageEvent = donburi.NewComponentType[DamageEventData]()

// HealEventData queues incoming healing on an entity.
type HealEventData struct {
	Amount float64
}

var HealEvent = donburi.NewComponentType[HealEventData]()
