package components

import "github.com/yohamta/donburi"

// AttackData is a cooldown-gated area attack. All durations are in seconds.
type AttackData struct {
	Damage            float64
	Range             float64 // Euclidean radius, center to center
	CooldownDuration  float64
	CooldownRemaining float64
}

// Ready reports whether the cooldown has fully elapsed.
func (a *AttackData) Ready() bool {
	return a.CooldownRemaining == 0
}

var Attack = donburi.NewComponentType[AttackData]()
