package systems

import (
	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateRegen queues heal events for living fighters with a regeneration
// rate. Healing itself is applied by UpdateCombat, so regen goes through the
// same clamping and dead-fighter rules as any other heal.
func UpdateRegen(ecs *ecs.ECS) {
	dt := cfg.Sim.StepSeconds()

	tags.Fighter.Each(ecs.World, func(e *donburi.Entry) {
		regen := components.Regen.Get(e)
		if regen.PerSecond <= 0 || !components.Alive(e) {
			return
		}

		hp := components.Health.Get(e)
		if hp.Current >= hp.Max {
			return
		}

		queueHeal(e, regen.PerSecond*dt)
	})
}

func queueHeal(target *donburi.Entry, amount float64) {
	if target.HasComponent(components.HealEvent) {
		ev := components.HealEvent.Get(target)
		ev.Amount += amount
		return
	}
	donburi.Add(target, components.HealEvent, &components.HealEventData{Amount: amount})
}
