package systems

import (
	"github.com/automoto/skirmish/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateDeaths counts down despawn timers and removes expired bodies from
// the space and the world. The dead state itself is permanent; only the
// leftover body goes away.
func UpdateDeaths(ecs *ecs.ECS) {
	components.Death.Each(ecs.World, func(e *donburi.Entry) {
		death := components.Death.Get(e)
		death.Timer--
		if death.Timer > 0 {
			return
		}

		if spaceEntry, ok := components.Space.First(e.World); ok {
			space := components.Space.Get(spaceEntry)
			if e.HasComponent(components.Object) {
				if obj := components.Object.Get(e); obj.Object != nil {
					space.Remove(obj.Object)
				}
			}
		}
		ecs.World.Remove(e.Entity())
	})
}
