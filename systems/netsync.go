package systems

import (
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/automoto/skirmish/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateNetSync copies authoritative simulation state into the network
// component mirrors that necs ships to clients. Runs last in the chain so
// clients always see post-combat values.
func UpdateNetSync(ecs *ecs.ECS) {
	tags.Fighter.Each(ecs.World, func(e *donburi.Entry) {
		if !e.HasComponent(netcomponents.NetPosition) {
			return
		}

		obj := components.Object.Get(e)
		pos := netcomponents.NetPosition.Get(e)
		pos.X = obj.X
		pos.Y = obj.Y

		fighter := components.Fighter.Get(e)
		hp := components.Health.Get(e)
		state := netcomponents.NetFighterState.Get(e)
		state.Name = fighter.Name
		state.TypeName = fighter.TypeName
		state.Health = hp.Current
		state.MaxHealth = hp.Max
		state.Alive = components.Alive(e)
		state.Bot = fighter.Bot
		state.Width = obj.W
		state.Height = obj.H
		state.TintR = fighter.TintR
		state.TintG = fighter.TintG
		state.TintB = fighter.TintB
	})
}
