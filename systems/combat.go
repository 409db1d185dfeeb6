package systems

import (
	"log"

	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCombat applies queued damage and heal events and keeps health values
// within their valid range.
func UpdateCombat(ecs *ecs.ECS) {
	// --------------------------------------------------------------------
	// 1. Process queued damage events (generic for any entity with Health)
	// --------------------------------------------------------------------
	for e := range components.DamageEvent.Iter(ecs.World) {
		dmg := components.DamageEvent.Get(e)

		// Dead entities absorb nothing; negative amounts are invalid input
		// and are dropped rather than propagated.
		if !components.Alive(e) || dmg.Amount < 0 {
			donburi.Remove[components.DamageEventData](e, components.DamageEvent)
			continue
		}

		hp := components.Health.Get(e)
		hp.Current -= dmg.Amount
		if hp.Current < 0 {
			hp.Current = 0
		}

		name := fighterName(e)
		log.Printf("[combat] %s takes %.1f damage from %s (%.1f/%.1f)",
			name, dmg.Amount, attackerLabel(dmg.Attacker), hp.Current, hp.Max)

		appendHit(ecs.World, components.HitRecord{
			Attacker:  findByName(ecs.World, dmg.Attacker),
			Target:    e.Entity(),
			Damage:    dmg.Amount,
			Remaining: hp.Current,
		})

		if hp.Current == 0 {
			startDeathSequence(ecs, e, dmg.Attacker)
		}

		// Remove the damage event component so it is processed only once.
		donburi.Remove[components.DamageEventData](e, components.DamageEvent)
	}

	// --------------------------------------------------------------------
	// 2. Process queued heal events
	// --------------------------------------------------------------------
	for e := range components.HealEvent.Iter(ecs.World) {
		heal := components.HealEvent.Get(e)

		// Healing a dead fighter is a no-op; negative amounts are dropped.
		if components.Alive(e) && heal.Amount >= 0 {
			hp := components.Health.Get(e)
			before := hp.Current
			hp.Current += heal.Amount
			if hp.Current > hp.Max {
				hp.Current = hp.Max
			}
			if hp.Current != before {
				log.Printf("[combat] %s heals %.1f (%.1f/%.1f)",
					fighterName(e), hp.Current-before, hp.Current, hp.Max)
			}
		}

		donburi.Remove[components.HealEventData](e, components.HealEvent)
	}

	// --------------------------------------------------------------------
	// 3. Clamp health ranges (0..Max)
	// --------------------------------------------------------------------
	for e := range components.Health.Iter(ecs.World) {
		hp := components.Health.Get(e)
		if hp.Current < 0 {
			hp.Current = 0
		}
		if hp.Current > hp.Max {
			hp.Current = hp.Max
		}

		// Trigger death sequence if HP reached 0 and not already dying.
		if hp.Current == 0 && components.Alive(e) {
			startDeathSequence(ecs, e, "")
		}
	}
}

// startDeathSequence moves a fighter into its terminal dead state. It runs
// exactly once per entity: the Death component is never removed.
func startDeathSequence(ecs *ecs.ECS, e *donburi.Entry, killer string) {
	donburi.Add(e, components.Death, &components.DeathData{
		Timer:  cfg.Sim.DespawnTicks(),
		Killer: killer,
	})

	// Dead bodies stop moving.
	if e.HasComponent(components.Physics) {
		physics := components.Physics.Get(e)
		physics.SpeedX = 0
		physics.SpeedY = 0
	}

	log.Printf("[combat] %s died (killed by %s)", fighterName(e), attackerLabel(killer))

	appendDeath(ecs.World, components.DeathRecord{
		Victim: e.Entity(),
		Killer: killer,
	})
}

func fighterName(e *donburi.Entry) string {
	if e.HasComponent(components.Fighter) {
		return components.Fighter.Get(e).Name
	}
	return "entity"
}

func attackerLabel(name string) string {
	if name == "" {
		return "environment"
	}
	return name
}

// findByName resolves a fighter name back to its entity for event records.
// Returns the zero entity when no living fighter carries the name.
func findByName(w donburi.World, name string) donburi.Entity {
	var found donburi.Entity
	if name == "" {
		return found
	}
	components.Fighter.Each(w, func(e *donburi.Entry) {
		if components.Fighter.Get(e).Name == name {
			found = e.Entity()
		}
	})
	return found
}

func appendHit(w donburi.World, rec components.HitRecord) {
	if entry, ok := components.Outbox.First(w); ok {
		out := components.Outbox.Get(entry)
		out.Hits = append(out.Hits, rec)
	}
}

func appendDeath(w donburi.World, rec components.DeathRecord) {
	if entry, ok := components.Outbox.First(w); ok {
		out := components.Outbox.Get(entry)
		out.Deaths = append(out.Deaths, rec)
	}
}
