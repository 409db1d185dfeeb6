package systems

import (
	"log"

	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/shared/gamemath"
	"github.com/automoto/skirmish/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateAttacks ticks attack cooldowns down by the fixed timestep and
// resolves attack requests. An attack hits every other living fighter whose
// center is within range; the cooldown re-arms on every attempt that gets
// past the gate, whether or not anyone was in range.
func UpdateAttacks(ecs *ecs.ECS) {
	dt := cfg.Sim.StepSeconds()

	tags.Fighter.Each(ecs.World, func(e *donburi.Entry) {
		atk := components.Attack.Get(e)

		if atk.CooldownRemaining > 0 {
			atk.CooldownRemaining -= dt
			if atk.CooldownRemaining < 0 {
				atk.CooldownRemaining = 0
			}
		}

		intent := components.Intent.Get(e)
		if !intent.Attack {
			return
		}
		intent.Attack = false

		if !components.Alive(e) {
			return
		}

		// Attacking while on cooldown is a benign outcome, not an error.
		// The request is dropped and the cooldown is NOT reset.
		if !atk.Ready() {
			return
		}

		hits := resolveAttack(ecs, e, atk)
		atk.CooldownRemaining = atk.CooldownDuration

		if hits == 0 {
			log.Printf("[attack] %s swings at nothing", fighterName(e))
		}
	})
}

// resolveAttack queues a damage event on every living fighter within range,
// excluding the attacker, and returns the number of targets hit. Candidates
// are processed in world iteration order; each hit is independent.
func resolveAttack(ecs *ecs.ECS, attacker *donburi.Entry, atk *components.AttackData) int {
	attackerObj := components.Object.Get(attacker)
	attackerName := components.Fighter.Get(attacker).Name

	hits := 0
	tags.Fighter.Each(ecs.World, func(target *donburi.Entry) {
		if target.Entity() == attacker.Entity() {
			return
		}
		if !components.Alive(target) {
			return
		}

		targetObj := components.Object.Get(target)
		dist := gamemath.Distance(
			attackerObj.CenterX(), attackerObj.CenterY(),
			targetObj.CenterX(), targetObj.CenterY(),
		)
		if dist > atk.Range {
			return
		}

		queueDamage(target, atk.Damage, attackerName)
		hits++
	})

	return hits
}

// queueDamage adds a damage event to the target, accumulating when several
// hits land on the same tick. The first attacker keeps the kill credit.
func queueDamage(target *donburi.Entry, amount float64, attacker string) {
	if target.HasComponent(components.DamageEvent) {
		ev := components.DamageEvent.Get(target)
		ev.Amount += amount
		return
	}
	donburi.Add(target, components.DamageEvent, &components.DamageEventData{
		Amount:   amount,
		Attacker: attacker,
	})
}
