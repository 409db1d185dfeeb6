package systems

import (
	"testing"

	"github.com/automoto/skirmish/components"
)

func TestUpdateDeathsDespawnsExpiredBodies(t *testing.T) {
	e, space := newTestECS(t)
	fighter := spawnFighter(t, e, space, fighterOpts{name: "goner", x: 100, y: 100, health: 100})

	queueDamage(fighter, 200, "enemy")
	UpdateCombat(e)

	entity := fighter.Entity()
	components.Death.Get(fighter).Timer = 2

	UpdateDeaths(e)
	if !e.World.Valid(entity) {
		t.Fatal("body despawned before its timer ran out")
	}

	UpdateDeaths(e)
	if e.World.Valid(entity) {
		t.Error("body still in the world after its timer ran out")
	}
}

func TestUpdateDeathsIgnoresLiving(t *testing.T) {
	e, space := newTestECS(t)
	fighter := spawnFighter(t, e, space, fighterOpts{name: "alive", x: 100, y: 100, health: 100})

	for i := 0; i < 100; i++ {
		UpdateDeaths(e)
	}

	if !e.World.Valid(fighter.Entity()) {
		t.Error("living fighter was removed")
	}
}
