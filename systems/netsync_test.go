package systems

import (
	"testing"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/yohamta/donburi"
)

func TestUpdateNetSync(t *testing.T) {
	e, space := newTestECS(t)
	fighter := spawnFighter(t, e, space, fighterOpts{name: "alice", x: 100, y: 100, health: 100})
	donburi.Add(fighter, netcomponents.NetPosition, &netcomponents.NetPositionData{})
	donburi.Add(fighter, netcomponents.NetFighterState, &netcomponents.NetFighterStateData{})

	health(fighter).Current = 60
	UpdateNetSync(e)

	pos := netcomponents.NetPosition.Get(fighter)
	obj := components.Object.Get(fighter)
	if pos.X != obj.X || pos.Y != obj.Y {
		t.Errorf("net position = (%v, %v), want object position (%v, %v)", pos.X, pos.Y, obj.X, obj.Y)
	}

	state := netcomponents.NetFighterState.Get(fighter)
	if state.Name != "alice" || state.Health != 60 || state.MaxHealth != 100 || !state.Alive {
		t.Errorf("net state = %+v, want alice at 60/100 alive", state)
	}

	// Death shows up in the mirror on the same tick.
	queueDamage(fighter, 100, "enemy")
	UpdateCombat(e)
	UpdateNetSync(e)

	state = netcomponents.NetFighterState.Get(fighter)
	if state.Alive || state.Health != 0 {
		t.Errorf("net state = %+v, want dead at 0 health", state)
	}
}

func TestUpdateNetSyncSkipsUnsyncedEntities(t *testing.T) {
	e, space := newTestECS(t)
	spawnFighter(t, e, space, fighterOpts{name: "local", x: 100, y: 100, health: 100})

	// Must not panic on fighters without network mirrors.
	UpdateNetSync(e)
}

func TestLerpNetPosition(t *testing.T) {
	from := netcomponents.NetPositionData{X: 0, Y: 100}
	to := netcomponents.NetPositionData{X: 10, Y: 200}

	tests := []struct {
		name         string
		t            float64
		wantX, wantY float64
	}{
		{"start", 0, 0, 100},
		{"midpoint", 0.5, 5, 150},
		{"end", 1, 10, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := netcomponents.LerpNetPosition(from, to, tt.t)
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Errorf("lerp(%v) = (%v, %v), want (%v, %v)", tt.t, got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}
