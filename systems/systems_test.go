package systems

import (
	"testing"

	"github.com/automoto/skirmish/archetypes"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// newTestECS builds a minimal world with a space, an outbox, and a match
// already in the playing state.
func newTestECS(t *testing.T) (*ecs.ECS, *resolv.Space) {
	t.Helper()

	world := donburi.NewWorld()
	e := ecs.NewECS(world)

	space := resolv.NewSpace(800, 608, 16, 16)
	spaceEntry := archetypes.Space.Spawn(e)
	components.Space.SetValue(spaceEntry, components.SpaceData{Space: space})

	outboxEntry := archetypes.Outbox.Spawn(e)
	components.Outbox.SetValue(outboxEntry, components.OutboxData{})

	matchEntry := archetypes.Match.Spawn(e)
	components.Match.SetValue(matchEntry, components.MatchData{
		State:  components.MatchPlaying,
		Scores: make(map[string]int),
	})

	return e, space
}

type fighterOpts struct {
	name      string
	x, y      float64 // body center
	health    float64
	damage    float64
	rng       float64
	cooldown  float64
	moveSpeed float64
	regen     float64
	bot       bool
}

// spawnFighter places a 24x24 fighter with its center at (x, y).
func spawnFighter(t *testing.T, e *ecs.ECS, space *resolv.Space, opts fighterOpts) *donburi.Entry {
	t.Helper()

	extra := []donburi.IComponentType{}
	if opts.bot {
		extra = append(extra, components.Bot)
	}
	entry := archetypes.Fighter.Spawn(e, extra...)

	const size = 24.0
	obj := resolv.NewObject(opts.x-size/2, opts.y-size/2, size, size, tags.ResolvFighter)
	obj.Data = entry
	space.Add(obj)

	components.Fighter.SetValue(entry, components.FighterData{Name: opts.name})
	components.Health.SetValue(entry, components.HealthData{Current: opts.health, Max: opts.health})
	components.Attack.SetValue(entry, components.AttackData{
		Damage:           opts.damage,
		Range:            opts.rng,
		CooldownDuration: opts.cooldown,
	})
	components.Physics.SetValue(entry, components.PhysicsData{MoveSpeed: opts.moveSpeed})
	components.Regen.SetValue(entry, components.RegenData{PerSecond: opts.regen})
	components.Object.SetValue(entry, components.ObjectData{Object: obj})
	if opts.bot {
		components.Bot.SetValue(entry, components.BotData{DecisionTimer: 1})
	}

	return entry
}

func health(entry *donburi.Entry) *components.HealthData {
	return components.Health.Get(entry)
}

func outbox(e *ecs.ECS) *components.OutboxData {
	entry, ok := components.Outbox.First(e.World)
	if !ok {
		return nil
	}
	return components.Outbox.Get(entry)
}
