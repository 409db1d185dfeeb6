package core

import (
	"fmt"
	"log"

	"github.com/automoto/skirmish/archetypes"
	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/defs"
	"github.com/automoto/skirmish/shared/arenadata"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/automoto/skirmish/systems"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// rosterEntry remembers a fighter between rounds so the arena can be reset
// with the same cast.
type rosterEntry struct {
	Name     string
	TypeName string
	Bot      bool
}

// Simulation owns the authoritative ECS world for one arena. It is not safe
// for concurrent use; the game loop is the only writer.
type Simulation struct {
	ECS   *ecs.ECS
	space *resolv.Space
	arena *arenadata.ArenaData
	lib   defs.Library

	roster      []rosterEntry
	spawnCursor int
}

// NewSimulation builds a world from arena geometry and a fighter library and
// wires the system chain. The match starts in countdown.
func NewSimulation(arena *arenadata.ArenaData, lib defs.Library) *Simulation {
	world := donburi.NewWorld()
	e := ecs.NewECS(world)

	s := &Simulation{
		ECS:   e,
		arena: arena,
		lib:   lib,
	}

	s.space = resolv.NewSpace(arena.Width, arena.Height, cfg.Sim.SpaceCellSize, cfg.Sim.SpaceCellSize)
	spaceEntry := archetypes.Space.Spawn(e)
	components.Space.SetValue(spaceEntry, components.SpaceData{Space: s.space})

	for _, wall := range arena.Walls {
		obj := resolv.NewObject(wall.X, wall.Y, wall.W, wall.H, tags.ResolvWall)
		s.space.Add(obj)
		wallEntry := archetypes.Wall.Spawn(e)
		obj.Data = wallEntry
		components.Object.SetValue(wallEntry, components.ObjectData{Object: obj})
	}

	matchEntry := archetypes.Match.Spawn(e)
	components.Match.SetValue(matchEntry, components.MatchData{
		State:  components.MatchCountdown,
		Timer:  cfg.Sim.CountdownSeconds,
		Scores: make(map[string]int),
	})

	archetypes.Outbox.Spawn(e)

	// Bots and movement feed intent and position into attacks; combat applies
	// the queued events; net sync runs last so clients see settled state.
	e.AddSystem(systems.WhilePlaying(systems.UpdateBots))
	e.AddSystem(systems.WhilePlaying(systems.UpdateMovement))
	e.AddSystem(systems.WhilePlaying(systems.UpdateAttacks))
	e.AddSystem(systems.UpdateRegen)
	e.AddSystem(systems.UpdateCombat)
	e.AddSystem(systems.UpdateDeaths)
	e.AddSystem(systems.UpdateMatch)
	e.AddSystem(systems.UpdateNetSync)

	return s
}

// Step advances the simulation by one fixed tick.
func (s *Simulation) Step() {
	s.ECS.Update()
}

// SetScores seeds the match scoreboard, typically from persisted state.
func (s *Simulation) SetScores(scores map[string]int) {
	if entry, ok := components.Match.First(s.ECS.World); ok {
		match := components.Match.Get(entry)
		for name, wins := range scores {
			match.Scores[name] = wins
		}
	}
}

// Scores returns the current win tally.
func (s *Simulation) Scores() map[string]int {
	if entry, ok := components.Match.First(s.ECS.World); ok {
		return components.Match.Get(entry).Scores
	}
	return nil
}

// SpawnFighter creates a fighter of the given type at the next spawn point.
// Names are made unique so kill credit and scores stay unambiguous.
func (s *Simulation) SpawnFighter(typeName, name string, bot bool) (*donburi.Entry, error) {
	def, ok := s.lib[typeName]
	if !ok {
		return nil, fmt.Errorf("unknown fighter type %q", typeName)
	}
	name = s.uniqueName(name)

	s.roster = append(s.roster, rosterEntry{Name: name, TypeName: typeName, Bot: bot})
	entry := s.spawn(def, typeName, name, bot)
	return entry, nil
}

// RemoveFighter despawns a fighter and drops it from the roster, e.g. when
// its client disconnects.
func (s *Simulation) RemoveFighter(ent donburi.Entity) {
	if !s.ECS.World.Valid(ent) {
		return
	}
	entry := s.ECS.World.Entry(ent)
	name := components.Fighter.Get(entry).Name

	for i, r := range s.roster {
		if r.Name == name {
			s.roster = append(s.roster[:i], s.roster[i+1:]...)
			break
		}
	}

	if obj := components.Object.Get(entry); obj.Object != nil {
		s.space.Remove(obj.Object)
	}
	s.ECS.World.Remove(ent)
}

// ResetMatch despawns every fighter and respawns the roster fresh for a new
// round. It returns the new entity for each fighter name so the host can
// rebind client ownership and network sync.
func (s *Simulation) ResetMatch() map[string]*donburi.Entry {
	tags.Fighter.Each(s.ECS.World, func(e *donburi.Entry) {
		if obj := components.Object.Get(e); obj.Object != nil {
			s.space.Remove(obj.Object)
		}
		s.ECS.World.Remove(e.Entity())
	})
	s.spawnCursor = 0

	respawned := make(map[string]*donburi.Entry, len(s.roster))
	for _, r := range s.roster {
		def, ok := s.lib[r.TypeName]
		if !ok {
			continue
		}
		respawned[r.Name] = s.spawn(def, r.TypeName, r.Name, r.Bot)
	}

	if entry, ok := components.Match.First(s.ECS.World); ok {
		match := components.Match.Get(entry)
		match.State = components.MatchCountdown
		match.Timer = cfg.Sim.CountdownSeconds
		match.Winner = ""
	}

	log.Printf("[sim] arena reset: %d fighters respawned", len(respawned))
	return respawned
}

// DrainOutbox returns the events queued since the last drain and clears them.
func (s *Simulation) DrainOutbox() components.OutboxData {
	entry, ok := components.Outbox.First(s.ECS.World)
	if !ok {
		return components.OutboxData{}
	}
	out := components.Outbox.Get(entry)
	drained := components.OutboxData{
		Hits:         append([]components.HitRecord(nil), out.Hits...),
		Deaths:       append([]components.DeathRecord(nil), out.Deaths...),
		MatchChanges: append([]components.MatchChangeRecord(nil), out.MatchChanges...),
		ScoreChanged: out.ScoreChanged,
	}
	out.Reset()
	return drained
}

// ReadyToRestart reports whether the finished-match linger time has elapsed.
func (s *Simulation) ReadyToRestart() bool {
	return systems.MatchReadyToRestart(s.ECS)
}

// AliveFighters returns the number of fighters not yet dead.
func (s *Simulation) AliveFighters() int {
	count := 0
	tags.Fighter.Each(s.ECS.World, func(e *donburi.Entry) {
		if components.Alive(e) {
			count++
		}
	})
	return count
}

func (s *Simulation) spawn(def defs.FighterDef, typeName, name string, bot bool) *donburi.Entry {
	extra := []donburi.IComponentType{
		netcomponents.NetPosition,
		netcomponents.NetFighterState,
	}
	if bot {
		extra = append(extra, components.Bot)
	}
	entry := archetypes.Fighter.Spawn(s.ECS, extra...)

	sp := s.nextSpawnPoint()
	size := cfg.Sim.FighterSize
	obj := resolv.NewObject(sp.X-size/2, sp.Y-size/2, size, size, tags.ResolvFighter)
	obj.Data = entry
	s.space.Add(obj)

	tintR, tintG, tintB, _ := defs.ParseTint(def.Tint)
	components.Fighter.SetValue(entry, components.FighterData{
		Name:     name,
		TypeName: typeName,
		Bot:      bot,
		TintR:    tintR,
		TintG:    tintG,
		TintB:    tintB,
	})
	components.Health.SetValue(entry, components.HealthData{
		Current: def.MaxHealth,
		Max:     def.MaxHealth,
	})
	components.Attack.SetValue(entry, components.AttackData{
		Damage:           def.Damage,
		Range:            def.Range,
		CooldownDuration: def.Cooldown,
	})
	components.Physics.SetValue(entry, components.PhysicsData{
		MoveSpeed: def.MoveSpeed,
	})
	components.Regen.SetValue(entry, components.RegenData{
		PerSecond: def.RegenPerSecond,
	})
	components.Object.SetValue(entry, components.ObjectData{Object: obj})

	if bot {
		components.Bot.SetValue(entry, components.BotData{DecisionTimer: 1})
	}

	log.Printf("[sim] spawned %s (%s) at (%.0f, %.0f) bot=%v", name, typeName, sp.X, sp.Y, bot)
	return entry
}

func (s *Simulation) nextSpawnPoint() arenadata.SpawnPoint {
	sp := s.arena.SpawnPoints[s.spawnCursor%len(s.arena.SpawnPoints)]
	s.spawnCursor++
	return sp
}

// uniqueName appends a numeric suffix until the name is unused.
func (s *Simulation) uniqueName(name string) string {
	if name == "" {
		name = "fighter"
	}
	taken := make(map[string]bool, len(s.roster))
	for _, r := range s.roster {
		taken[r.Name] = true
	}
	if !taken[name] {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", name, i)
		if !taken[candidate] {
			return candidate
		}
	}
}
