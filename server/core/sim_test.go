package core

import (
	"math"
	"testing"

	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/defs"
	"github.com/automoto/skirmish/shared/arenadata"
	"github.com/yohamta/donburi"
)

func testArena() *arenadata.ArenaData {
	return &arenadata.ArenaData{
		Width:  800,
		Height: 608,
		Walls: []arenadata.WallRect{
			{X: 0, Y: 0, W: 800, H: 32},
			{X: 0, Y: 576, W: 800, H: 32},
		},
		SpawnPoints: []arenadata.SpawnPoint{
			{X: 100, Y: 300, Index: 0},
			{X: 700, Y: 300, Index: 1},
			{X: 400, Y: 100, Index: 2},
		},
	}
}

func newTestSim(t *testing.T) *Simulation {
	t.Helper()
	return NewSimulation(testArena(), defs.Default())
}

func stepSeconds(sim *Simulation, seconds float64) {
	ticks := int(math.Ceil(seconds / cfg.Sim.StepSeconds()))
	for i := 0; i < ticks; i++ {
		sim.Step()
	}
}

func TestSpawnFighter(t *testing.T) {
	sim := newTestSim(t)

	entry, err := sim.SpawnFighter("brawler", "alice", false)
	if err != nil {
		t.Fatalf("SpawnFighter() error = %v", err)
	}

	fighter := components.Fighter.Get(entry)
	if fighter.Name != "alice" || fighter.TypeName != "brawler" || fighter.Bot {
		t.Errorf("fighter = %+v, want alice the brawler", fighter)
	}

	hp := components.Health.Get(entry)
	if hp.Current != hp.Max || hp.Current <= 0 {
		t.Errorf("health = %v/%v, want spawned at full", hp.Current, hp.Max)
	}

	obj := components.Object.Get(entry)
	if obj.CenterX() != 100 || obj.CenterY() != 300 {
		t.Errorf("spawned at (%v, %v), want first spawn point (100, 300)", obj.CenterX(), obj.CenterY())
	}
}

func TestSpawnFighterUnknownType(t *testing.T) {
	sim := newTestSim(t)
	if _, err := sim.SpawnFighter("wizard", "alice", false); err == nil {
		t.Fatal("SpawnFighter() accepted an unknown fighter type")
	}
}

func TestSpawnFighterUniqueNames(t *testing.T) {
	sim := newTestSim(t)

	a, _ := sim.SpawnFighter("brawler", "alice", false)
	b, _ := sim.SpawnFighter("brawler", "alice", false)
	c, _ := sim.SpawnFighter("brawler", "", true)

	names := map[string]bool{}
	for _, entry := range []*donburi.Entry{a, b, c} {
		name := components.Fighter.Get(entry).Name
		if names[name] {
			t.Errorf("duplicate fighter name %q", name)
		}
		names[name] = true
	}
	if !names["alice"] || !names["alice-2"] {
		t.Errorf("names = %v, want alice and alice-2", names)
	}
}

func TestRemoveFighter(t *testing.T) {
	sim := newTestSim(t)
	entry, _ := sim.SpawnFighter("brawler", "alice", false)
	sim.SpawnFighter("brawler", "bob", false)

	sim.RemoveFighter(entry.Entity())

	if sim.ECS.World.Valid(entry.Entity()) {
		t.Error("removed fighter is still in the world")
	}
	if got := sim.AliveFighters(); got != 1 {
		t.Errorf("alive fighters = %d, want 1", got)
	}

	// The roster forgets removed fighters: a reset must not bring them back.
	respawned := sim.ResetMatch()
	if _, ok := respawned["alice"]; ok {
		t.Error("removed fighter came back after a reset")
	}
	if _, ok := respawned["bob"]; !ok {
		t.Error("remaining fighter missing after a reset")
	}
}

func TestBotMatchRunsToCompletion(t *testing.T) {
	sim := newTestSim(t)
	if _, err := sim.SpawnFighter("brawler", "bot-1", true); err != nil {
		t.Fatal(err)
	}
	if _, err := sim.SpawnFighter("duelist", "bot-2", true); err != nil {
		t.Fatal(err)
	}

	// Countdown, then let the bots fight it out. Two bots in a small arena
	// finish well inside a minute of simulated time.
	maxTicks := 60 * cfg.Sim.TickRate
	finished := false
	for i := 0; i < maxTicks; i++ {
		sim.Step()
		if entry, ok := components.Match.First(sim.ECS.World); ok {
			if components.Match.Get(entry).State == components.MatchFinished {
				finished = true
				break
			}
		}
	}

	if !finished {
		t.Fatal("bot match never finished")
	}
	if got := sim.AliveFighters(); got > 1 {
		t.Errorf("alive fighters = %d, want at most 1 after the match", got)
	}

	entry, _ := components.Match.First(sim.ECS.World)
	match := components.Match.Get(entry)
	if match.Winner == "" {
		t.Error("finished bot match has no winner")
	}
	if got := match.Scores[match.Winner]; got != 1 {
		t.Errorf("winner score = %d, want 1", got)
	}
}

func TestResetMatch(t *testing.T) {
	sim := newTestSim(t)
	a, _ := sim.SpawnFighter("brawler", "alice", false)
	sim.SpawnFighter("tank", "bob", false)

	// Damage alice so the reset provably restores full health.
	components.Health.Get(a).Current = 10
	sim.SetScores(map[string]int{"bob": 3})

	respawned := sim.ResetMatch()

	if len(respawned) != 2 {
		t.Fatalf("respawned = %d fighters, want 2", len(respawned))
	}
	if sim.ECS.World.Valid(a.Entity()) {
		t.Error("old fighter entity survived the reset")
	}

	fresh := respawned["alice"]
	hp := components.Health.Get(fresh)
	if hp.Current != hp.Max {
		t.Errorf("health after reset = %v/%v, want full", hp.Current, hp.Max)
	}
	if components.Fighter.Get(respawned["bob"]).TypeName != "tank" {
		t.Error("fighter type not preserved across reset")
	}

	entry, _ := components.Match.First(sim.ECS.World)
	match := components.Match.Get(entry)
	if match.State != components.MatchCountdown {
		t.Errorf("state after reset = %v, want %v", match.State, components.MatchCountdown)
	}
	if got := match.Scores["bob"]; got != 3 {
		t.Errorf("score after reset = %d, want scores to persist across rounds", got)
	}
}

func TestDrainOutbox(t *testing.T) {
	sim := newTestSim(t)
	sim.SpawnFighter("brawler", "alice", false)

	// Countdown transition lands in the outbox.
	stepSeconds(sim, cfg.Sim.CountdownSeconds+1)

	out := sim.DrainOutbox()
	if len(out.MatchChanges) == 0 {
		t.Fatal("drained outbox has no match changes after the countdown")
	}

	again := sim.DrainOutbox()
	if len(again.MatchChanges) != 0 || len(again.Hits) != 0 || len(again.Deaths) != 0 || again.ScoreChanged {
		t.Error("second drain was not empty")
	}
}

func TestCountdownBlocksFighting(t *testing.T) {
	sim := newTestSim(t)
	a, _ := sim.SpawnFighter("brawler", "alice", true)
	sim.SpawnFighter("brawler", "bob", true)

	// One tick: the match is still counting down, bots may not act.
	sim.Step()

	hp := components.Health.Get(a)
	if hp.Current != hp.Max {
		t.Errorf("health = %v/%v during countdown, want untouched", hp.Current, hp.Max)
	}
	obj := components.Object.Get(a)
	if obj.CenterX() != 100 || obj.CenterY() != 300 {
		t.Error("fighter moved during countdown")
	}
}
