package systems

import (
	"math"
	"testing"

	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/yohamta/donburi/ecs"
)

func matchData(e *ecs.ECS, t *testing.T) *components.MatchData {
	t.Helper()
	entry, ok := components.Match.First(e.World)
	if !ok {
		t.Fatal("no match entity")
	}
	return components.Match.Get(entry)
}

func TestUpdateMatchCountdownToPlaying(t *testing.T) {
	e, space := newTestECS(t)
	spawnFighter(t, e, space, fighterOpts{name: "a", x: 100, y: 100, health: 100})
	spawnFighter(t, e, space, fighterOpts{name: "b", x: 300, y: 100, health: 100})

	match := matchData(e, t)
	match.State = components.MatchCountdown
	match.Timer = cfg.Sim.CountdownSeconds

	ticks := int(math.Ceil(cfg.Sim.CountdownSeconds / cfg.Sim.StepSeconds()))
	for i := 0; i < ticks; i++ {
		if match.State != components.MatchCountdown {
			t.Fatalf("left countdown after %d ticks, want %d", i, ticks)
		}
		UpdateMatch(e)
	}

	if match.State != components.MatchPlaying {
		t.Errorf("state = %v, want %v", match.State, components.MatchPlaying)
	}
}

func TestUpdateMatchFinishesWithWinner(t *testing.T) {
	e, space := newTestECS(t)
	winner := spawnFighter(t, e, space, fighterOpts{name: "winner", x: 100, y: 100, health: 100})
	loser := spawnFighter(t, e, space, fighterOpts{name: "loser", x: 300, y: 100, health: 100})
	_ = winner

	UpdateMatch(e)
	if got := matchData(e, t).State; got != components.MatchPlaying {
		t.Fatalf("state = %v, want still playing with two fighters alive", got)
	}

	queueDamage(loser, 200, "winner")
	UpdateCombat(e)
	UpdateMatch(e)

	match := matchData(e, t)
	if match.State != components.MatchFinished {
		t.Errorf("state = %v, want %v", match.State, components.MatchFinished)
	}
	if match.Winner != "winner" {
		t.Errorf("winner = %q, want %q", match.Winner, "winner")
	}
	if got := match.Scores["winner"]; got != 1 {
		t.Errorf("score = %d, want 1", got)
	}

	out := outbox(e)
	if !out.ScoreChanged {
		t.Error("score change was not flagged")
	}
	if len(out.MatchChanges) == 0 || out.MatchChanges[len(out.MatchChanges)-1].State != components.MatchFinished {
		t.Error("match state change was not recorded")
	}
}

func TestUpdateMatchDrawScoresNobody(t *testing.T) {
	e, space := newTestECS(t)
	a := spawnFighter(t, e, space, fighterOpts{name: "a", x: 100, y: 100, health: 100})
	b := spawnFighter(t, e, space, fighterOpts{name: "b", x: 300, y: 100, health: 100})

	queueDamage(a, 200, "b")
	queueDamage(b, 200, "a")
	UpdateCombat(e)
	UpdateMatch(e)

	match := matchData(e, t)
	if match.State != components.MatchFinished {
		t.Errorf("state = %v, want %v", match.State, components.MatchFinished)
	}
	if match.Winner != "" {
		t.Errorf("winner = %q, want none in a draw", match.Winner)
	}
	if len(match.Scores) != 0 {
		t.Errorf("scores = %v, want empty", match.Scores)
	}
}

func TestMatchReadyToRestart(t *testing.T) {
	e, space := newTestECS(t)
	spawnFighter(t, e, space, fighterOpts{name: "a", x: 100, y: 100, health: 100})

	UpdateMatch(e) // one fighter left: finish immediately

	if MatchReadyToRestart(e) {
		t.Fatal("ready to restart before the finish timer ran out")
	}

	ticks := int(math.Ceil(cfg.Sim.RestartSeconds/cfg.Sim.StepSeconds())) + 1
	for i := 0; i < ticks; i++ {
		UpdateMatch(e)
	}

	if !MatchReadyToRestart(e) {
		t.Error("not ready to restart after the finish timer ran out")
	}
}

func TestWhilePlayingGatesSystems(t *testing.T) {
	e, _ := newTestECS(t)

	ran := false
	wrapped := WhilePlaying(func(*ecs.ECS) { ran = true })

	matchData(e, t).State = components.MatchCountdown
	wrapped(e)
	if ran {
		t.Error("wrapped system ran outside the playing state")
	}

	matchData(e, t).State = components.MatchPlaying
	wrapped(e)
	if !ran {
		t.Error("wrapped system did not run in the playing state")
	}
}
