package systems

import (
	"log"

	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateMatch drives the round state machine: countdown until fighters may
// act, playing until at most one fighter is left standing, then finished.
func UpdateMatch(ecs *ecs.ECS) {
	entry, ok := components.Match.First(ecs.World)
	if !ok {
		return
	}
	match := components.Match.Get(entry)
	dt := cfg.Sim.StepSeconds()

	switch match.State {
	case components.MatchCountdown:
		match.Timer -= dt
		if match.Timer <= 0 {
			transition(ecs.World, match, components.MatchPlaying, 0, "")
		}

	case components.MatchPlaying:
		alive, last := countAlive(ecs)
		if alive > 1 {
			return
		}

		winner := ""
		if alive == 1 {
			winner = components.Fighter.Get(last).Name
		}
		if match.Scores == nil {
			match.Scores = make(map[string]int)
		}
		if winner != "" {
			match.Scores[winner]++
			markScoreChanged(ecs.World)
		}
		transition(ecs.World, match, components.MatchFinished, cfg.Sim.RestartSeconds, winner)

	case components.MatchFinished:
		if match.Timer > 0 {
			match.Timer -= dt
		}
	}
}

// IsMatchPlaying reports whether fighters may currently move and attack.
func IsMatchPlaying(ecs *ecs.ECS) bool {
	entry, ok := components.Match.First(ecs.World)
	if !ok {
		return false
	}
	return components.Match.Get(entry).State == components.MatchPlaying
}

// MatchReadyToRestart reports whether a finished match has lingered long
// enough for the host to reset the arena.
func MatchReadyToRestart(ecs *ecs.ECS) bool {
	entry, ok := components.Match.First(ecs.World)
	if !ok {
		return false
	}
	match := components.Match.Get(entry)
	return match.State == components.MatchFinished && match.Timer <= 0
}

// WhilePlaying wraps a system so it only runs while the match is in the
// playing state.
func WhilePlaying(fn func(*ecs.ECS)) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		if IsMatchPlaying(e) {
			fn(e)
		}
	}
}

func transition(w donburi.World, match *components.MatchData, state components.MatchState, timer float64, winner string) {
	prev := match.State
	match.State = state
	match.Timer = timer
	match.Winner = winner

	if winner != "" {
		log.Printf("[match] %s -> %s (winner: %s)", prev, state, winner)
	} else {
		log.Printf("[match] %s -> %s", prev, state)
	}

	if entry, ok := components.Outbox.First(w); ok {
		out := components.Outbox.Get(entry)
		out.MatchChanges = append(out.MatchChanges, components.MatchChangeRecord{
			State:  state,
			Timer:  timer,
			Winner: winner,
		})
	}
}

func markScoreChanged(w donburi.World) {
	if entry, ok := components.Outbox.First(w); ok {
		components.Outbox.Get(entry).ScoreChanged = true
	}
}

// countAlive returns the number of living fighters and the last one seen.
func countAlive(ecs *ecs.ECS) (int, *donburi.Entry) {
	count := 0
	var last *donburi.Entry
	tags.Fighter.Each(ecs.World, func(e *donburi.Entry) {
		if components.Alive(e) {
			count++
			last = e
		}
	})
	return count, last
}
