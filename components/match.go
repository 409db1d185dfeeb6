package components

import "github.com/yohamta/donburi"

type MatchState int

const (
	MatchCountdown MatchState = iota
	MatchPlaying
	MatchFinished
)

func (s MatchState) String() string {
	switch s {
	case MatchCountdown:
		return "countdown"
	case MatchPlaying:
		return "playing"
	case MatchFinished:
		return "finished"
	}
	return "unknown"
}

// MatchData tracks the round state machine. Exactly one entity carries it.
type MatchData struct {
	State  MatchState
	Timer  float64 // seconds remaining in the current state, where applicable
	Winner string  // set when State == MatchFinished; "" means a draw
	Scores map[string]int
}

var Match = donburi.NewComponentType[MatchData]()
