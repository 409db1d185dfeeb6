package components

import "github.com/yohamta/donburi"

// HitRecord is appended when damage is actually applied to a target.
type HitRecord struct {
	Attacker  donburi.Entity
	Target    donburi.Entity
	Damage    float64
	Remaining float64 // target health after the hit
}

// DeathRecord is appended when a fighter enters its death sequence.
type DeathRecord struct {
	Victim donburi.Entity
	Killer string
}

// MatchChangeRecord is appended when the match state machine transitions.
type MatchChangeRecord struct {
	State  MatchState
	Timer  float64
	Winner string
}

// OutboxData collects simulation events for whoever runs the world. The
// server drains it after each tick and turns records into network broadcasts.
// The simulation itself never touches the transport.
type OutboxData struct {
	Hits         []HitRecord
	Deaths       []DeathRecord
	MatchChanges []MatchChangeRecord
	ScoreChanged bool
}

// Reset clears all queued records in place.
func (o *OutboxData) Reset() {
	o.Hits = o.Hits[:0]
	o.Deaths = o.Deaths[:0]
	o.MatchChanges = o.MatchChanges[:0]
	o.ScoreChanged = false
}

var Outbox = donburi.NewComponentType[OutboxData]()
