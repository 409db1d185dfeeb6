package messages

// HitEvent is broadcast when an attack connects.
type HitEvent struct {
	AttackerID uint // NetworkId of attacker (0 = environment)
	TargetID   uint // NetworkId of target
	Damage     float64
	Remaining  float64 // target health after the hit
}

// DeathEvent is broadcast when a fighter dies.
type DeathEvent struct {
	VictimID   uint   // NetworkId of victim
	KillerName string // display name of the killer ("" if environmental)
}

// MatchStateChangeEvent is broadcast when the match state machine transitions.
type MatchStateChangeEvent struct {
	NewState int     // components.MatchState value
	Timer    float64 // countdown or remaining time
	Winner   string  // set when the match finishes
}

// ScoreUpdateEvent is broadcast when the win tally changes.
type ScoreUpdateEvent struct {
	Scores map[string]int // fighter name -> wins
}
