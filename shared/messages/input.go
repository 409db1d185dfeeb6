package messages

// PlayerInput is sent from client to server each frame with the player's
// input state. The server applies it on the next simulation tick.
type PlayerInput struct {
	Sequence  uint32  // incrementing ID, newest wins
	MoveX     float64 // desired movement direction, -1..1
	MoveY     float64
	Attack    bool  // attack requested since the last input
	Timestamp int64 // client timestamp (Unix ms)
}
