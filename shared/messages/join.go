package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request a fighter.
type JoinRequest struct {
	Version     string
	FighterName string
	FighterType string // key into the fighter definition library; "" = server default
	Spectate    bool   // join without a fighter
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	NetworkID  esync.NetworkId // the client's fighter (0 for spectators)
	ServerName string
	Arena      string
	TickRate   int
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
