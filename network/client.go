package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/skirmish/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

// Client manages a WebSocket connection to a skirmish server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	networkID  esync.NetworkId
	serverName string
	arena      string
	tickRate   int
	conn       *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	hitCh   chan messages.HitEvent
	deathCh chan messages.DeathEvent
	matchCh chan messages.MatchStateChangeEvent
	scoreCh chan messages.ScoreUpdateEvent
}

func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		hitCh:      make(chan messages.HitEvent, 16),
		deathCh:    make(chan messages.DeathEvent, 8),
		matchCh:    make(chan messages.MatchStateChangeEvent, 4),
		scoreCh:    make(chan messages.ScoreUpdateEvent, 4),
	}
}

// Connect dials the server in a background goroutine and initiates the join
// handshake.
func (c *Client) Connect(address, version, fighterName, fighterType string, spectate bool) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.send(messages.JoinRequest{
			Version:     version,
			FighterName: fighterName,
			FighterType: fighterType,
			Spectate:    spectate,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: networkID=%d server=%s arena=%s tickRate=%d",
			msg.NetworkID, msg.ServerName, msg.Arena, msg.TickRate)
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.serverName = msg.ServerName
		c.arena = msg.Arena
		c.tickRate = msg.TickRate
		c.state = StateJoinedGame
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.HitEvent) {
		select {
		case c.hitCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.DeathEvent) {
		select {
		case c.deathCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.MatchStateChangeEvent) {
		select {
		case c.matchCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.ScoreUpdateEvent) {
		select {
		case c.scoreCh <- evt:
		default:
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

// SendInput ships the local player's input state to the server.
func (c *Client) SendInput(input messages.PlayerInput) error {
	return c.send(input)
}

func (c *Client) send(msg any) error {
	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize %T: %w", msg, err)
	}

	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}
	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	log.Printf("[client] %v", err)
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) Arena() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.arena
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snapshot := <-c.snapshotCh:
		return &snapshot
	default:
		return nil
	}
}

// PollHit returns the next queued hit event, if any. Non-blocking.
func (c *Client) PollHit() (messages.HitEvent, bool) {
	select {
	case evt := <-c.hitCh:
		return evt, true
	default:
		return messages.HitEvent{}, false
	}
}

// PollDeath returns the next queued death event, if any. Non-blocking.
func (c *Client) PollDeath() (messages.DeathEvent, bool) {
	select {
	case evt := <-c.deathCh:
		return evt, true
	default:
		return messages.DeathEvent{}, false
	}
}

// PollMatchState returns the next queued match state change, if any. Non-blocking.
func (c *Client) PollMatchState() (messages.MatchStateChangeEvent, bool) {
	select {
	case evt := <-c.matchCh:
		return evt, true
	default:
		return messages.MatchStateChangeEvent{}, false
	}
}

// PollScores returns the next queued score update, if any. Non-blocking.
func (c *Client) PollScores() (messages.ScoreUpdateEvent, bool) {
	select {
	case evt := <-c.scoreCh:
		return evt, true
	default:
		return messages.ScoreUpdateEvent{}, false
	}
}
