package core

import (
	"fmt"
	"log"
	"sync"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/defs"
	"github.com/automoto/skirmish/shared/arenadata"
	"github.com/automoto/skirmish/shared/messages"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// Options configures a Server.
type Options struct {
	Name        string
	Version     string // required client version; empty accepts any
	ArenaName   string
	TickRate    int
	MaxFighters int
	DefaultType string // fighter type assigned when a client does not pick one
}

// Server manages the authoritative simulation and client connections.
// The simulation is only ever touched from the game loop goroutine; router
// callbacks enqueue commands instead of mutating the world directly.
type Server struct {
	opts Options
	sim  *Simulation
	loop *GameLoop

	transport *transports.WsServerTransport
	store     *ScoreStore

	mu             sync.Mutex
	commands       []func()
	clients        map[*router.NetworkClient]struct{}
	clientEntities map[*router.NetworkClient]donburi.Entity
	clientNames    map[*router.NetworkClient]string
}

// NewServer creates a game server around a freshly built simulation.
func NewServer(arena *arenadata.ArenaData, lib defs.Library, store *ScoreStore, opts Options) *Server {
	s := &Server{
		opts:           opts,
		sim:            NewSimulation(arena, lib),
		store:          store,
		clients:        make(map[*router.NetworkClient]struct{}),
		clientEntities: make(map[*router.NetworkClient]donburi.Entity),
		clientNames:    make(map[*router.NetworkClient]string),
	}
	s.loop = NewGameLoop(s, opts.TickRate)

	if store != nil {
		if scores, err := store.Load(); err == nil && len(scores) > 0 {
			s.sim.SetScores(scores)
			log.Printf("[server] restored scoreboard with %d entries", len(scores))
		}
	}

	srvsync.UseEsync(s.sim.ECS.World)
	s.setupRouterCallbacks()

	return s
}

// Start begins the game loop and the WebSocket transport on the given port.
// It blocks until the transport stops.
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	s.loop.Stop()
}

// PlayerCount returns the number of connected clients with a fighter.
func (s *Server) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clientEntities)
}

// AddBot spawns a server-controlled fighter. Safe to call before Start.
func (s *Server) AddBot(typeName, name string) error {
	entry, err := s.sim.SpawnFighter(typeName, name, true)
	if err != nil {
		return err
	}
	return s.networkSync(entry)
}

// enqueue schedules fn to run on the game loop goroutine next tick.
func (s *Server) enqueue(fn func()) {
	s.mu.Lock()
	s.commands = append(s.commands, fn)
	s.mu.Unlock()
}

// ProcessCommands runs all queued commands on the loop goroutine.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	pending := s.commands
	s.commands = nil
	s.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
		s.mu.Lock()
		s.clients[client] = struct{}{}
		s.mu.Unlock()
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(func() { s.onJoinRequest(client, req) })
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.enqueue(func() { s.onPlayerInput(client, input) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

// onJoinRequest runs on the loop goroutine.
func (s *Server) onJoinRequest(client *router.NetworkClient, req messages.JoinRequest) {
	if s.opts.Version != "" && req.Version != s.opts.Version {
		s.sendTo(client, messages.JoinRejected{
			Reason: fmt.Sprintf("version mismatch: server wants %q", s.opts.Version),
		})
		return
	}

	if req.Spectate {
		s.sendTo(client, s.joinAccepted(0))
		log.Printf("[server] spectator joined: %s", client.Id())
		return
	}

	if s.opts.MaxFighters > 0 && s.PlayerCount() >= s.opts.MaxFighters {
		s.sendTo(client, messages.JoinRejected{Reason: "server full"})
		return
	}

	typeName := req.FighterType
	if typeName == "" {
		typeName = s.opts.DefaultType
	}
	entry, err := s.sim.SpawnFighter(typeName, req.FighterName, false)
	if err != nil {
		s.sendTo(client, messages.JoinRejected{Reason: err.Error()})
		return
	}
	if err := s.networkSync(entry); err != nil {
		log.Printf("[server] network sync for %s failed: %v", client.Id(), err)
		s.sim.RemoveFighter(entry.Entity())
		s.sendTo(client, messages.JoinRejected{Reason: "internal error"})
		return
	}

	name := components.Fighter.Get(entry).Name
	s.mu.Lock()
	s.clientEntities[client] = entry.Entity()
	s.clientNames[client] = name
	s.mu.Unlock()

	netID := esync.NetworkIdComponent.GetValue(entry)
	s.sendTo(client, s.joinAccepted(netID))
	log.Printf("[server] fighter %q joined for client %s", name, client.Id())
}

func (s *Server) joinAccepted(id esync.NetworkId) messages.JoinAccepted {
	return messages.JoinAccepted{
		NetworkID:  id,
		ServerName: s.opts.Name,
		Arena:      s.opts.ArenaName,
		TickRate:   s.opts.TickRate,
	}
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("[server] client %s disconnected", client.Id())
	}

	s.mu.Lock()
	delete(s.clients, client)
	entity, owned := s.clientEntities[client]
	if owned {
		delete(s.clientEntities, client)
		delete(s.clientNames, client)
	}
	s.mu.Unlock()

	if owned {
		s.enqueue(func() { s.sim.RemoveFighter(entity) })
	}
}

// onPlayerInput runs on the loop goroutine.
func (s *Server) onPlayerInput(client *router.NetworkClient, input messages.PlayerInput) {
	s.mu.Lock()
	entity, ok := s.clientEntities[client]
	s.mu.Unlock()

	if !ok || !s.sim.ECS.World.Valid(entity) {
		return
	}

	entry := s.sim.ECS.World.Entry(entity)
	intent := components.Intent.Get(entry)
	intent.MoveX = clampAxis(input.MoveX)
	intent.MoveY = clampAxis(input.MoveY)
	if input.Attack {
		// Latch; consumed by the attack system on the next tick.
		intent.Attack = true
	}
}

func clampAxis(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// tick runs one simulation step and flushes results to clients.
func (s *Server) tick() {
	s.ProcessCommands()
	s.sim.Step()
	s.flushOutbox()
	s.maybeRestart()

	if err := srvsync.DoSync(); err != nil {
		log.Printf("[server] sync error: %v", err)
	}
}

func (s *Server) flushOutbox() {
	out := s.sim.DrainOutbox()

	for _, hit := range out.Hits {
		s.broadcast(messages.HitEvent{
			AttackerID: uint(s.networkIDOf(hit.Attacker)),
			TargetID:   uint(s.networkIDOf(hit.Target)),
			Damage:     hit.Damage,
			Remaining:  hit.Remaining,
		})
	}
	for _, death := range out.Deaths {
		s.broadcast(messages.DeathEvent{
			VictimID:   uint(s.networkIDOf(death.Victim)),
			KillerName: death.Killer,
		})
	}
	for _, change := range out.MatchChanges {
		s.broadcast(messages.MatchStateChangeEvent{
			NewState: int(change.State),
			Timer:    change.Timer,
			Winner:   change.Winner,
		})
	}

	if out.ScoreChanged {
		scores := s.sim.Scores()
		s.broadcast(messages.ScoreUpdateEvent{Scores: scores})
		if s.store != nil {
			if err := s.store.Save(scores); err != nil {
				log.Printf("[server] could not persist scoreboard: %v", err)
			}
		}
	}
}

// maybeRestart resets the arena after a finished match has lingered, then
// rebinds client ownership to the respawned fighters.
func (s *Server) maybeRestart() {
	if !s.sim.ReadyToRestart() {
		return
	}

	respawned := s.sim.ResetMatch()
	for _, entry := range respawned {
		if err := s.networkSync(entry); err != nil {
			log.Printf("[server] resync after restart failed: %v", err)
		}
	}

	// Entities changed; rebind ownership by fighter name, the stable identity
	// across restarts (old entities may already be despawned).
	s.mu.Lock()
	for client, name := range s.clientNames {
		if entry, ok := respawned[name]; ok {
			s.clientEntities[client] = entry.Entity()
		}
	}
	s.mu.Unlock()
}

func (s *Server) networkSync(entry *donburi.Entry) error {
	entity := entry.Entity()
	return srvsync.NetworkSync(s.sim.ECS.World, &entity,
		srvsync.WithInterp(netcomponents.NetPosition),
		netcomponents.NetFighterState,
	)
}

func (s *Server) networkIDOf(ent donburi.Entity) esync.NetworkId {
	if !s.sim.ECS.World.Valid(ent) {
		return 0
	}
	entry := s.sim.ECS.World.Entry(ent)
	if !entry.HasComponent(esync.NetworkIdComponent) {
		return 0
	}
	return esync.NetworkIdComponent.GetValue(entry)
}

func (s *Server) broadcast(msg any) {
	s.mu.Lock()
	clients := make([]*router.NetworkClient, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.Unlock()

	for _, client := range clients {
		s.sendTo(client, msg)
	}
}

// sendTo hands the typed message to necs, which serializes it exactly once;
// pre-serializing here would wrap the payload in a second msgpack envelope
// the receiving router cannot dispatch.
func (s *Server) sendTo(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Printf("[server] send %T to %s: %v", msg, client.Id(), err)
	}
}
