package scenes

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/network"
	"github.com/automoto/skirmish/shared/arenadata"
	"github.com/automoto/skirmish/shared/messages"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leap-fish/necs/esync"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	killFeedTTL  = 4 * time.Second
	killFeedSize = 5
)

// fighterView is the client-side mirror of one synced fighter.
type fighterView struct {
	X, Y  float64
	State netcomponents.NetFighterStateData

	flash         *gween.Tween // hit flash easing, white overlay
	flashStrength float32
}

type killFeedLine struct {
	text    string
	expires time.Time
}

// ArenaScene renders the synced world and forwards local input. All state is
// derived from server snapshots; nothing here is authoritative.
type ArenaScene struct {
	client    *network.Client
	spectate  bool
	arena     *arenadata.ArenaData
	fighters  map[esync.NetworkId]*fighterView
	inputSeq  uint32
	killFeed  []killFeedLine
	matchText string
	scores    map[string]int
	loadArena func(name string) (*arenadata.ArenaData, error)
}

// NewArenaScene creates the scene. loadArena resolves an arena name sent by
// the server to its local geometry (normally from the embedded assets).
func NewArenaScene(client *network.Client, spectate bool, loadArena func(string) (*arenadata.ArenaData, error)) *ArenaScene {
	return &ArenaScene{
		client:    client,
		spectate:  spectate,
		fighters:  make(map[esync.NetworkId]*fighterView),
		loadArena: loadArena,
		matchText: "connecting...",
	}
}

func (s *ArenaScene) Update() {
	if s.client.State() != network.StateJoinedGame {
		if err := s.client.LastError(); err != nil {
			s.matchText = err.Error()
		}
		return
	}

	if s.arena == nil {
		arena, err := s.loadArena(s.client.Arena())
		if err != nil {
			log.Printf("[client] could not load arena %q: %v", s.client.Arena(), err)
			s.matchText = "unknown arena: " + s.client.Arena()
		} else {
			s.arena = arena
			s.matchText = ""
		}
	}

	if !s.spectate {
		s.sendInput()
	}
	s.applySnapshot()
	s.pollEvents()
	s.updateFlashes()
	s.expireKillFeed()
}

func (s *ArenaScene) sendInput() {
	var input messages.PlayerInput
	s.inputSeq++
	input.Sequence = s.inputSeq
	input.Timestamp = time.Now().UnixMilli()

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		input.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		input.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		input.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		input.MoveY += 1
	}
	input.Attack = inpututil.IsKeyJustPressed(ebiten.KeySpace)

	if err := s.client.SendInput(input); err != nil {
		log.Printf("[client] send input: %v", err)
	}
}

func (s *ArenaScene) applySnapshot() {
	snapshot := s.client.LatestSnapshot()
	if snapshot == nil {
		return
	}

	present := make(map[esync.NetworkId]bool, len(*snapshot))
	for _, ent := range *snapshot {
		present[ent.Id] = true

		view, ok := s.fighters[ent.Id]
		if !ok {
			view = &fighterView{}
			s.fighters[ent.Id] = view
		}

		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			switch v := instance.(type) {
			case netcomponents.NetPositionData:
				view.X = v.X
				view.Y = v.Y
			case netcomponents.NetFighterStateData:
				view.State = v
			}
		}
	}

	// Entities absent from the snapshot have despawned.
	for id := range s.fighters {
		if !present[id] {
			delete(s.fighters, id)
		}
	}
}

func (s *ArenaScene) pollEvents() {
	for {
		evt, ok := s.client.PollHit()
		if !ok {
			break
		}
		if view, ok := s.fighters[esync.NetworkId(evt.TargetID)]; ok {
			view.flash = gween.New(1, 0, 0.25, ease.OutQuad)
		}
	}

	for {
		evt, ok := s.client.PollDeath()
		if !ok {
			break
		}
		victim := "fighter"
		if view, ok := s.fighters[esync.NetworkId(evt.VictimID)]; ok && view.State.Name != "" {
			victim = view.State.Name
		}
		line := victim + " died"
		if evt.KillerName != "" {
			line = fmt.Sprintf("%s killed %s", evt.KillerName, victim)
		}
		s.pushKillFeed(line)
	}

	for {
		evt, ok := s.client.PollMatchState()
		if !ok {
			break
		}
		switch components.MatchState(evt.NewState) {
		case components.MatchCountdown:
			s.matchText = "get ready"
		case components.MatchPlaying:
			s.matchText = "fight!"
		case components.MatchFinished:
			if evt.Winner != "" {
				s.matchText = evt.Winner + " wins!"
			} else {
				s.matchText = "draw"
			}
		}
	}

	for {
		evt, ok := s.client.PollScores()
		if !ok {
			break
		}
		s.scores = evt.Scores
	}
}

func (s *ArenaScene) updateFlashes() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	for _, view := range s.fighters {
		if view.flash == nil {
			continue
		}
		v, done := view.flash.Update(dt)
		view.flashStrength = v
		if done {
			view.flash = nil
			view.flashStrength = 0
		}
	}
}

func (s *ArenaScene) pushKillFeed(text string) {
	s.killFeed = append(s.killFeed, killFeedLine{
		text:    text,
		expires: time.Now().Add(killFeedTTL),
	})
	if len(s.killFeed) > killFeedSize {
		s.killFeed = s.killFeed[len(s.killFeed)-killFeedSize:]
	}
}

func (s *ArenaScene) expireKillFeed() {
	now := time.Now()
	kept := s.killFeed[:0]
	for _, line := range s.killFeed {
		if line.expires.After(now) {
			kept = append(kept, line)
		}
	}
	s.killFeed = kept
}

func (s *ArenaScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 24, B: 28, A: 255})

	if s.arena != nil {
		for _, wall := range s.arena.Walls {
			vector.DrawFilledRect(screen,
				float32(wall.X), float32(wall.Y), float32(wall.W), float32(wall.H),
				color.RGBA{R: 70, G: 70, B: 80, A: 255}, false)
		}
	}

	for id, view := range s.fighters {
		s.drawFighter(screen, id, view)
	}

	s.drawHUD(screen)
}

func (s *ArenaScene) drawFighter(screen *ebiten.Image, id esync.NetworkId, view *fighterView) {
	st := view.State
	w := float32(st.Width)
	h := float32(st.Height)
	if w == 0 || h == 0 {
		return
	}
	x := float32(view.X)
	y := float32(view.Y)

	body := color.RGBA{R: st.TintR, G: st.TintG, B: st.TintB, A: 255}
	if !st.Alive {
		body = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	} else if view.flashStrength > 0 {
		f := view.flashStrength
		body.R = lighten(body.R, f)
		body.G = lighten(body.G, f)
		body.B = lighten(body.B, f)
	}
	vector.DrawFilledRect(screen, x, y, w, h, body, false)

	if id == s.client.NetworkID() {
		vector.StrokeRect(screen, x-2, y-2, w+4, h+4, 1, color.White, false)
	}

	if st.Alive && st.MaxHealth > 0 {
		ratio := float32(st.Health / st.MaxHealth)
		vector.DrawFilledRect(screen, x, y-8, w, 4, color.RGBA{R: 40, G: 40, B: 40, A: 255}, false)
		vector.DrawFilledRect(screen, x, y-8, w*ratio, 4, color.RGBA{R: 80, G: 220, B: 80, A: 255}, false)
	}

	ebitenutil.DebugPrintAt(screen, st.Name, int(view.X), int(view.Y)+int(h)+2)
}

func lighten(c uint8, f float32) uint8 {
	v := float32(c) + (255-float32(c))*f
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func (s *ArenaScene) drawHUD(screen *ebiten.Image) {
	hud := s.matchText
	if s.client.State() == network.StateJoinedGame {
		hud = fmt.Sprintf("%s | %s", s.client.ServerName(), s.matchText)
	}
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)

	line := 2
	for name, wins := range s.scores {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: %d", name, wins), 8, 8+line*14)
		line++
	}

	for i, feed := range s.killFeed {
		ebitenutil.DebugPrintAt(screen, feed.text, 8, 8+(line+1+i)*14)
	}
}
