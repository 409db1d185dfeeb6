package main

import (
	"flag"
	"log"

	"github.com/automoto/skirmish/assets"
	"github.com/automoto/skirmish/network"
	"github.com/automoto/skirmish/scenes"
	"github.com/automoto/skirmish/shared/arenadata"
	"github.com/automoto/skirmish/shared/protocol"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene  Scene
	width  int
	height int
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

func main() {
	addr := flag.String("addr", "localhost:7373", "Server address")
	name := flag.String("name", "fighter", "Fighter display name")
	fighterType := flag.String("type", "", "Fighter type (empty = server default)")
	version := flag.String("version", "", "Client version string sent to the server")
	spectate := flag.Bool("spectate", false, "Join as a spectator")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	client := network.NewClient()
	client.Connect(*addr, *version, *name, *fighterType, *spectate)
	defer client.Disconnect()

	scene := scenes.NewArenaScene(client, *spectate, func(arenaName string) (*arenadata.ArenaData, error) {
		return arenadata.Load(assets.Arenas, "arenas/"+arenaName+".tmx")
	})

	game := &Game{scene: scene, width: 800, height: 608}
	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle("Skirmish")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}
