package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/defs"
	"github.com/automoto/skirmish/server/core"
	"github.com/automoto/skirmish/shared/arenadata"
	"github.com/automoto/skirmish/shared/protocol"
)

func main() {
	port := flag.Uint("port", 7373, "Server port")
	tickRate := flag.Int("tickrate", 20, "Server tick rate (updates per second)")
	name := flag.String("name", "Skirmish Server", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	arenaDir := flag.String("arenas", "assets/arenas", "Directory containing TMX arena files")
	arenaName := flag.String("arena", "pit", "Arena to host")
	fightersFile := flag.String("fighters", "", "YAML fighter definitions (empty = built-in library)")
	defaultType := flag.String("defaulttype", "brawler", "Fighter type for clients that do not pick one")
	maxFighters := flag.Int("maxfighters", 8, "Maximum simultaneous player fighters")
	bots := flag.Int("bots", 2, "Number of bot fighters to spawn")
	botType := flag.String("bottype", "brawler", "Fighter type used by bots")
	masterURL := flag.String("master", "", "Master server URL to announce to (empty = none)")
	publicAddr := flag.String("addr", "", "Public address announced to the master")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	// The fixed timestep must agree with the loop rate or every
	// seconds-based timer drifts from wall clock.
	cfg.Sim.TickRate = *tickRate

	lib := defs.Default()
	if *fightersFile != "" {
		var err error
		if lib, err = defs.LoadFile(*fightersFile); err != nil {
			log.Fatalf("Failed to load fighter definitions: %v", err)
		}
	}

	arena, err := arenadata.Load(os.DirFS("."), fmt.Sprintf("%s/%s.tmx", *arenaDir, *arenaName))
	if err != nil {
		log.Fatalf("Failed to load arena: %v", err)
	}

	store, err := core.OpenScoreStore()
	if err != nil {
		log.Printf("Warning: scoreboard persistence unavailable: %v", err)
		store = nil
	}

	server := core.NewServer(arena, lib, store, core.Options{
		Name:        *name,
		Version:     *version,
		ArenaName:   *arenaName,
		TickRate:    *tickRate,
		MaxFighters: *maxFighters,
		DefaultType: *defaultType,
	})

	for i := 0; i < *bots; i++ {
		if err := server.AddBot(*botType, fmt.Sprintf("bot-%d", i+1)); err != nil {
			log.Fatalf("Failed to spawn bot: %v", err)
		}
	}

	var reg *core.Registration
	if *masterURL != "" {
		addr := *publicAddr
		if addr == "" {
			addr = fmt.Sprintf("localhost:%d", *port)
		}
		reg = core.NewRegistration(*masterURL, *name, addr, *version, server)
		reg.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		if reg != nil {
			reg.Stop()
		}
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting %q on port %d (arena: %s, tick rate: %d/s, version: %s)",
		*name, *port, *arenaName, *tickRate, *version)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
