package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

func main() {
	port := flag.Uint("port", 8090, "Master server port")
	ttl := flag.Duration("ttl", 90*time.Second, "Arena expiry after last heartbeat")
	flag.Parse()

	reg := NewRegistry(*ttl)
	defer reg.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /arenas", ListArenas(reg))
	mux.HandleFunc("POST /register", RegisterArena(reg))
	mux.HandleFunc("POST /heartbeat", HeartbeatArena(reg))

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("[master] listening on %s (ttl: %s)", addr, *ttl)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("[master] server error: %v", err)
	}
}
