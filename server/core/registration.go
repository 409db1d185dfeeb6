package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const heartbeatInterval = 30 * time.Second

// Registration handles registering and heartbeating with the master server
// so clients can discover this arena.
type Registration struct {
	masterURL string
	arenaID   string
	name      string
	address   string
	version   string
	server    *Server
	client    *http.Client
	stopCh    chan struct{}
}

type regRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Fighters int    `json:"fighters"`
	Version  string `json:"version"`
	Arena    string `json:"arena"`
}

type regResponse struct {
	ID string `json:"id"`
}

type heartbeatRequest struct {
	ID       string `json:"id"`
	Fighters int    `json:"fighters"`
}

func NewRegistration(masterURL, name, address, version string, server *Server) *Registration {
	return &Registration{
		masterURL: masterURL,
		name:      name,
		address:   address,
		version:   version,
		server:    server,
		client:    &http.Client{Timeout: 5 * time.Second},
		stopCh:    make(chan struct{}),
	}
}

func (r *Registration) Start() {
	if err := r.register(); err != nil {
		log.Printf("[registration] initial registration failed: %v", err)
	}
	go r.heartbeatLoop()
}

func (r *Registration) Stop() {
	close(r.stopCh)
}

func (r *Registration) register() error {
	body, err := json.Marshal(regRequest{
		Name:     r.name,
		Address:  r.address,
		Fighters: r.server.PlayerCount(),
		Version:  r.version,
		Arena:    r.server.opts.ArenaName,
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.masterURL+"/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("master returned %s", resp.Status)
	}

	var reg regResponse
	if err := json.NewDecoder(resp.Body).Decode(&reg); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	r.arenaID = reg.ID
	log.Printf("[registration] registered with master as %s", r.arenaID)
	return nil
}

func (r *Registration) heartbeatLoop() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.heartbeat(); err != nil {
				log.Printf("[registration] heartbeat failed: %v", err)
				// The master may have expired us; try a full re-register.
				if err := r.register(); err != nil {
					log.Printf("[registration] re-register failed: %v", err)
				}
			}
		}
	}
}

func (r *Registration) heartbeat() error {
	if r.arenaID == "" {
		return fmt.Errorf("not registered")
	}

	body, err := json.Marshal(heartbeatRequest{
		ID:       r.arenaID,
		Fighters: r.server.PlayerCount(),
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.masterURL+"/heartbeat", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("master returned %s", resp.Status)
	}
	return nil
}
