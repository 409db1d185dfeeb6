package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"sync"
	"time"
)

// ArenaInfo describes a skirmish server visible to clients.
type ArenaInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Fighters int    `json:"fighters"`
	Version  string `json:"version"`
	Arena    string `json:"arena"`
}

type arenaRecord struct {
	ArenaInfo
	LastSeen time.Time
}

// Registry is an in-memory store of active arena servers with TTL-based expiry.
type Registry struct {
	mu     sync.RWMutex
	arenas map[string]*arenaRecord
	ttl    time.Duration
	stopCh chan struct{}
}

func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		arenas: make(map[string]*arenaRecord),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go r.cleanupLoop()
	return r
}

func (r *Registry) Stop() {
	close(r.stopCh)
}

func (r *Registry) Register(info ArenaInfo) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	id := fmt.Sprintf("%x", b)

	info.ID = id

	r.mu.Lock()
	r.arenas[id] = &arenaRecord{
		ArenaInfo: info,
		LastSeen:  time.Now(),
	}
	r.mu.Unlock()

	return id
}

func (r *Registry) Heartbeat(id string, fighters int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.arenas[id]
	if !ok {
		return false
	}
	rec.LastSeen = time.Now()
	rec.Fighters = fighters
	return true
}

func (r *Registry) List() []ArenaInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ArenaInfo, 0, len(r.arenas))
	for _, rec := range r.arenas {
		result = append(result, rec.ArenaInfo)
	}
	return result
}

func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.expire()
		}
	}
}

func (r *Registry) expire() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, rec := range r.arenas {
		if now.Sub(rec.LastSeen) >= r.ttl {
			log.Printf("[master] expired arena %q (id=%s, last seen %s ago)",
				rec.Name, id, now.Sub(rec.LastSeen).Round(time.Second))
			delete(r.arenas, id)
		}
	}
}
