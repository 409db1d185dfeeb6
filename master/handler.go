package main

import (
	"encoding/json"
	"log"
	"net/http"
)

type registerRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Fighters int    `json:"fighters"`
	Version  string `json:"version"`
	Arena    string `json:"arena"`
}

type registerResponse struct {
	ID string `json:"id"`
}

type heartbeatRequest struct {
	ID       string `json:"id"`
	Fighters int    `json:"fighters"`
}

const maxRequestBody = 1 << 16 // 64 KB

func ListArenas(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		arenas := reg.List()
		if err := json.NewEncoder(w).Encode(arenas); err != nil {
			log.Printf("[master] list encode error: %v", err)
		}
	}
}

func RegisterArena(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Address == "" {
			http.Error(w, `{"error":"name and address required"}`, http.StatusBadRequest)
			return
		}

		id := reg.Register(ArenaInfo{
			Name:     req.Name,
			Address:  req.Address,
			Fighters: req.Fighters,
			Version:  req.Version,
			Arena:    req.Arena,
		})
		log.Printf("[master] registered arena %q at %s (id=%s)", req.Name, req.Address, id)

		if err := json.NewEncoder(w).Encode(registerResponse{ID: id}); err != nil {
			log.Printf("[master] register encode error: %v", err)
		}
	}
}

func HeartbeatArena(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req heartbeatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}

		if !reg.Heartbeat(req.ID, req.Fighters) {
			http.Error(w, `{"error":"unknown id"}`, http.StatusNotFound)
			return
		}
		w.Write([]byte(`{}`))
	}
}
