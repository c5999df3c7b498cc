package main

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/gorilla/websocket"

	"terrainviz/config"
	"terrainviz/core"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// MeshMessage is the snapshot pushed to every connected browser client.
// Field shapes line up with what the three.js side feeds straight into a
// BufferGeometry.
type MeshMessage struct {
	Type     string        `json:"type"`
	Size     int           `json:"size"`
	Vertices [][3]float64  `json:"vertices"`
	Normals  [][3]float64  `json:"normals"`
	UVs      [][2]float64  `json:"uvs"`
	Indices  []int32       `json:"indices"`
	Heights  []float64     `json:"heights"`
	Params   ParamsMessage `json:"params"`
}

// ParamsMessage mirrors config.TerrainSettings on the wire.
type ParamsMessage struct {
	Detail    int     `json:"detail"`
	MaxHeight float64 `json:"maxHeight"`
	Roughness float64 `json:"roughness"`
	Seed      int64   `json:"seed"`
}

// ControlMessage is what the browser GUI sends when the user moves a slider.
// Absent fields keep their current values.
type ControlMessage struct {
	Detail    *int     `json:"detail"`
	MaxHeight *float64 `json:"maxHeight"`
	Roughness *float64 `json:"roughness"`
	Seed      *int64   `json:"seed"`
}

// ErrorMessage reports a rejected regeneration request back to its sender.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// TerrainServer owns the current terrain and the set of connected clients.
// Regeneration requests serialize on mu, so when several arrive in a burst
// the clients see snapshots in arrival order and the last request wins.
type TerrainServer struct {
	settings config.Settings

	mu      sync.Mutex
	params  config.TerrainSettings
	heights *core.HeightMap
	mesh    *core.Mesh

	clientsMutex sync.RWMutex
	clients      map[*websocket.Conn]*sync.Mutex
}

// NewTerrainServer generates the initial terrain from the configured
// parameters.
func NewTerrainServer(settings config.Settings) (*TerrainServer, error) {
	s := &TerrainServer{
		settings: settings,
		clients:  make(map[*websocket.Conn]*sync.Mutex),
	}
	if err := s.regenerate(settings.Terrain); err != nil {
		return nil, err
	}
	return s, nil
}

// regenerate builds a fresh height map and mesh from params and swaps them
// in. The old grid is never mutated, so clients holding a snapshot keep it.
func (s *TerrainServer) regenerate(params config.TerrainSettings) error {
	var rng core.RandomSource
	if params.Seed != 0 {
		rng = core.NewRNG(params.Seed)
	}
	gen := core.NewGenerator(rng)

	hm, err := gen.Generate(params.Detail, params.MaxHeight, params.Roughness)
	if err != nil {
		return err
	}
	mesh, err := core.BuildMesh(hm, params.CellSize)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.params = params
	s.heights = hm
	s.mesh = mesh
	s.mu.Unlock()
	return nil
}

// snapshot assembles the current terrain into a wire message.
func (s *TerrainServer) snapshot() MeshMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MeshMessage{
		Type:     "mesh",
		Size:     s.heights.Size,
		Vertices: s.mesh.Vertices,
		Normals:  s.mesh.Normals,
		UVs:      s.mesh.UVs,
		Indices:  s.mesh.Indices,
		Heights:  s.heights.Values(),
		Params: ParamsMessage{
			Detail:    s.params.Detail,
			MaxHeight: s.params.MaxHeight,
			Roughness: s.params.Roughness,
			Seed:      s.params.Seed,
		},
	}
}

func (s *TerrainServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveHome)
	mux.HandleFunc("/ws", s.handleWebSocket)
	static := filepath.Join(s.settings.Server.StaticDir, "static")
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(static))))
	return mux
}

func (s *TerrainServer) serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.settings.Server.StaticDir, "index.html"))
}

func (s *TerrainServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMutex.Lock()
	s.clients[conn] = connMutex
	s.clientsMutex.Unlock()
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
	}()

	// New clients get the current terrain right away.
	s.sendTo(conn, s.snapshot())

	for {
		var msg ControlMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Println("WebSocket read error:", err)
			break
		}

		params := s.currentParams()
		if msg.Detail != nil {
			params.Detail = *msg.Detail
		}
		if msg.MaxHeight != nil {
			params.MaxHeight = *msg.MaxHeight
		}
		if msg.Roughness != nil {
			params.Roughness = *msg.Roughness
		}
		if msg.Seed != nil {
			params.Seed = *msg.Seed
		}

		if params.Detail > config.MaxDetail {
			s.sendTo(conn, ErrorMessage{
				Type:  "error",
				Error: fmt.Sprintf("detail must be at most %d", config.MaxDetail),
			})
			continue
		}
		if err := s.regenerate(params); err != nil {
			s.sendTo(conn, ErrorMessage{Type: "error", Error: err.Error()})
			continue
		}

		log.Printf("regenerated terrain: detail=%d maxHeight=%g roughness=%g seed=%d",
			params.Detail, params.MaxHeight, params.Roughness, params.Seed)
		s.broadcast(s.snapshot())
	}
}

func (s *TerrainServer) currentParams() config.TerrainSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// sendTo writes one message to a single client under its write mutex.
func (s *TerrainServer) sendTo(conn *websocket.Conn, v any) {
	s.clientsMutex.RLock()
	mutex, ok := s.clients[conn]
	s.clientsMutex.RUnlock()
	if !ok {
		return
	}
	mutex.Lock()
	if err := conn.WriteJSON(v); err != nil {
		log.Println("WebSocket write error:", err)
	}
	mutex.Unlock()
}

// broadcast pushes a snapshot to every client, dropping the ones whose
// connection has gone away.
func (s *TerrainServer) broadcast(msg MeshMessage) {
	s.clientsMutex.RLock()
	var failed []*websocket.Conn
	for client, mutex := range s.clients {
		mutex.Lock()
		err := client.WriteJSON(msg)
		mutex.Unlock()
		if err != nil {
			log.Println("WebSocket write error:", err)
			client.Close()
			failed = append(failed, client)
		}
	}
	s.clientsMutex.RUnlock()

	if len(failed) > 0 {
		s.clientsMutex.Lock()
		for _, client := range failed {
			delete(s.clients, client)
		}
		s.clientsMutex.Unlock()
	}
}

func startServer(settings config.Settings) error {
	server, err := NewTerrainServer(settings)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", settings.Server.Port)
	fmt.Printf("Server starting on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, server.routes())
}
