package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings captures everything tunable about the visualizer. The zero file
// case is fine: Load falls back to Default when settings.json is absent.
type Settings struct {
	Terrain TerrainSettings `json:"terrain"`
	Server  ServerSettings  `json:"server"`
	Window  WindowSettings  `json:"window"`
}

type TerrainSettings struct {
	// Detail is the grid exponent: the height map has 2^Detail + 1 vertices
	// per side.
	Detail    int     `json:"detail"`
	MaxHeight float64 `json:"maxHeight"`
	Roughness float64 `json:"roughness"`
	// Seed selects a reproducible terrain; 0 means a fresh one every run.
	Seed     int64   `json:"seed"`
	CellSize float64 `json:"cellSize"`
}

type ServerSettings struct {
	Port      int    `json:"port"`
	StaticDir string `json:"staticDir"`
}

type WindowSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MaxDetail caps the grid exponent. Detail 10 is a 1025x1025 grid, about a
// million vertices, already past what the browser client renders smoothly.
const MaxDetail = 10

// Default returns the settings used when no settings.json exists.
func Default() Settings {
	return Settings{
		Terrain: TerrainSettings{
			Detail:    7,
			MaxHeight: 40,
			Roughness: 30,
			Seed:      0,
			CellSize:  2,
		},
		Server: ServerSettings{
			Port:      8080,
			StaticDir: "web",
		},
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
		},
	}
}

// Load reads settings from path, layering the file over the defaults. A
// missing file is not an error.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("settings: %s: %w", path, err)
	}
	return settings, nil
}

// Validate rejects parameter combinations the generator or server would
// refuse anyway, so bad files fail at startup instead of mid-session.
func (s Settings) Validate() error {
	if s.Terrain.Detail < 0 {
		return fmt.Errorf("terrain.detail must be non-negative, got %d", s.Terrain.Detail)
	}
	if s.Terrain.Detail > MaxDetail {
		return fmt.Errorf("terrain.detail must be at most %d, got %d", MaxDetail, s.Terrain.Detail)
	}
	if s.Terrain.MaxHeight < 0 {
		return fmt.Errorf("terrain.maxHeight must be non-negative, got %g", s.Terrain.MaxHeight)
	}
	if s.Terrain.Roughness < 0 {
		return fmt.Errorf("terrain.roughness must be non-negative, got %g", s.Terrain.Roughness)
	}
	if s.Terrain.CellSize <= 0 {
		return fmt.Errorf("terrain.cellSize must be positive, got %g", s.Terrain.CellSize)
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", s.Server.Port)
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window dimensions must be positive, got %dx%d", s.Window.Width, s.Window.Height)
	}
	return nil
}
