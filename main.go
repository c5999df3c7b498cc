package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"terrainviz/config"
	"terrainviz/core"
)

func main() {
	runtime.LockOSThread()

	var (
		configPath = flag.String("config", "settings.json", "Path to the settings file")
		preview    = flag.Bool("preview", false, "Open a native preview window instead of serving")
		exportPath = flag.String("export", "", "Generate once, write a Wavefront OBJ to this path and exit")
		detail     = flag.Int("detail", -1, "Terrain detail exponent, grid side is 2^detail+1 (-1 = from settings)")
		maxHeight  = flag.Float64("max-height", -1, "Corner seed height bound (-1 = from settings)")
		roughness  = flag.Float64("roughness", -1, "Initial perturbation amplitude (-1 = from settings)")
		seed       = flag.Int64("seed", 0, "Deterministic terrain seed (0 = random)")
		port       = flag.Int("port", 0, "Server port (0 = from settings)")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *detail >= 0 {
		settings.Terrain.Detail = *detail
	}
	if *maxHeight >= 0 {
		settings.Terrain.MaxHeight = *maxHeight
	}
	if *roughness >= 0 {
		settings.Terrain.Roughness = *roughness
	}
	if *seed != 0 {
		settings.Terrain.Seed = *seed
	}
	if *port != 0 {
		settings.Server.Port = *port
	}
	if err := settings.Validate(); err != nil {
		log.Fatal(err)
	}

	size := (1 << uint(settings.Terrain.Detail)) + 1
	fmt.Println("=== Fractal Terrain Visualizer ===")
	fmt.Printf("Grid: %dx%d (detail %d)\n", size, size, settings.Terrain.Detail)
	fmt.Printf("Max height: %.1f, roughness: %.1f\n",
		settings.Terrain.MaxHeight, settings.Terrain.Roughness)
	if settings.Terrain.Seed != 0 {
		fmt.Printf("Seed: %d\n", settings.Terrain.Seed)
	}

	switch {
	case *exportPath != "":
		if err := runExport(settings, *exportPath); err != nil {
			log.Fatal(err)
		}
	case *preview:
		if err := runPreview(settings); err != nil {
			log.Fatal(err)
		}
	default:
		if err := startServer(settings); err != nil {
			log.Fatal(err)
		}
	}
}

// runExport generates one terrain and writes it as OBJ, for headless use.
func runExport(settings config.Settings, path string) error {
	var rng core.RandomSource
	if settings.Terrain.Seed != 0 {
		rng = core.NewRNG(settings.Terrain.Seed)
	}
	hm, err := core.NewGenerator(rng).Generate(
		settings.Terrain.Detail, settings.Terrain.MaxHeight, settings.Terrain.Roughness)
	if err != nil {
		return err
	}
	mesh, err := core.BuildMesh(hm, settings.Terrain.CellSize)
	if err != nil {
		return err
	}
	return exportOBJ(path, mesh)
}
