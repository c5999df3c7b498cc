package main

import (
	"fmt"
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"terrainviz/config"
	"terrainviz/core"
)

// previewTerrain pairs the raylib model with the core data it was built
// from, so regeneration and export stay in sync with what is on screen.
type previewTerrain struct {
	model   rl.Model
	texture rl.Texture2D
	mesh    *core.Mesh
	heights *core.HeightMap
	extent  float32
}

func (t *previewTerrain) unload() {
	rl.UnloadTexture(t.texture)
	rl.UnloadModel(t.model)
}

// heightImage converts the grid to a grayscale image. GenMeshHeightmap reads
// the red channel, and the same image doubles as the model's texture.
func heightImage(hm *core.HeightMap) *rl.Image {
	img := rl.GenImageColor(hm.Size, hm.Size, color.RGBA{0, 0, 0, 255})
	min, max := hm.Bounds()
	for y := 0; y < hm.Size; y++ {
		for x := 0; x < hm.Size; x++ {
			g := uint8(hm.Normalized(x, y, min, max) * 255)
			rl.ImageDrawPixel(img, int32(x), int32(y), color.RGBA{g, g, g, 255})
		}
	}
	return img
}

func buildPreviewTerrain(params config.TerrainSettings) (*previewTerrain, error) {
	var rng core.RandomSource
	if params.Seed != 0 {
		rng = core.NewRNG(params.Seed)
	}
	hm, err := core.NewGenerator(rng).Generate(params.Detail, params.MaxHeight, params.Roughness)
	if err != nil {
		return nil, err
	}
	mesh, err := core.BuildMesh(hm, params.CellSize)
	if err != nil {
		return nil, err
	}

	min, max := hm.Bounds()
	extent := float32(params.CellSize) * float32(hm.Size-1)

	img := heightImage(hm)
	defer rl.UnloadImage(img)

	rlMesh := rl.GenMeshHeightmap(*img, rl.NewVector3(extent, float32(max-min), extent))
	model := rl.LoadModelFromMesh(rlMesh)
	texture := rl.LoadTextureFromImage(img)
	rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, texture)

	return &previewTerrain{
		model:   model,
		texture: texture,
		mesh:    mesh,
		heights: hm,
		extent:  extent,
	}, nil
}

// runPreview opens a native window with an orbital camera around the
// generated terrain. R regenerates with a fresh seed, E writes terrain.obj,
// up/down change the detail exponent.
func runPreview(settings config.Settings) error {
	rl.InitWindow(int32(settings.Window.Width), int32(settings.Window.Height), "terrainviz")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := settings.Terrain
	terrain, err := buildPreviewTerrain(params)
	if err != nil {
		return err
	}
	defer func() { terrain.unload() }()

	camera := rl.Camera3D{
		Position:   rl.NewVector3(terrain.extent, terrain.extent*0.6, terrain.extent),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	status := ""
	for !rl.WindowShouldClose() {
		rl.UpdateCamera(&camera, rl.CameraOrbital)

		rebuild := false
		if rl.IsKeyPressed(rl.KeyR) {
			params.Seed = time.Now().UnixNano()
			rebuild = true
		}
		if rl.IsKeyPressed(rl.KeyUp) && params.Detail < config.MaxDetail {
			params.Detail++
			rebuild = true
		}
		if rl.IsKeyPressed(rl.KeyDown) && params.Detail > 0 {
			params.Detail--
			rebuild = true
		}
		if rebuild {
			next, err := buildPreviewTerrain(params)
			if err != nil {
				status = err.Error()
			} else {
				terrain.unload()
				terrain = next
				status = fmt.Sprintf("detail=%d seed=%d", params.Detail, params.Seed)
			}
		}
		if rl.IsKeyPressed(rl.KeyE) {
			if err := exportOBJ("terrain.obj", terrain.mesh); err != nil {
				status = err.Error()
			} else {
				status = "exported terrain.obj"
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.SkyBlue)
		rl.BeginMode3D(camera)
		rl.DrawModel(terrain.model,
			rl.NewVector3(-terrain.extent/2, 0, -terrain.extent/2), 1, rl.White)
		rl.EndMode3D()
		rl.DrawText("R regenerate  UP/DOWN detail  E export", 10, 10, 20, rl.DarkGray)
		if status != "" {
			rl.DrawText(status, 10, 36, 20, rl.DarkGray)
		}
		rl.DrawFPS(int32(settings.Window.Width)-100, 10)
		rl.EndDrawing()
	}
	return nil
}
