package core

import (
	"math"
	"testing"
)

func TestBuildMeshShape(t *testing.T) {
	hm, err := NewGenerator(NewRNG(3)).Generate(3, 10, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mesh, err := BuildMesh(hm, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	size := hm.Size
	if got, want := len(mesh.Vertices), size*size; got != want {
		t.Fatalf("%d vertices, want %d", got, want)
	}
	if got, want := len(mesh.Normals), size*size; got != want {
		t.Fatalf("%d normals, want %d", got, want)
	}
	if got, want := len(mesh.UVs), size*size; got != want {
		t.Fatalf("%d uvs, want %d", got, want)
	}
	if got, want := len(mesh.Indices), 6*(size-1)*(size-1); got != want {
		t.Fatalf("%d indices, want %d", got, want)
	}
	for _, idx := range mesh.Indices {
		if idx < 0 || int(idx) >= len(mesh.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

// Vertex order must match the grid's row-major layout so the browser client
// can rebuild the surface without remapping.
func TestBuildMeshRowMajorHeights(t *testing.T) {
	hm := NewHeightMap(3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			hm.Set(x, y, float64(10*y+x))
		}
	}

	mesh, err := BuildMesh(hm, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			v := mesh.Vertices[y*3+x]
			if v[1] != hm.At(x, y) {
				t.Errorf("vertex (%d,%d) height = %g, want %g", x, y, v[1], hm.At(x, y))
			}
			wantX := float64(x)*2 - 2
			wantZ := float64(y)*2 - 2
			if v[0] != wantX || v[2] != wantZ {
				t.Errorf("vertex (%d,%d) at (%g,%g), want (%g,%g)", x, y, v[0], v[2], wantX, wantZ)
			}
		}
	}

	if uv := mesh.UVs[0]; uv != [2]float64{0, 0} {
		t.Errorf("first UV = %v, want (0,0)", uv)
	}
	if uv := mesh.UVs[8]; uv != [2]float64{1, 1} {
		t.Errorf("last UV = %v, want (1,1)", uv)
	}
}

func TestBuildMeshFlatNormalsPointUp(t *testing.T) {
	hm := NewHeightMap(5)
	mesh, err := BuildMesh(hm, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, n := range mesh.Normals {
		if n != [3]float64{0, 1, 0} {
			t.Fatalf("normal %d = %v, want (0,1,0)", i, n)
		}
	}
}

func TestBuildMeshNormalsUnitLength(t *testing.T) {
	hm, err := NewGenerator(NewRNG(11)).Generate(2, 5, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mesh, err := BuildMesh(hm, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, n := range mesh.Normals {
		l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if math.Abs(l-1) > 1e-9 {
			t.Fatalf("normal %d has length %g", i, l)
		}
	}
}

func TestBuildMeshRejectsBadInput(t *testing.T) {
	if _, err := BuildMesh(nil, 1); err == nil {
		t.Error("nil height map accepted")
	}
	if _, err := BuildMesh(NewHeightMap(3), 0); err == nil {
		t.Error("zero cell size accepted")
	}
	if _, err := BuildMesh(NewHeightMap(3), -1); err == nil {
		t.Error("negative cell size accepted")
	}
}
