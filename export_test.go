package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"terrainviz/core"
)

func buildTestMesh(t *testing.T) *core.Mesh {
	t.Helper()
	hm, err := core.NewGenerator(core.NewRNG(5)).Generate(2, 10, 4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	mesh, err := core.BuildMesh(hm, 1)
	if err != nil {
		t.Fatalf("build mesh: %v", err)
	}
	return mesh
}

func TestWriteOBJStructure(t *testing.T) {
	mesh := buildTestMesh(t)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, mesh); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	counts := map[string]int{}
	scanner := bufio.NewScanner(&buf)
	var firstLine string
	for scanner.Scan() {
		line := scanner.Text()
		if firstLine == "" {
			firstLine = line
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		counts[fields[0]]++

		if fields[0] == "f" {
			if len(fields) != 4 {
				t.Fatalf("face with %d corners: %q", len(fields)-1, line)
			}
			for _, corner := range fields[1:] {
				var v, vt, vn int
				if _, err := fmt.Sscanf(corner, "%d/%d/%d", &v, &vt, &vn); err != nil {
					t.Fatalf("bad face corner %q: %v", corner, err)
				}
				if v < 1 || v > len(mesh.Vertices) {
					t.Fatalf("face references vertex %d of %d", v, len(mesh.Vertices))
				}
				if v != vt || v != vn {
					t.Fatalf("corner %q mixes indices, want shared", corner)
				}
			}
		}
	}

	if firstLine != "o terrain" {
		t.Errorf("first line = %q, want \"o terrain\"", firstLine)
	}
	if counts["v"] != 25 || counts["vt"] != 25 || counts["vn"] != 25 {
		t.Errorf("v/vt/vn = %d/%d/%d, want 25 each", counts["v"], counts["vt"], counts["vn"])
	}
	if counts["f"] != 32 {
		t.Errorf("faces = %d, want 32", counts["f"])
	}
}

func TestWriteOBJNilMesh(t *testing.T) {
	if err := WriteOBJ(&bytes.Buffer{}, nil); err == nil {
		t.Fatal("nil mesh accepted")
	}
}

func TestExportOBJWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.obj")
	if err := exportOBJ(path, buildTestMesh(t)); err != nil {
		t.Fatalf("exportOBJ: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !strings.HasPrefix(string(data), "o terrain\n") {
		t.Fatalf("unexpected file prefix: %.20q", string(data))
	}
}
