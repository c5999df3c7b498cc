package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"terrainviz/core"
)

// WriteOBJ serializes a terrain mesh as Wavefront OBJ text: positions,
// texture coordinates and normals share the same index because the mesh
// builder emits one of each per vertex. OBJ indices are 1-based.
func WriteOBJ(w io.Writer, mesh *core.Mesh) error {
	if mesh == nil {
		return fmt.Errorf("write obj: nil mesh")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "o terrain")
	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
	}
	for _, uv := range mesh.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv[0], uv[1])
	}
	for _, n := range mesh.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := mesh.Indices[i] + 1
		b := mesh.Indices[i+1] + 1
		c := mesh.Indices[i+2] + 1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}

// exportOBJ writes the mesh to path, replacing any existing file.
func exportOBJ(path string, mesh *core.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := WriteOBJ(f, mesh); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Printf("Exported mesh to %s (%d vertices, %d triangles)\n",
		path, len(mesh.Vertices), len(mesh.Indices)/3)
	return nil
}
