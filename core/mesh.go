package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a triangulated terrain surface ready for the browser client or
// the exporter. Vertices are laid out in the same row-major order as the
// height map they came from, with elevation on Y.
type Mesh struct {
	Vertices [][3]float64 `json:"vertices"`
	Normals  [][3]float64 `json:"normals"`
	UVs      [][2]float64 `json:"uvs"`
	Indices  []int32      `json:"indices"`
}

// BuildMesh turns a height map into a planar grid mesh with cellSize spacing
// between neighboring vertices. The mesh is centered on the origin in XZ and
// has 2*(size-1)^2 triangles with counter-clockwise winding viewed from +Y.
func BuildMesh(hm *HeightMap, cellSize float64) (*Mesh, error) {
	if hm == nil {
		return nil, fmt.Errorf("build mesh: nil height map")
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("build mesh: cellSize must be positive, got %g", cellSize)
	}

	size := hm.Size
	half := float64(size-1) * cellSize / 2
	mesh := &Mesh{
		Vertices: make([][3]float64, 0, size*size),
		UVs:      make([][2]float64, 0, size*size),
		Indices:  make([]int32, 0, 6*(size-1)*(size-1)),
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			mesh.Vertices = append(mesh.Vertices, [3]float64{
				float64(x)*cellSize - half,
				hm.At(x, y),
				float64(y)*cellSize - half,
			})
			mesh.UVs = append(mesh.UVs, [2]float64{
				float64(x) / float64(size-1),
				float64(y) / float64(size-1),
			})
		}
	}

	for y := 0; y < size-1; y++ {
		for x := 0; x < size-1; x++ {
			i := int32(y*size + x)
			// Two triangles per quad, CCW seen from above.
			mesh.Indices = append(mesh.Indices,
				i, i+int32(size), i+1,
				i+1, i+int32(size), i+int32(size)+1)
		}
	}

	mesh.Normals = vertexNormals(mesh.Vertices, mesh.Indices)
	return mesh, nil
}

// vertexNormals accumulates area-weighted face normals at each vertex and
// normalizes the result, giving smooth shading across the grid.
func vertexNormals(vertices [][3]float64, indices []int32) [][3]float64 {
	acc := make([]mgl64.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a := mgl64.Vec3(vertices[indices[i]])
		b := mgl64.Vec3(vertices[indices[i+1]])
		c := mgl64.Vec3(vertices[indices[i+2]])
		face := b.Sub(a).Cross(c.Sub(a))
		acc[indices[i]] = acc[indices[i]].Add(face)
		acc[indices[i+1]] = acc[indices[i+1]].Add(face)
		acc[indices[i+2]] = acc[indices[i+2]].Add(face)
	}

	normals := make([][3]float64, len(vertices))
	for i, n := range acc {
		if n.Len() == 0 {
			normals[i] = [3]float64{0, 1, 0}
			continue
		}
		normals[i] = [3]float64(n.Normalize())
	}
	return normals
}
