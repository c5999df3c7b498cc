package core

import "math"

// HeightMap stores a square grid of elevation values in row-major order.
// Size is always 2^n + 1 so the diamond-square recursion terminates exactly
// at chunk size 1. Values are unbounded; perturbation can push them negative
// or above the corner seed range and nothing clamps them.
type HeightMap struct {
	Size int
	data []float64
}

// NewHeightMap allocates a size x size grid of zeros.
func NewHeightMap(size int) *HeightMap {
	return &HeightMap{Size: size, data: make([]float64, size*size)}
}

// Index returns the flat slice index for coordinates (x, y).
func (h *HeightMap) Index(x, y int) int { return y*h.Size + x }

// At returns the elevation at (x, y).
func (h *HeightMap) At(x, y int) float64 { return h.data[y*h.Size+x] }

// Set writes the elevation at (x, y).
func (h *HeightMap) Set(x, y int, v float64) { h.data[y*h.Size+x] = v }

// In reports whether (x, y) lies inside the grid.
func (h *HeightMap) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < h.Size && y < h.Size
}

// Values exposes the backing slice so callers can read heights directly.
func (h *HeightMap) Values() []float64 { return h.data }

// Bounds returns the minimum and maximum elevation in the grid.
func (h *HeightMap) Bounds() (min, max float64) {
	min, max = h.data[0], h.data[0]
	for _, v := range h.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Normalized returns the elevation at (x, y) rescaled to [0, 1] given the
// grid bounds. A flat grid maps everywhere to 0.
func (h *HeightMap) Normalized(x, y int, min, max float64) float64 {
	if max == min {
		return 0
	}
	v := (h.At(x, y) - min) / (max - min)
	return math.Min(1, math.Max(0, v))
}
