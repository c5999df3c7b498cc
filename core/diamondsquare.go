package core

import "fmt"

// Generator produces fractal height maps with the diamond-square algorithm.
// It holds only the random source; every Generate call allocates and returns
// a fresh grid, so a single Generator is safe to reuse across sequential
// calls but concurrent calls must not share one non-thread-safe source.
type Generator struct {
	rng RandomSource
}

// NewGenerator creates a generator using the given random source. A nil
// source gets a time-seeded one.
func NewGenerator(rng RandomSource) *Generator {
	if rng == nil {
		rng = newTimeRNG()
	}
	return &Generator{rng: rng}
}

// Generate runs diamond-square over a grid of side 2^detail + 1.
//
// The four corners are seeded uniformly from [0, maxHeight]. Each pass sets
// square-chunk centers from their four corners, then diamond midpoints from
// their in-bounds neighbors, each plus a uniform perturbation in
// [-roughness, roughness]; chunk size and roughness halve until every cell
// is written. Values are not clamped.
func (g *Generator) Generate(detail int, maxHeight, roughness float64) (*HeightMap, error) {
	if detail < 0 {
		return nil, fmt.Errorf("generate: detail must be non-negative, got %d", detail)
	}
	if maxHeight < 0 {
		return nil, fmt.Errorf("generate: maxHeight must be non-negative, got %g", maxHeight)
	}
	if roughness < 0 {
		return nil, fmt.Errorf("generate: roughness must be non-negative, got %g", roughness)
	}

	size := (1 << uint(detail)) + 1
	hm := NewHeightMap(size)

	last := size - 1
	hm.Set(0, 0, g.rng.Float64()*maxHeight)
	hm.Set(last, 0, g.rng.Float64()*maxHeight)
	hm.Set(0, last, g.rng.Float64()*maxHeight)
	hm.Set(last, last, g.rng.Float64()*maxHeight)

	for chunk := last; chunk > 1; chunk /= 2 {
		g.squarePass(hm, chunk, roughness)
		g.diamondPass(hm, chunk, roughness)
		roughness /= 2
	}
	return hm, nil
}

// squarePass fills the center of every chunk-sized square with the average
// of its four corners plus noise. Centers sit at odd multiples of half on
// both axes.
func (g *Generator) squarePass(hm *HeightMap, chunk int, roughness float64) {
	half := chunk / 2
	for y := half; y < hm.Size; y += chunk {
		for x := half; x < hm.Size; x += chunk {
			avg := (hm.At(x-half, y-half) +
				hm.At(x+half, y-half) +
				hm.At(x-half, y+half) +
				hm.At(x+half, y+half)) / 4
			hm.Set(x, y, avg+g.perturb(roughness))
		}
	}
}

// diamondPass fills every edge midpoint of the current squares. Those are
// the lattice points where exactly one coordinate is an odd multiple of
// half: rows at even multiples take x = half, half+chunk, ...; rows at odd
// multiples (the center rows) take x = 0, chunk, .... Midpoints on the grid
// boundary have one neighbor outside the grid and average only the three
// that exist.
func (g *Generator) diamondPass(hm *HeightMap, chunk int, roughness float64) {
	half := chunk / 2
	for y := 0; y < hm.Size; y += half {
		start := half
		if (y/half)%2 == 1 {
			start = 0
		}
		for x := start; x < hm.Size; x += chunk {
			sum := 0.0
			n := 0
			for _, d := range [4][2]int{{0, -half}, {-half, 0}, {half, 0}, {0, half}} {
				nx, ny := x+d[0], y+d[1]
				if hm.In(nx, ny) {
					sum += hm.At(nx, ny)
					n++
				}
			}
			hm.Set(x, y, sum/float64(n)+g.perturb(roughness))
		}
	}
}

// perturb draws a uniform value in [-amplitude, amplitude].
func (g *Generator) perturb(amplitude float64) float64 {
	return (g.rng.Float64()*2 - 1) * amplitude
}
