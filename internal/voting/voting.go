// Package voting builds the per-voxel "cornerness" accumulator: each
// boundary voxel of a BinaryTensor casts three axis-aligned streaks of
// votes, which concentrate along the principal planar faces of an
// axis-aligned shape and peak near its corners.
package voting

import "github.com/dcleres/polycubist/internal/tensor"

// DefaultMaskSize is the spec's default streak half-length (K).
const DefaultMaskSize = 5

// Accumulator is an N×N×N array of non-negative vote counts.
type Accumulator struct {
	N    int
	data []int
}

// Build scans t for boundary voxels (set voxels with fewer than 27 set
// neighbors in their clamped 3×3×3 neighborhood) and, for each, casts a
// streak of votes of length 2*maskSize along each axis, centered on the
// voxel, skipping out-of-range indices. Entries are bounded by 6*N.
func Build(t *tensor.Tensor, maskSize int) *Accumulator {
	n := t.N
	a := &Accumulator{N: n, data: make([]int, n*n*n)}

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				if !t.Get(x, y, z) {
					continue
				}
				if countNeighbors(t, x, y, z) >= 27 {
					continue // interior voxel, not a boundary
				}
				for m := -maskSize; m < maskSize; m++ {
					a.increment(x+m, y, z)
					a.increment(x, y+m, z)
					a.increment(x, y, z+m)
				}
			}
		}
	}
	return a
}

func countNeighbors(t *tensor.Tensor, x, y, z int) int {
	count := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if t.Get(x+dx, y+dy, z+dz) {
					count++
				}
			}
		}
	}
	return count
}

func (a *Accumulator) increment(x, y, z int) {
	if x < 0 || x >= a.N || y < 0 || y >= a.N || z < 0 || z >= a.N {
		return
	}
	a.data[x*a.N*a.N+y*a.N+z]++
}

// Get returns A[x][y][z]. Out-of-range coordinates return 0.
func (a *Accumulator) Get(x, y, z int) int {
	if x < 0 || x >= a.N || y < 0 || y >= a.N || z < 0 || z >= a.N {
		return 0
	}
	return a.data[x*a.N*a.N+y*a.N+z]
}
