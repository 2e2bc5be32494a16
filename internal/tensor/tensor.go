// Package tensor materializes the final bit grid into a dense N×N×N
// boolean cube, restricted to the mesh AABB, for the voting and polycube
// stages to index directly.
package tensor

import (
	"github.com/dcleres/polycubist/internal/bitgrid"
	"github.com/dcleres/polycubist/internal/mesh"
)

// Tensor is an N×N×N boolean cube. Cells outside the mesh voxel AABB are
// always false.
type Tensor struct {
	N    int
	data []bool
}

// Build materializes a Tensor from voxels, restricted to b's mesh AABB.
// All other cells are false.
func Build(voxels *bitgrid.Grid, b *mesh.Bounds) *Tensor {
	n := b.N
	t := &Tensor{N: n, data: make([]bool, n*n*n)}
	for x := b.MeshVoxLB[0]; x <= b.MeshVoxUB[0]; x++ {
		for y := b.MeshVoxLB[1]; y <= b.MeshVoxUB[1]; y++ {
			for z := b.MeshVoxLB[2]; z <= b.MeshVoxUB[2]; z++ {
				idx := bitgrid.Linear(n, x, y, z)
				t.data[idx] = voxels.Test(idx)
			}
		}
	}
	return t
}

// Get returns T[x][y][z]. Out-of-range coordinates return false.
func (t *Tensor) Get(x, y, z int) bool {
	if x < 0 || x >= t.N || y < 0 || y >= t.N || z < 0 || z >= t.N {
		return false
	}
	return t.data[bitgrid.Linear(t.N, x, y, z)]
}
