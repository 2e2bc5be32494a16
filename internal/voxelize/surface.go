package voxelize

import (
	"github.com/dcleres/polycubist/internal/bitgrid"
	"github.com/dcleres/polycubist/internal/geometry"
	"github.com/dcleres/polycubist/internal/mesh"
	"github.com/dcleres/polycubist/internal/numeric"
)

// exhaustiveThreshold is the "e < 100" cutoff from the spec: triangle
// AABBs whose smallest voxel-space edge is below this are rasterized
// exhaustively; larger ones are BFS-marched.
const exhaustiveThreshold = 100

// voxelizeSurfaceTriangle marks every voxel whose cube overlaps the given
// triangle, writing atomically into voxels. It never fails: overlap
// testing is total, and floating-point edge cases may only cause a
// spurious or missing mark on a single voxel.
func voxelizeSurfaceTriangle(voxels *bitgrid.Grid, b *mesh.Bounds, tri geometry.Triangle) {
	n := b.N

	lb := clampVox(b.WorldToVoxel(tri.A.Min(tri.B).Min(tri.C)), n)
	ub := clampVox(b.WorldToVoxel(tri.A.Max(tri.B).Max(tri.C)), n)

	ex := ub[0] - lb[0]
	ey := ub[1] - lb[1]
	ez := ub[2] - lb[2]
	e := ex
	if ey < e {
		e = ey
	}
	if ez < e {
		e = ez
	}

	if e < exhaustiveThreshold {
		rasterizeExhaustive(voxels, b, tri, lb, ub)
	} else {
		rasterizeBFS(voxels, b, tri, lb, ub)
	}
}

func rasterizeExhaustive(voxels *bitgrid.Grid, b *mesh.Bounds, tri geometry.Triangle, lb, ub [3]int) {
	n := b.N
	for x := lb[0]; x <= ub[0]; x++ {
		for y := lb[1]; y <= ub[1]; y++ {
			for z := lb[2]; z <= ub[2]; z++ {
				idx := bitgrid.Linear(n, x, y, z)
				if voxels.Test(idx) {
					continue
				}
				if overlaps(b, tri, x, y, z) {
					voxels.SetAtomic(idx)
				}
			}
		}
	}
}

func rasterizeBFS(voxels *bitgrid.Grid, b *mesh.Bounds, tri geometry.Triangle, lb, ub [3]int) {
	n := b.N
	start := clampVox(b.WorldToVoxel(tri.A), n)
	start = clampToBox(start, lb, ub)

	visited := make(map[[3]int]bool)
	queue := [][3]int{start}
	visited[start] = true

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		idx := bitgrid.Linear(n, v[0], v[1], v[2])
		qualifies := voxels.Test(idx) || overlaps(b, tri, v[0], v[1], v[2])
		if !qualifies {
			continue
		}
		voxels.SetAtomic(idx)

		for _, d := range neighborOffsets {
			nb := [3]int{v[0] + d[0], v[1] + d[1], v[2] + d[2]}
			if !withinBox(nb, lb, ub) || visited[nb] {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}
}

var neighborOffsets = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

func overlaps(b *mesh.Bounds, tri geometry.Triangle, x, y, z int) bool {
	center := b.VoxelCenter(x, y, z)
	box := geometry.AABB{Center: center, Half: b.HalfUnit}
	return geometry.TriangleBoxOverlap(box, tri)
}

func clampVox(v [3]int, n int) [3]int {
	for i := range v {
		v[i] = numeric.Clamp(v[i], 0, n-1)
	}
	return v
}

func clampToBox(v, lb, ub [3]int) [3]int {
	for i := range v {
		v[i] = numeric.Clamp(v[i], lb[i], ub[i])
	}
	return v
}

func withinBox(v, lb, ub [3]int) bool {
	for i := range v {
		if v[i] < lb[i] || v[i] > ub[i] {
			return false
		}
	}
	return true
}
