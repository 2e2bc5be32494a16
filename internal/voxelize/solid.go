package voxelize

import (
	"github.com/dcleres/polycubist/internal/bitgrid"
	"github.com/dcleres/polycubist/internal/mesh"
	"github.com/dcleres/polycubist/internal/threadpool"
)

// diag4 are the 4 in-plane axis-aligned neighbor offsets used to seed
// pass-2 BFS flooding from an orthogonal sweep slice, mirroring the 3-D
// 6-neighbor offsets used inside the BFS itself.
var diag4 = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// runSolidFill performs the two-pass exterior flood described in the
// spec: pass 1 seeds a thin exterior shell from the six bounding faces of
// the mesh AABB by sweeping inward until a surface hit; pass 2 repeats
// the sweeps, this time kicking off a 6-connected BFS from any still-
// unmarked voxel reached, to expand the exterior past concavities the
// sweep alone can't see around. Finalize overwrites voxels with the
// bitwise complement of buffer, so solid = NOT exterior.
func runSolidFill(pool *threadpool.Pool, voxels, buffer *bitgrid.Grid, b *mesh.Bounds) {
	buffer.Zero()

	lb, ub := b.MeshVoxLB, b.MeshVoxUB

	for x := lb[0]; x <= ub[0]; x++ {
		x := x
		pool.Submit(func() { fillYZ(voxels, buffer, b, x) })
	}
	for y := lb[1]; y <= ub[1]; y++ {
		y := y
		pool.Submit(func() { fillXZ(voxels, buffer, b, y) })
	}
	for z := lb[2]; z <= ub[2]; z++ {
		z := z
		pool.Submit(func() { fillXY(voxels, buffer, b, z) })
	}
	pool.Wait()

	for x := lb[0]; x <= ub[0]; x++ {
		x := x
		pool.Submit(func() { fillYZ2(voxels, buffer, b, x) })
	}
	for z := lb[2]; z <= ub[2]; z++ {
		z := z
		pool.Submit(func() { fillXY2(voxels, buffer, b, z) })
	}
	for y := lb[1]; y <= ub[1]; y++ {
		y := y
		pool.Submit(func() { fillXZ2(voxels, buffer, b, y) })
	}
	pool.Wait()

	voxels.ComplementOf(buffer)
}

// fillYZ seeds the exterior shell for the YZ slice at x: for every y in
// range, sweep z ascending from the low end, marking exterior voxels in
// buffer until a surface hit (strict early exit), then sweep descending
// from the high end unless the ascending sweep already crossed the whole
// column without finding a surface.
func fillYZ(voxels, buffer *bitgrid.Grid, b *mesh.Bounds, x int) {
	n := b.N
	ly, uy := b.MeshVoxLB[1], b.MeshVoxUB[1]
	lz, uz := b.MeshVoxLB[2], b.MeshVoxUB[2]

	for y := ly; y <= uy; y++ {
		z := lz
		for ; z <= uz; z++ {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			buffer.SetAtomic(idx)
		}
		if z == uz+1 {
			continue
		}
		for z = uz; z >= lz; z-- {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			buffer.SetAtomic(idx)
		}
	}
}

func fillXZ(voxels, buffer *bitgrid.Grid, b *mesh.Bounds, y int) {
	n := b.N
	lx, ux := b.MeshVoxLB[0], b.MeshVoxUB[0]
	lz, uz := b.MeshVoxLB[2], b.MeshVoxUB[2]

	for z := lz; z <= uz; z++ {
		x := lx
		for ; x <= ux; x++ {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			buffer.SetAtomic(idx)
		}
		if x == ux+1 {
			continue
		}
		for x = ux; x >= lx; x-- {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			buffer.SetAtomic(idx)
		}
	}
}

func fillXY(voxels, buffer *bitgrid.Grid, b *mesh.Bounds, z int) {
	n := b.N
	lx, ux := b.MeshVoxLB[0], b.MeshVoxUB[0]
	ly, uy := b.MeshVoxLB[1], b.MeshVoxUB[1]

	for x := lx; x <= ux; x++ {
		y := ly
		for ; y <= uy; y++ {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			buffer.SetAtomic(idx)
		}
		if y == uy+1 {
			continue
		}
		for y = uy; y >= ly; y-- {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			buffer.SetAtomic(idx)
		}
	}
}

// fillYZ2 repeats the YZ sweep at x; at every voxel the sweep reaches
// before a surface hit, it checks the 4 in-plane (x,y) neighbors at the
// same z and seeds a BFS flood from any of them not already marked.
func fillYZ2(voxels, buffer *bitgrid.Grid, b *mesh.Bounds, x int) {
	n := b.N
	lx, ux := b.MeshVoxLB[0], b.MeshVoxUB[0]
	ly, uy := b.MeshVoxLB[1], b.MeshVoxUB[1]
	lz, uz := b.MeshVoxLB[2], b.MeshVoxUB[2]

	seed := func(y, z int) {
		for _, d := range diag4 {
			nx, ny := x+d[0], y+d[1]
			if nx < lx || nx > ux || ny < ly || ny > uy {
				continue
			}
			idx := bitgrid.Linear(n, nx, ny, z)
			if !combinedSet(voxels, buffer, idx) {
				bfsSolid(voxels, buffer, b, [3]int{nx, ny, z})
			}
		}
	}

	for y := ly; y <= uy; y++ {
		z := lz
		for ; z <= uz; z++ {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			seed(y, z)
		}
		if z == uz+1 {
			continue
		}
		for z = uz; z >= lz; z-- {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			seed(y, z)
		}
	}
}

func fillXZ2(voxels, buffer *bitgrid.Grid, b *mesh.Bounds, y int) {
	n := b.N
	lx, ux := b.MeshVoxLB[0], b.MeshVoxUB[0]
	ly, uy := b.MeshVoxLB[1], b.MeshVoxUB[1]
	lz, uz := b.MeshVoxLB[2], b.MeshVoxUB[2]

	seed := func(x, z int) {
		for _, d := range diag4 {
			ny, nz := y+d[0], z+d[1]
			if nz < lz || nz > uz || ny < ly || ny > uy {
				continue
			}
			idx := bitgrid.Linear(n, x, ny, nz)
			if !combinedSet(voxels, buffer, idx) {
				bfsSolid(voxels, buffer, b, [3]int{x, ny, nz})
			}
		}
	}

	for z := lz; z <= uz; z++ {
		x := lx
		for ; x <= ux; x++ {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			seed(x, z)
		}
		if x == ux+1 {
			continue
		}
		for x = ux; x >= lx; x-- {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			seed(x, z)
		}
	}
}

func fillXY2(voxels, buffer *bitgrid.Grid, b *mesh.Bounds, z int) {
	n := b.N
	lx, ux := b.MeshVoxLB[0], b.MeshVoxUB[0]
	ly, uy := b.MeshVoxLB[1], b.MeshVoxUB[1]
	lz, uz := b.MeshVoxLB[2], b.MeshVoxUB[2]

	seed := func(x, y int) {
		for _, d := range diag4 {
			nx, nz := x+d[0], z+d[1]
			if nz < lz || nz > uz || nx < lx || nx > ux {
				continue
			}
			idx := bitgrid.Linear(n, nx, y, nz)
			if !combinedSet(voxels, buffer, idx) {
				bfsSolid(voxels, buffer, b, [3]int{nx, y, nz})
			}
		}
	}

	for x := lx; x <= ux; x++ {
		y := ly
		for ; y <= uy; y++ {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			seed(x, y)
		}
		if y == uy+1 {
			continue
		}
		for y = uy; y >= ly; y-- {
			idx := bitgrid.Linear(n, x, y, z)
			if voxels.Test(idx) {
				break
			}
			seed(x, y)
		}
	}
}

func combinedSet(voxels, buffer *bitgrid.Grid, idx int) bool {
	return voxels.Test(idx) || buffer.Test(idx)
}

// bfsSolid floods exterior voxels through 6-connected axis neighbors
// within the mesh AABB, starting at start. A voxel is "blocked" if its
// bit is already set in either voxels (surface) or buffer (already
// exterior); otherwise it is marked exterior in buffer. Races between
// concurrently running BFS frontiers are tolerated: at worst they
// duplicate work, never produce an incorrect mark, since the
// check-then-mark idiom only ever sets bits.
func bfsSolid(voxels, buffer *bitgrid.Grid, b *mesh.Bounds, start [3]int) {
	n := b.N
	lb, ub := b.MeshVoxLB, b.MeshVoxUB

	startIdx := bitgrid.Linear(n, start[0], start[1], start[2])
	if combinedSet(voxels, buffer, startIdx) {
		return
	}

	queue := [][3]int{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		idx := bitgrid.Linear(n, v[0], v[1], v[2])
		if combinedSet(voxels, buffer, idx) {
			continue
		}
		buffer.SetAtomic(idx)

		for _, d := range neighborOffsets {
			nb := [3]int{v[0] + d[0], v[1] + d[1], v[2] + d[2]}
			if !withinBox(nb, lb, ub) {
				continue
			}
			nbIdx := bitgrid.Linear(n, nb[0], nb[1], nb[2])
			if !combinedSet(voxels, buffer, nbIdx) {
				queue = append(queue, nb)
			}
		}
	}
}
