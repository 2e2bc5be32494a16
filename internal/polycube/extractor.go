// Package polycube derives a small set of axis planes and a filled
// axis-aligned block decomposition from a BinaryTensor and its
// VotingAccumulator. The algorithm is deliberately heuristic — it was
// tuned against a specific dataset and is reproduced here rather than
// generalized, per the spec's open question.
package polycube

import (
	"github.com/dcleres/polycubist/internal/bitgrid"
	"github.com/dcleres/polycubist/internal/numeric"
	"github.com/dcleres/polycubist/internal/tensor"
	"github.com/dcleres/polycubist/internal/voting"
)

// Config exposes the dataset-tuned magic numbers as parameters, with the
// spec's defaults.
type Config struct {
	// YLevels is the number of Y-axis voting peaks collected (default 3).
	YLevels int
	// ZLevels is the number of Z-axis voting peaks collected (default 8).
	ZLevels int
	// RegionSize is the side of the cube explored around a block's
	// barycenter when deciding whether to fill it (default 3).
	RegionSize int
}

// DefaultConfig returns the spec's default magic numbers.
func DefaultConfig() Config {
	return Config{YLevels: 3, ZLevels: 8, RegionSize: 3}
}

// Result is the polycube approximation: a filled N×N×N boolean cube plus
// the intermediate planes the algorithm picked, kept for inspection and
// testing.
type Result struct {
	N int
	P []bool // flattened N^3, true where filled

	Ys     []int
	Zs     []int
	XInit  int
	XFinal int
	XMid   int
	YStar  int
}

// Get returns P[x][y][z].
func (r *Result) Get(x, y, z int) bool {
	if x < 0 || x >= r.N || y < 0 || y >= r.N || z < 0 || z >= r.N {
		return false
	}
	return r.P[x*r.N*r.N+y*r.N+z]
}

// Voxels materializes P back into a bitgrid.Grid so that the existing
// writer functions can emit the polycube approximation in any of the
// three output formats, the same way they emit the raw occupancy grid.
func (r *Result) Voxels() *bitgrid.Grid {
	g := bitgrid.New(r.N)
	for x := 0; x < r.N; x++ {
		for y := 0; y < r.N; y++ {
			for z := 0; z < r.N; z++ {
				if r.Get(x, y, z) {
					g.SetAtomic(bitgrid.Linear(r.N, x, y, z))
				}
			}
		}
	}
	return g
}

func (r *Result) set(x, y, z int) {
	if x < 0 || x >= r.N || y < 0 || y >= r.N || z < 0 || z >= r.N {
		return
	}
	r.P[x*r.N*r.N+y*r.N+z] = true
}

// Extract runs the full pipeline described in the spec: pick the densest
// Y-slice, locate the X extent there via per-z medians, project voting at
// the X midpoint into per-axis profiles, pick cfg.YLevels Y planes and
// cfg.ZLevels Z planes (3 and 8 by default), emit the corner grid at the
// two X extents (48 flags with the defaults), then grow
// axis-aligned blocks from each corner.
func Extract(t *tensor.Tensor, a *voting.Accumulator, cfg Config) *Result {
	n := t.N
	r := &Result{N: n, P: make([]bool, n*n*n)}

	yStar := densestYSlice(t)
	r.YStar = yStar

	xInit, xFinal, ok := xExtentAtYSlice(t, yStar)
	if !ok {
		return r // no voxels at all in this slice; nothing to extract
	}
	xMid := (xInit + xFinal) / 2
	r.XInit, r.XFinal, r.XMid = xInit, xFinal, xMid

	muY, muZ := projectVoting(a, xMid, n)

	ys := pickPeaks(muY, cfg.YLevels)
	zs := pickPeaks(muZ, cfg.ZLevels)
	r.Ys, r.Zs = ys, zs

	corners := emitCorners(n, xInit, xFinal, ys, zs)
	growBlocks(t, r, corners, cfg.RegionSize)

	return r
}

// densestYSlice returns argmax_y of the count of set (x,z) cells at that y.
func densestYSlice(t *tensor.Tensor) int {
	n := t.N
	counts := make([]int, n)
	for y := 0; y < n; y++ {
		c := 0
		for x := 0; x < n; x++ {
			for z := 0; z < n; z++ {
				if t.Get(x, y, z) {
					c++
				}
			}
		}
		counts[y] = c
	}
	return numeric.ArgMax(counts)
}

// xExtentAtYSlice scans x ascending for each z at the given y, recording
// the first and last consecutive set x as xi(z)/xf(z); z with no hits are
// dropped. Returns the medians of the collected xi/xf lists.
func xExtentAtYSlice(t *tensor.Tensor, y int) (xInit, xFinal int, ok bool) {
	n := t.N
	var xis, xfs []int

	for z := 0; z < n; z++ {
		first := -1
		last := -1
		for x := 0; x < n; x++ {
			if !t.Get(x, y, z) {
				if first >= 0 {
					break // end of the first consecutive run
				}
				continue
			}
			if first < 0 {
				first = x
			}
			last = x
		}
		if first < 0 {
			continue
		}
		xis = append(xis, first)
		xfs = append(xfs, last)
	}

	if len(xis) == 0 {
		return 0, 0, false
	}
	return numeric.Median(xis), numeric.Median(xfs), true
}

// projectVoting computes, for every j in [0,N), the mean vote count along
// the Z axis (muY) and along the Y axis (muZ) at the fixed xMid slice.
func projectVoting(a *voting.Accumulator, xMid, n int) (muY, muZ []float64) {
	muY = make([]float64, n)
	muZ = make([]float64, n)
	for j := 0; j < n; j++ {
		var sumY, sumZ int
		for k := 0; k < n; k++ {
			sumY += a.Get(xMid, j, k)
			sumZ += a.Get(xMid, k, j)
		}
		muY[j] = float64(sumY) / float64(n)
		muZ[j] = float64(sumZ) / float64(n)
	}
	return muY, muZ
}

// pickPeaks repeats `count` times: take the index of the current max,
// append it, zero that entry, and continue — so it never picks the same
// index twice.
func pickPeaks(values []float64, count int) []int {
	work := make([]float64, len(values))
	copy(work, values)

	picks := make([]int, 0, count)
	for i := 0; i < count; i++ {
		if len(work) == 0 {
			break
		}
		idx := numeric.ArgMax(work)
		picks = append(picks, idx)
		work[idx] = 0
	}
	return picks
}

type corner struct{ x, y, z int }

// emitCorners sets E[x][Ys[i]][Zs[j]] for x in {xInit, xFinal}, the first
// 3 entries of Ys, and all entries of Zs — reproducing the source's
// 48-corner-flag grid exactly (2 * 3 * 8).
func emitCorners(n, xInit, xFinal int, ys, zs []int) []corner {
	var corners []corner
	xs := []int{xInit, xFinal}
	yCount := len(ys)
	if yCount > 3 {
		yCount = 3
	}
	for _, x := range xs {
		for i := 0; i < yCount; i++ {
			for j := 0; j < len(zs); j++ {
				corners = append(corners, corner{x, ys[i], zs[j]})
			}
		}
	}
	return corners
}

// growBlocks fills axis-aligned blocks around each corner flag: for each
// corner, find the nearest other corner along +x, +y, +z, compute the
// block barycenter, and fill the block if any of the 27 cells in a
// region-sized window around the barycenter is set in T, or if an
// opposite corner was found on all three axes (source-preserved
// always-fill rule). A not-found axis extends the block to the grid
// edge rather than collapsing it, matching the source's fallback.
func growBlocks(t *tensor.Tensor, r *Result, corners []corner, regionSize int) {
	n := t.N
	set := make(map[corner]bool, len(corners))
	for _, c := range corners {
		set[c] = true
	}

	for _, c := range corners {
		itrI, foundX := nearestAlong(corners, set, c, 0, n)
		itrJ, foundY := nearestAlong(corners, set, c, 1, n)
		itrK, foundZ := nearestAlong(corners, set, c, 2, n)

		bx := (c.x + itrI) / 2
		by := (c.y + itrJ) / 2
		bz := (c.z + itrK) / 2

		found := foundX && foundY && foundZ
		fill := found || regionHasSetCell(t, bx, by, bz, regionSize)
		if !fill {
			continue
		}

		lo := [3]int{minInt(c.x, itrI), minInt(c.y, itrJ), minInt(c.z, itrK)}
		hi := [3]int{maxInt(c.x, itrI), maxInt(c.y, itrJ), maxInt(c.z, itrK)}
		for x := lo[0]; x < hi[0]; x++ {
			for y := lo[1]; y < hi[1]; y++ {
				for z := lo[2]; z < hi[2]; z++ {
					r.set(x, y, z)
				}
			}
		}
	}
}

// nearestAlong finds the nearest other corner's coordinate along +axis
// from c, among all corners sharing c's other two coordinates. Returns
// (n, false) if none is found, so the block extends to the grid edge
// along that axis instead of collapsing to zero width.
func nearestAlong(corners []corner, set map[corner]bool, c corner, axis, n int) (int, bool) {
	best := -1
	own := axisVal(c, axis)
	for _, other := range corners {
		if !sameOtherAxes(c, other, axis) {
			continue
		}
		v := axisVal(other, axis)
		if v <= own {
			continue
		}
		if best == -1 || v < best {
			best = v
		}
	}
	if best == -1 {
		return n, false
	}
	return best, true
}

func axisVal(c corner, axis int) int {
	switch axis {
	case 0:
		return c.x
	case 1:
		return c.y
	default:
		return c.z
	}
}

func sameOtherAxes(a, b corner, axis int) bool {
	switch axis {
	case 0:
		return a.y == b.y && a.z == b.z
	case 1:
		return a.x == b.x && a.z == b.z
	default:
		return a.x == b.x && a.y == b.y
	}
}

func regionHasSetCell(t *tensor.Tensor, cx, cy, cz, size int) bool {
	half := size / 2
	for dx := -half; dx <= half; dx++ {
		for dy := -half; dy <= half; dy++ {
			for dz := -half; dz <= half; dz++ {
				if t.Get(cx+dx, cy+dy, cz+dz) {
					return true
				}
			}
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
