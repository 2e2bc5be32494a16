// Package voxelize wires the mesh, its derived bounds, a pair of bit
// grids, and a thread pool into the engine that performs surface
// voxelization and solid fill. It is the one place in the repository that
// owns all of that state; there is no file-scope mutable global anywhere
// in the engine.
package voxelize

import (
	"fmt"
	"io"

	"github.com/dcleres/polycubist/internal/bitgrid"
	"github.com/dcleres/polycubist/internal/engineerr"
	"github.com/dcleres/polycubist/internal/mesh"
	"github.com/dcleres/polycubist/internal/threadpool"
)

// Config holds the immutable engine parameters.
type Config struct {
	N       int
	Threads int

	// Seed controls the triangle-order shuffle at construction, so tests
	// can get reproducible voxelizations. Zero is a valid seed.
	Seed uint64

	// Log receives progress lines, mirroring the teacher's fmt.Printf
	// progress reporting. Defaults to io.Discard.
	Log io.Writer
}

func (c Config) validate() error {
	if c.N < 1 {
		return fmt.Errorf("%w: grid resolution %d must be positive", engineerr.ErrInvalidParameter, c.N)
	}
	if c.Threads < 1 {
		return fmt.Errorf("%w: thread count %d must be positive", engineerr.ErrInvalidParameter, c.Threads)
	}
	return nil
}

// Engine owns the mesh, its bounds, the two bit grids, and the thread
// pool for a single voxelization run.
type Engine struct {
	cfg   Config
	mesh  *mesh.Mesh
	bound *mesh.Bounds
	pool  *threadpool.Pool

	voxels       *bitgrid.Grid
	voxelsBuffer *bitgrid.Grid

	// loadErr is non-nil when the mesh failed to load (empty vertex
	// list). Once set, VoxelizeSurface/VoxelizeSolid are no-ops.
	loadErr error
}

// NewEngine constructs an Engine from a loaded mesh and configuration.
// N < 1 or Threads < 1 are rejected immediately (InvalidParameter, no
// engine returned). An empty mesh instead returns a non-nil engine in a
// no-op state alongside a wrapped MeshLoadError, per the error design:
// the caller is informed, but the engine remains safe to call (every
// subsequent voxelization call returns immediately, every writer emits an
// empty header with a zero body).
func NewEngine(m *mesh.Mesh, cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Log == nil {
		cfg.Log = io.Discard
	}

	e := &Engine{
		cfg:          cfg,
		mesh:         m,
		pool:         threadpool.New(cfg.Threads),
		voxels:       bitgrid.New(cfg.N),
		voxelsBuffer: bitgrid.New(cfg.N),
	}
	e.pool.Log = cfg.Log

	b, err := mesh.ComputeBounds(m, cfg.N)
	if err != nil {
		e.loadErr = err
		e.bound = zeroBounds(cfg.N)
		return e, err
	}
	e.bound = b
	m.ShuffleTriangles(cfg.Seed)
	return e, nil
}

// zeroBounds produces a degenerate mesh AABB (upper bound below lower
// bound) so that the writers emit no body and the compressed header's
// voxel bounds give ub-lb+1 = 0 on every axis, per the MeshLoadError
// user-visible behavior in the error design.
func zeroBounds(n int) *mesh.Bounds {
	return &mesh.Bounds{
		N:         n,
		MeshVoxLB: [3]int{0, 0, 0},
		MeshVoxUB: [3]int{-1, -1, -1},
	}
}

// Bounds returns the engine's mesh bounds.
func (e *Engine) Bounds() *mesh.Bounds { return e.bound }

// Voxels returns the engine's final occupancy grid (surface marks before
// VoxelizeSolid runs, solid marks after).
func (e *Engine) Voxels() *bitgrid.Grid { return e.voxels }

// LoadError returns the sticky mesh-load error, if any.
func (e *Engine) LoadError() error { return e.loadErr }

// Stop releases the engine's thread pool. Call once the engine is no
// longer needed.
func (e *Engine) Stop() { e.pool.Stop() }

// VoxelizeSurface marks every voxel intersected by any mesh triangle. One
// task is submitted per triangle, in the mesh's (already shuffled)
// triangle order, and the call blocks until the pool has drained — the
// surface pass is a full barrier before any solid-fill pass may begin.
// Idempotent: calling twice leaves the same bits set, since OR is
// idempotent. A no-op if the engine is in the mesh-load-error state.
func (e *Engine) VoxelizeSurface() error {
	if e.loadErr != nil {
		return e.loadErr
	}

	fmt.Fprintf(e.cfg.Log, "surface voxelizing %d triangles...\n", e.mesh.NumTriangles())
	for i := 0; i < e.mesh.NumTriangles(); i++ {
		tri := e.mesh.Triangle(i)
		e.pool.Submit(func() { voxelizeSurfaceTriangle(e.voxels, e.bound, tri) })
	}
	e.pool.Wait()
	fmt.Fprintf(e.cfg.Log, "  %d surface voxels set\n", countSet(e.voxels, e.bound))
	return nil
}

// VoxelizeSolid converts the surface shell into a filled solid via the
// two-pass exterior flood and complement described by the spec. A no-op
// if the engine is in the mesh-load-error state, and a no-op (by
// construction, since OR is idempotent and the complement step is
// deterministic) if called on already-solid input whose exterior floods
// identically both times.
func (e *Engine) VoxelizeSolid() error {
	if e.loadErr != nil {
		return e.loadErr
	}

	fmt.Fprintln(e.cfg.Log, "solid voxelizing...")
	runSolidFill(e.pool, e.voxels, e.voxelsBuffer, e.bound)
	fmt.Fprintf(e.cfg.Log, "  %d solid voxels set\n", countSet(e.voxels, e.bound))
	return nil
}

func countSet(g *bitgrid.Grid, b *mesh.Bounds) int {
	count := 0
	for x := b.MeshVoxLB[0]; x <= b.MeshVoxUB[0]; x++ {
		for y := b.MeshVoxLB[1]; y <= b.MeshVoxUB[1]; y++ {
			for z := b.MeshVoxLB[2]; z <= b.MeshVoxUB[2]; z++ {
				if g.Test(bitgrid.Linear(b.N, x, y, z)) {
					count++
				}
			}
		}
	}
	return count
}
