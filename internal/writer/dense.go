package writer

import (
	"fmt"
	"io"

	"github.com/dcleres/polycubist/internal/bitgrid"
	"github.com/dcleres/polycubist/internal/mesh"
)

// WriteDense writes the binvox-compatible v1 "dense viewer" format: an
// ASCII header, then RLE pairs over the whole N^3 cube (not just the mesh
// AABB), in x-outermost, y-middle, z-innermost order. The translate line
// deliberately swaps the y and z components to match the binvox
// convention, and is preserved bit-exact per the spec's open ambiguity.
//
// On the engine's mesh-load-error bounds (an empty mesh AABB, upper voxel
// bound below the lower — see engineerr), this still emits a full header
// sized to N, since the dense format is defined over the whole cube
// regardless of mesh AABB, but writes no body.
func WriteDense(w io.Writer, voxels *bitgrid.Grid, b *mesh.Bounds) error {
	n := b.N
	extent := b.WorldUB.X - b.WorldLB.X
	scale := (b.WorldUB.Sub(b.WorldLB)).Length()

	if _, err := fmt.Fprintf(w, "#binvox 1\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "dim %d %d %d\n", n, n, n); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "translate %g %g %g\n", -b.WorldLB.X, -b.WorldLB.Z, -b.WorldLB.Y); err != nil {
		return err
	}
	if extent == 0 {
		scale = 0
	}
	if _, err := fmt.Fprintf(w, "scale %g\n", scale); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data\n"); err != nil {
		return err
	}
	if b.MeshVoxUB[0] < b.MeshVoxLB[0] {
		return nil // mesh-load-error state: header only
	}

	bits := make([]bool, 0, n*n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				bits = append(bits, voxels.Test(bitgrid.Linear(n, x, y, z)))
			}
		}
	}
	_, err := w.Write(EncodeRLE(bits))
	return err
}
