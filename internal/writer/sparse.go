package writer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dcleres/polycubist/internal/bitgrid"
	"github.com/dcleres/polycubist/internal/mesh"
)

// WriteSparse writes the sparse coordinate-list text format: a 3-line
// header (N; lb.x lb.y lb.z; voxelSize), followed by one "x y z" line per
// set voxel within the mesh AABB, in ascending (x,y,z) order.
func WriteSparse(w io.Writer, voxels *bitgrid.Grid, b *mesh.Bounds) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%d\n", b.N); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "%g %g %g\n", b.WorldLB.X, b.WorldLB.Y, b.WorldLB.Z); err != nil {
		return err
	}
	voxelSize := 2 * b.HalfUnit.X
	if _, err := fmt.Fprintf(bw, "%g\n", voxelSize); err != nil {
		return err
	}

	n := b.N
	for x := b.MeshVoxLB[0]; x <= b.MeshVoxUB[0]; x++ {
		for y := b.MeshVoxLB[1]; y <= b.MeshVoxUB[1]; y++ {
			for z := b.MeshVoxLB[2]; z <= b.MeshVoxUB[2]; z++ {
				if !voxels.Test(bitgrid.Linear(n, x, y, z)) {
					continue
				}
				if _, err := fmt.Fprintf(bw, "%d %d %d\n", x, y, z); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}

// SparseDoc is a WriteSparse document parsed back by ParseSparse (the
// round-trip counterpart used by tests): its header and its set voxel
// coordinates.
type SparseDoc struct {
	N         int
	LB        [3]float64
	VoxelSize float64
	Voxels    [][3]int
}

// ParseSparse reads a document produced by WriteSparse.
func ParseSparse(r io.Reader) (*SparseDoc, error) {
	scanner := bufio.NewScanner(r)
	doc := &SparseDoc{}

	if !scanner.Scan() {
		return doc, scanner.Err()
	}
	if _, err := fmt.Sscanf(scanner.Text(), "%d", &doc.N); err != nil {
		return nil, err
	}

	if !scanner.Scan() {
		return doc, scanner.Err()
	}
	if _, err := fmt.Sscanf(scanner.Text(), "%g %g %g", &doc.LB[0], &doc.LB[1], &doc.LB[2]); err != nil {
		return nil, err
	}

	if !scanner.Scan() {
		return doc, scanner.Err()
	}
	if _, err := fmt.Sscanf(scanner.Text(), "%g", &doc.VoxelSize); err != nil {
		return nil, err
	}

	for scanner.Scan() {
		var x, y, z int
		if _, err := fmt.Sscanf(scanner.Text(), "%d %d %d", &x, &y, &z); err != nil {
			return nil, err
		}
		doc.Voxels = append(doc.Voxels, [3]int{x, y, z})
	}
	return doc, scanner.Err()
}
