package writer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/dcleres/polycubist/internal/bitgrid"
	"github.com/dcleres/polycubist/internal/engineerr"
	"github.com/dcleres/polycubist/internal/mesh"
)

// WriteCompressedFile opens path for writing, takes an advisory exclusive
// flock for the duration of the write (so two concurrent engine runs
// can't clobber the same output path), and writes the compressed binary
// format via WriteCompressed.
func WriteCompressedFile(path string, voxels *bitgrid.Grid, b *mesh.Bounds) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", engineerr.ErrIO, err)
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("%w: flock %s: %v", engineerr.ErrIO, path, err)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	w := bufio.NewWriter(f)
	if err := WriteCompressed(w, voxels, b); err != nil {
		return fmt.Errorf("%w: %v", engineerr.ErrIO, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", engineerr.ErrIO, err)
	}
	return nil
}

// WriteCompressed writes the compressed binary format, native endianness:
// int32 N; three float64 lower-bound components; one float64 voxel size;
// six int32 mesh-AABB bounds written in the source's order "lx ly lz uz
// uy uz" — note the repeated uz and the skipped ux — preserved bit-exact
// per the spec's documented open ambiguity. Body: RLE pairs over the mesh
// AABB only (unlike the dense writer, which always covers the whole
// cube).
func WriteCompressed(w *bufio.Writer, voxels *bitgrid.Grid, b *mesh.Bounds) error {
	order := binary.NativeEndian

	if err := binary.Write(w, order, int32(b.N)); err != nil {
		return err
	}
	lb := [3]float64{b.WorldLB.X, b.WorldLB.Y, b.WorldLB.Z}
	if err := binary.Write(w, order, lb); err != nil {
		return err
	}
	voxelSize := 2 * b.HalfUnit.X
	if err := binary.Write(w, order, voxelSize); err != nil {
		return err
	}

	lx, ly, lz := b.MeshVoxLB[0], b.MeshVoxLB[1], b.MeshVoxLB[2]
	_, uy, uz := b.MeshVoxUB[0], b.MeshVoxUB[1], b.MeshVoxUB[2]
	bounds := [6]int32{int32(lx), int32(ly), int32(lz), int32(uz), int32(uy), int32(uz)}
	if err := binary.Write(w, order, bounds); err != nil {
		return err
	}

	bits := meshAABBBits(voxels, b)
	_, err := w.Write(EncodeRLE(bits))
	return err
}

func meshAABBBits(voxels *bitgrid.Grid, b *mesh.Bounds) []bool {
	n := b.N
	var bits []bool
	for x := b.MeshVoxLB[0]; x <= b.MeshVoxUB[0]; x++ {
		for y := b.MeshVoxLB[1]; y <= b.MeshVoxUB[1]; y++ {
			for z := b.MeshVoxLB[2]; z <= b.MeshVoxUB[2]; z++ {
				bits = append(bits, voxels.Test(bitgrid.Linear(n, x, y, z)))
			}
		}
	}
	return bits
}
