package mesh

import (
	"fmt"
	"math"

	"github.com/dcleres/polycubist/internal/engineerr"
	"github.com/dcleres/polycubist/internal/geometry"
	"github.com/dcleres/polycubist/internal/numeric"
)

// meshEpsilon pads the mesh AABB in both directions before deriving the
// cubic world bound, per the grid-parameters section of the spec.
const meshEpsilon = 1e-4

// Bounds holds the immutable grid parameters derived from a mesh and a
// resolution: the cubic world bound, the per-axis half-voxel size, and the
// mesh AABB in both world and voxel coordinates.
type Bounds struct {
	N int

	WorldLB, WorldUB geometry.Vec3
	HalfUnit         geometry.Vec3

	MeshLB, MeshUB geometry.Vec3

	MeshVoxLB, MeshVoxUB [3]int
}

// ComputeBounds derives a Bounds from the mesh's vertex list and a grid
// resolution n. Returns engineerr.ErrMeshLoad wrapped if the mesh has no
// vertices, and engineerr.ErrInvalidParameter wrapped if n < 1.
func ComputeBounds(m *Mesh, n int) (*Bounds, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: grid resolution %d must be positive", engineerr.ErrInvalidParameter, n)
	}
	if m.Empty() {
		return nil, fmt.Errorf("%w: mesh has no vertices", engineerr.ErrMeshLoad)
	}

	meshLB := m.Vertices[0]
	meshUB := m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		meshLB = meshLB.Min(v)
		meshUB = meshUB.Max(v)
	}

	eps := geometry.Vec3{X: meshEpsilon, Y: meshEpsilon, Z: meshEpsilon}
	meshLB = meshLB.Sub(eps)
	meshUB = meshUB.Add(eps)

	lo := math.Min(meshLB.X, math.Min(meshLB.Y, meshLB.Z))
	hi := math.Max(meshUB.X, math.Max(meshUB.Y, meshUB.Z))

	worldLB := geometry.Vec3{X: lo, Y: lo, Z: lo}
	worldUB := geometry.Vec3{X: hi, Y: hi, Z: hi}

	extent := worldUB.X - worldLB.X
	half := extent / (2 * float64(n))
	halfUnit := geometry.Vec3{X: half, Y: half, Z: half}

	b := &Bounds{
		N:        n,
		WorldLB:  worldLB,
		WorldUB:  worldUB,
		HalfUnit: halfUnit,
		MeshLB:   meshLB,
		MeshUB:   meshUB,
	}
	b.MeshVoxLB = b.WorldToVoxel(meshLB)
	b.MeshVoxUB = b.WorldToVoxel(meshUB)

	for i := 0; i < 3; i++ {
		b.MeshVoxLB[i] = numeric.Clamp(b.MeshVoxLB[i], 0, n-1)
		b.MeshVoxUB[i] = numeric.Clamp(b.MeshVoxUB[i], b.MeshVoxLB[i], n-1)
	}

	return b, nil
}

// WorldToVoxel maps a world-space point to the integer voxel index
// containing it: floor((p-worldLB)*N/(worldUB-worldLB)).
func (b *Bounds) WorldToVoxel(p geometry.Vec3) [3]int {
	extent := b.WorldUB.X - b.WorldLB.X
	scale := float64(b.N) / extent
	return [3]int{
		int(math.Floor((p.X - b.WorldLB.X) * scale)),
		int(math.Floor((p.Y - b.WorldLB.Y) * scale)),
		int(math.Floor((p.Z - b.WorldLB.Z) * scale)),
	}
}

// VoxelCenter returns the world-space center of voxel (x,y,z).
func (b *Bounds) VoxelCenter(x, y, z int) geometry.Vec3 {
	return geometry.Vec3{
		X: b.WorldLB.X + (float64(x)+0.5)*2*b.HalfUnit.X,
		Y: b.WorldLB.Y + (float64(y)+0.5)*2*b.HalfUnit.Y,
		Z: b.WorldLB.Z + (float64(z)+0.5)*2*b.HalfUnit.Z,
	}
}
