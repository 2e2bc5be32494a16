// Package mesh holds the indexed triangle mesh the engine consumes and the
// mesh-derived bounds (world box, voxel size, mesh AABB) used to size and
// align the voxel grid.
package mesh

import (
	"math/rand/v2"

	"github.com/dcleres/polycubist/internal/geometry"
)

// Mesh is a loaded indexed triangle mesh: vertices plus triangles of
// vertex indices. Read-only once loaded.
type Mesh struct {
	Vertices  []geometry.Vec3
	Triangles [][3]int
}

// NumTriangles returns the number of triangles in the mesh.
func (m *Mesh) NumTriangles() int { return len(m.Triangles) }

// Triangle returns the i'th triangle as a geometry.Triangle.
func (m *Mesh) Triangle(i int) geometry.Triangle {
	t := m.Triangles[i]
	return geometry.Triangle{
		A: m.Vertices[t[0]],
		B: m.Vertices[t[1]],
		C: m.Vertices[t[2]],
	}
}

// ShuffleTriangles randomly permutes the triangle order in place, using the
// given seed, so that parallel surface-voxelization work is spread evenly
// across the thread pool rather than clustered by input file order.
func (m *Mesh) ShuffleTriangles(seed uint64) {
	r := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	r.Shuffle(len(m.Triangles), func(i, j int) {
		m.Triangles[i], m.Triangles[j] = m.Triangles[j], m.Triangles[i]
	})
}

// Empty reports whether the mesh has no vertices (the condition that
// triggers a MeshLoadError at load time).
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Vertices) == 0
}
