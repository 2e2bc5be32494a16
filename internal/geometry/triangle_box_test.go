package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcleres/polycubist/internal/geometry"
)

func TestTriangleBoxOverlapContainedTriangle(t *testing.T) {
	box := geometry.AABB{Center: geometry.Vec3{X: 0, Y: 0, Z: 0}, Half: geometry.Vec3{X: 1, Y: 1, Z: 1}}
	tri := geometry.Triangle{
		A: geometry.Vec3{X: -0.2, Y: -0.2, Z: 0},
		B: geometry.Vec3{X: 0.2, Y: -0.2, Z: 0},
		C: geometry.Vec3{X: 0, Y: 0.2, Z: 0},
	}
	assert.True(t, geometry.TriangleBoxOverlap(box, tri))
}

func TestTriangleBoxOverlapDisjoint(t *testing.T) {
	box := geometry.AABB{Center: geometry.Vec3{X: 0, Y: 0, Z: 0}, Half: geometry.Vec3{X: 1, Y: 1, Z: 1}}
	tri := geometry.Triangle{
		A: geometry.Vec3{X: 10, Y: 10, Z: 10},
		B: geometry.Vec3{X: 11, Y: 10, Z: 10},
		C: geometry.Vec3{X: 10, Y: 11, Z: 10},
	}
	assert.False(t, geometry.TriangleBoxOverlap(box, tri))
}

func TestTriangleBoxOverlapEdgeOnlyTouch(t *testing.T) {
	// Triangle whose closest edge passes exactly through a box corner
	// region, exercising the edge-cross-product axes rather than the
	// simple face-normal slab test.
	box := geometry.AABB{Center: geometry.Vec3{X: 0, Y: 0, Z: 0}, Half: geometry.Vec3{X: 1, Y: 1, Z: 1}}
	tri := geometry.Triangle{
		A: geometry.Vec3{X: 1, Y: 1, Z: -5},
		B: geometry.Vec3{X: 1, Y: 1, Z: 5},
		C: geometry.Vec3{X: 3, Y: 3, Z: 0},
	}
	assert.True(t, geometry.TriangleBoxOverlap(box, tri))
}

func TestTriangleBoxOverlapSeparatedByFaceNormal(t *testing.T) {
	box := geometry.AABB{Center: geometry.Vec3{X: 0, Y: 0, Z: 0}, Half: geometry.Vec3{X: 1, Y: 1, Z: 1}}
	// Triangle lies entirely beyond the box on the X axis.
	tri := geometry.Triangle{
		A: geometry.Vec3{X: 5, Y: -0.5, Z: -0.5},
		B: geometry.Vec3{X: 5, Y: 0.5, Z: -0.5},
		C: geometry.Vec3{X: 5, Y: 0, Z: 0.5},
	}
	assert.False(t, geometry.TriangleBoxOverlap(box, tri))
}

func TestVec3Arithmetic(t *testing.T) {
	a := geometry.Vec3{X: 1, Y: 2, Z: 3}
	b := geometry.Vec3{X: 4, Y: 5, Z: 6}

	assert.Equal(t, geometry.Vec3{X: 5, Y: 7, Z: 9}, a.Add(b))
	assert.Equal(t, geometry.Vec3{X: -3, Y: -3, Z: -3}, a.Sub(b))
	assert.InDelta(t, 32.0, a.Dot(b), 1e-9)
	assert.Equal(t, geometry.Vec3{X: 1, Y: 2, Z: 3}, a.Min(b))
	assert.Equal(t, geometry.Vec3{X: 4, Y: 5, Z: 6}, a.Max(b))
}
