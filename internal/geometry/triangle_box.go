package geometry

import "math"

// Triangle is a triangle given by its three vertices.
type Triangle struct {
	A, B, C Vec3
}

// AABB is an axis-aligned box given by its half-extents and center.
type AABB struct {
	Center Vec3
	Half   Vec3
}

// TriangleBoxOverlap reports whether a triangle overlaps an axis-aligned
// box, using the Akenine-Möller separating-axis test: the 3 box-face
// normals, the triangle normal, and the 9 cross products of triangle
// edges with box axes. The test is total — it never fails, only floating
// point edge cases (exact coplanarity) may classify a borderline voxel
// either way, which the solid fill and voting stage are built to tolerate.
func TriangleBoxOverlap(box AABB, tri Triangle) bool {
	// Translate triangle so the box center becomes the origin.
	v0 := tri.A.Sub(box.Center)
	v1 := tri.B.Sub(box.Center)
	v2 := tri.C.Sub(box.Center)

	e0 := v1.Sub(v0)
	e1 := v2.Sub(v1)
	e2 := v0.Sub(v2)

	// 9 axis tests: cross(edge, box axis) for each of the 3 edges and 3
	// box axes.
	axes := [3]Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	edges := [3]Vec3{e0, e1, e2}
	verts := [3]Vec3{v0, v1, v2}

	for _, e := range edges {
		for _, a := range axes {
			axis := e.Cross(a)
			if axis.X == 0 && axis.Y == 0 && axis.Z == 0 {
				continue // edge parallel to box axis, no separating test
			}
			if !overlapOnAxis(axis, verts, box.Half) {
				return false
			}
		}
	}

	// 3 box-face-normal tests: an AABB slab test per axis.
	for i, a := range axes {
		minV, maxV := projectTriangle(a, verts)
		half := componentAt(box.Half, i)
		if minV > half || maxV < -half {
			return false
		}
	}

	// Triangle-normal test: the plane through the triangle must pass
	// through the box.
	normal := e0.Cross(e1)
	if !planeBoxOverlap(normal, v0, box.Half) {
		return false
	}

	return true
}

func componentAt(v Vec3, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func projectTriangle(axis Vec3, verts [3]Vec3) (min, max float64) {
	p0 := axis.Dot(verts[0])
	p1 := axis.Dot(verts[1])
	p2 := axis.Dot(verts[2])
	min = math.Min(p0, math.Min(p1, p2))
	max = math.Max(p0, math.Max(p1, p2))
	return min, max
}

func overlapOnAxis(axis Vec3, verts [3]Vec3, half Vec3) bool {
	min, max := projectTriangle(axis, verts)
	r := half.X*math.Abs(axis.X) + half.Y*math.Abs(axis.Y) + half.Z*math.Abs(axis.Z)
	return !(min > r || max < -r)
}

// planeBoxOverlap tests whether the plane with the given normal, passing
// through point p, intersects the box of the given half-extents centered
// at the origin.
func planeBoxOverlap(normal, p Vec3, half Vec3) bool {
	var minV, maxV Vec3
	minV.X, maxV.X = negIf(normal.X, half.X)
	minV.Y, maxV.Y = negIf(normal.Y, half.Y)
	minV.Z, maxV.Z = negIf(normal.Z, half.Z)

	d := normal.Dot(p)
	distMin := normal.Dot(Vec3{minV.X, minV.Y, minV.Z}) - d
	distMax := normal.Dot(Vec3{maxV.X, maxV.Y, maxV.Z}) - d
	return distMin <= 0 && distMax >= 0
}

func negIf(n, h float64) (minV, maxV float64) {
	if n > 0 {
		return -h, h
	}
	return h, -h
}
