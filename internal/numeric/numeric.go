// Package numeric provides small generic numeric helpers shared by the
// mesh bounds, the surface voxelizer and the polycube extractor, so
// clamp/median/argmax logic is not hand-duplicated per concrete numeric
// type.
package numeric

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Clamp restricts v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Median returns the median of a slice of ordered values. The slice is
// sorted in place. Panics on an empty slice.
func Median[T constraints.Ordered](values []T) T {
	if len(values) == 0 {
		panic("numeric: Median of empty slice")
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values[len(values)/2]
}

// ArgMax returns the index of the maximum element of values. Panics on an
// empty slice. Ties resolve to the first occurrence.
func ArgMax[T constraints.Ordered](values []T) int {
	if len(values) == 0 {
		panic("numeric: ArgMax of empty slice")
	}
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
