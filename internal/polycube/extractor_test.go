package polycube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcleres/polycubist/internal/bitgrid"
	"github.com/dcleres/polycubist/internal/mesh"
	"github.com/dcleres/polycubist/internal/polycube"
	"github.com/dcleres/polycubist/internal/tensor"
	"github.com/dcleres/polycubist/internal/voting"
)

func boxTensor(n, lo, hi int) *tensor.Tensor {
	g := bitgrid.New(n)
	for x := lo; x <= hi; x++ {
		for y := lo; y <= hi; y++ {
			for z := lo; z <= hi; z++ {
				g.SetAtomic(bitgrid.Linear(n, x, y, z))
			}
		}
	}
	b := &mesh.Bounds{N: n, MeshVoxLB: [3]int{0, 0, 0}, MeshVoxUB: [3]int{n - 1, n - 1, n - 1}}
	return tensor.Build(g, b)
}

func TestExtractProducesNonEmptyPolycubeForABox(t *testing.T) {
	n := 20
	tn := boxTensor(n, 4, 14)
	acc := voting.Build(tn, voting.DefaultMaskSize)

	r := polycube.Extract(tn, acc, polycube.DefaultConfig())
	require.NotNil(t, r)

	any := false
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				if r.Get(x, y, z) {
					any = true
				}
			}
		}
	}
	assert.True(t, any, "extraction of a solid box should fill some polycube cells")
	assert.Len(t, r.Zs, polycube.DefaultConfig().ZLevels)
}

func TestExtractOnEmptyTensorReturnsEmptyResult(t *testing.T) {
	n := 8
	tn := tensor.Build(bitgrid.New(n), &mesh.Bounds{N: n, MeshVoxUB: [3]int{n - 1, n - 1, n - 1}})
	acc := voting.Build(tn, voting.DefaultMaskSize)

	r := polycube.Extract(tn, acc, polycube.DefaultConfig())
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				assert.False(t, r.Get(x, y, z))
			}
		}
	}
}

func TestGetOutOfRangeIsFalse(t *testing.T) {
	r := &polycube.Result{N: 4, P: make([]bool, 64)}
	assert.False(t, r.Get(-1, 0, 0))
	assert.False(t, r.Get(0, 10, 0))
}
