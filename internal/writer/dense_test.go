package writer_test

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcleres/polycubist/internal/bitgrid"
	"github.com/dcleres/polycubist/internal/geometry"
	"github.com/dcleres/polycubist/internal/mesh"
	"github.com/dcleres/polycubist/internal/writer"
)

func smallBounds(n int) *mesh.Bounds {
	return &mesh.Bounds{
		N:         n,
		WorldLB:   geometry.Vec3{X: 0, Y: 0, Z: 0},
		WorldUB:   geometry.Vec3{X: float64(n), Y: float64(n), Z: float64(n)},
		HalfUnit:  geometry.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
		MeshLB:    geometry.Vec3{X: 0, Y: 0, Z: 0},
		MeshUB:    geometry.Vec3{X: float64(n), Y: float64(n), Z: float64(n)},
		MeshVoxLB: [3]int{0, 0, 0},
		MeshVoxUB: [3]int{n - 1, n - 1, n - 1},
	}
}

func TestWriteDenseHeaderAndBody(t *testing.T) {
	n := 2
	g := bitgrid.New(n)
	g.SetAtomic(bitgrid.Linear(n, 0, 0, 0))
	g.SetAtomic(bitgrid.Linear(n, 1, 1, 1))
	b := smallBounds(n)

	var buf bytes.Buffer
	require.NoError(t, writer.WriteDense(&buf, g, b))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "#binvox 1", lines[0])
	assert.Equal(t, "dim 2 2 2", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "translate"))
	assert.True(t, strings.HasPrefix(lines[3], "scale"))
	assert.Equal(t, "data", lines[4])

	body := buf.Bytes()[strings.Index(buf.String(), "data\n")+len("data\n"):]
	assert.Equal(t, []bool{true, false, false, false, false, false, false, true}, writer.DecodeRLE(body))
}

func TestWriteDenseCoversFullCubeRegardlessOfMeshAABB(t *testing.T) {
	n := 3
	g := bitgrid.New(n)
	b := smallBounds(n)
	b.MeshVoxLB = [3]int{1, 1, 1}
	b.MeshVoxUB = [3]int{1, 1, 1}
	g.SetAtomic(bitgrid.Linear(n, 0, 0, 0))

	var buf bytes.Buffer
	require.NoError(t, writer.WriteDense(&buf, g, b))

	r := bufio.NewReader(&buf)
	for i := 0; i < 5; i++ {
		_, err := r.ReadString('\n')
		require.NoError(t, err)
	}
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	decoded := writer.DecodeRLE(rest)
	assert.Equal(t, n*n*n, len(decoded))
	assert.True(t, decoded[0])
}
