// Package meshio loads indexed triangle meshes from simple ASCII file
// formats. It exists purely to let cmd/polycubist run end-to-end against
// real mesh files; the voxelization core never imports it directly.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dcleres/polycubist/internal/engineerr"
	"github.com/dcleres/polycubist/internal/geometry"
	"github.com/dcleres/polycubist/internal/mesh"
)

// Load reads a mesh file, dispatching on the path's extension: ".obj" loads
// Wavefront OBJ, ".off" loads Object File Format. Any other extension,
// including ".stl", returns engineerr.ErrMeshLoad wrapping "unsupported
// format" — STL is deliberately left unimplemented.
func Load(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engineerr.ErrMeshLoad, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(f)
	case ".off":
		return LoadOFF(f)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", engineerr.ErrMeshLoad, filepath.Ext(path))
	}
}

// LoadOBJ reads the subset of Wavefront OBJ this tool cares about: "v x y
// z" vertex lines and "f a b c ..." face lines (1-based indices, optional
// "/vt/vn" suffixes ignored, fan-triangulated if more than three
// vertices). Every other line is ignored.
func LoadOBJ(r io.Reader) (*mesh.Mesh, error) {
	m := &mesh.Mesh{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: malformed vertex line %q", engineerr.ErrMeshLoad, scanner.Text())
			}
			v, err := parseVec3(fields[1], fields[2], fields[3])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", engineerr.ErrMeshLoad, err)
			}
			m.Vertices = append(m.Vertices, v)
		case "f":
			idx := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				tok = strings.SplitN(tok, "/", 2)[0]
				i, err := strconv.Atoi(tok)
				if err != nil {
					return nil, fmt.Errorf("%w: malformed face line %q", engineerr.ErrMeshLoad, scanner.Text())
				}
				if i < 0 {
					i = len(m.Vertices) + i + 1
				}
				idx = append(idx, i-1)
			}
			if len(idx) < 3 {
				return nil, fmt.Errorf("%w: face with fewer than 3 vertices %q", engineerr.ErrMeshLoad, scanner.Text())
			}
			for i := 1; i+1 < len(idx); i++ {
				m.Triangles = append(m.Triangles, [3]int{idx[0], idx[i], idx[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", engineerr.ErrMeshLoad, err)
	}
	if m.Empty() {
		return nil, fmt.Errorf("%w: no vertices in OBJ input", engineerr.ErrMeshLoad)
	}
	return m, nil
}

// LoadOFF reads the classic OFF format: a magic "OFF" line, a "nverts
// nfaces nedges" count line, nverts "x y z" lines, then nfaces "k i0 i1 ...
// i(k-1)" lines (k-gons are fan-triangulated).
func LoadOFF(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)

	line, ok := nextNonEmptyLine(scanner)
	if !ok {
		return nil, fmt.Errorf("%w: empty OFF input", engineerr.ErrMeshLoad)
	}
	if strings.TrimSpace(line) != "OFF" {
		return nil, fmt.Errorf("%w: missing OFF magic header", engineerr.ErrMeshLoad)
	}

	countLine, ok := nextNonEmptyLine(scanner)
	if !ok {
		return nil, fmt.Errorf("%w: missing OFF count line", engineerr.ErrMeshLoad)
	}
	counts := strings.Fields(countLine)
	if len(counts) < 2 {
		return nil, fmt.Errorf("%w: malformed OFF count line %q", engineerr.ErrMeshLoad, countLine)
	}
	nverts, err := strconv.Atoi(counts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: malformed vertex count %q", engineerr.ErrMeshLoad, counts[0])
	}
	nfaces, err := strconv.Atoi(counts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: malformed face count %q", engineerr.ErrMeshLoad, counts[1])
	}

	m := &mesh.Mesh{}
	for i := 0; i < nverts; i++ {
		vline, ok := nextNonEmptyLine(scanner)
		if !ok {
			return nil, fmt.Errorf("%w: expected %d vertices, found fewer", engineerr.ErrMeshLoad, nverts)
		}
		fields := strings.Fields(vline)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: malformed OFF vertex line %q", engineerr.ErrMeshLoad, vline)
		}
		v, err := parseVec3(fields[0], fields[1], fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", engineerr.ErrMeshLoad, err)
		}
		m.Vertices = append(m.Vertices, v)
	}

	for i := 0; i < nfaces; i++ {
		fline, ok := nextNonEmptyLine(scanner)
		if !ok {
			return nil, fmt.Errorf("%w: expected %d faces, found fewer", engineerr.ErrMeshLoad, nfaces)
		}
		fields := strings.Fields(fline)
		if len(fields) < 1 {
			return nil, fmt.Errorf("%w: malformed OFF face line %q", engineerr.ErrMeshLoad, fline)
		}
		k, err := strconv.Atoi(fields[0])
		if err != nil || len(fields) < 1+k || k < 3 {
			return nil, fmt.Errorf("%w: malformed OFF face line %q", engineerr.ErrMeshLoad, fline)
		}
		idx := make([]int, k)
		for j := 0; j < k; j++ {
			vi, err := strconv.Atoi(fields[1+j])
			if err != nil {
				return nil, fmt.Errorf("%w: malformed OFF face index %q", engineerr.ErrMeshLoad, fields[1+j])
			}
			idx[j] = vi
		}
		for j := 1; j+1 < k; j++ {
			m.Triangles = append(m.Triangles, [3]int{idx[0], idx[j], idx[j+1]})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", engineerr.ErrMeshLoad, err)
	}
	if m.Empty() {
		return nil, fmt.Errorf("%w: no vertices in OFF input", engineerr.ErrMeshLoad)
	}
	return m, nil
}

func nextNonEmptyLine(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}

func parseVec3(sx, sy, sz string) (geometry.Vec3, error) {
	x, err := strconv.ParseFloat(sx, 64)
	if err != nil {
		return geometry.Vec3{}, err
	}
	y, err := strconv.ParseFloat(sy, 64)
	if err != nil {
		return geometry.Vec3{}, err
	}
	z, err := strconv.ParseFloat(sz, 64)
	if err != nil {
		return geometry.Vec3{}, err
	}
	return geometry.Vec3{X: x, Y: y, Z: z}, nil
}
