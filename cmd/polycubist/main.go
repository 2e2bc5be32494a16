// Command polycubist voxelizes a mesh and extracts a polycube
// approximation of it, writing the result in one of three output formats.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dcleres/polycubist/internal/bitgrid"
	"github.com/dcleres/polycubist/internal/mesh"
	"github.com/dcleres/polycubist/internal/meshio"
	"github.com/dcleres/polycubist/internal/polycube"
	"github.com/dcleres/polycubist/internal/tensor"
	"github.com/dcleres/polycubist/internal/voting"
	"github.com/dcleres/polycubist/internal/voxelize"
	"github.com/dcleres/polycubist/internal/writer"
)

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: polycubist grid_size num_threads input_file output_file [format]")
	fmt.Fprintln(os.Stderr, "  format: dense | compressed | sparse (default inferred from output_file's extension)")
}

func main() {
	if len(os.Args) < 5 || len(os.Args) > 6 {
		usage()
		os.Exit(1)
	}

	n, err := strconv.Atoi(os.Args[1])
	if err != nil {
		fatalf("Error: grid_size must be a positive integer: %v", err)
	}
	threads, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fatalf("Error: num_threads must be a positive integer: %v", err)
	}
	inputPath := os.Args[3]
	outputPath := os.Args[4]

	format := ""
	if len(os.Args) == 6 {
		format = os.Args[5]
	}
	format, err = resolveFormat(format, outputPath)
	if err != nil {
		fatalf("Error: %v", err)
	}

	fmt.Printf("Loading mesh from %s...\n", inputPath)
	m, err := meshio.Load(inputPath)
	if err != nil {
		fatalf("Error loading mesh: %v", err)
	}
	fmt.Printf("  Loaded %d vertices, %d triangles\n", len(m.Vertices), m.NumTriangles())

	fmt.Printf("Building %dx%dx%d grid with %d threads...\n", n, n, n, threads)
	engine, err := voxelize.NewEngine(m, voxelize.Config{N: n, Threads: threads, Log: os.Stdout})
	if err != nil {
		fatalf("Error building engine: %v", err)
	}
	defer engine.Stop()

	if err := engine.VoxelizeSurface(); err != nil {
		fatalf("Error surface voxelizing: %v", err)
	}
	if err := engine.VoxelizeSolid(); err != nil {
		fatalf("Error solid voxelizing: %v", err)
	}

	fmt.Println("Extracting polycube approximation...")
	t := tensor.Build(engine.Voxels(), engine.Bounds())
	acc := voting.Build(t, voting.DefaultMaskSize)
	result := polycube.Extract(t, acc, polycube.DefaultConfig())

	fmt.Printf("Writing %s output to %s...\n", format, outputPath)
	if err := write(format, outputPath, result.Voxels(), engine.Bounds()); err != nil {
		fatalf("Error writing output: %v", err)
	}

	fmt.Println("Done!")
}

// resolveFormat validates an explicit format argument or, if none was
// given, infers one from output_file's extension: .binvox -> dense,
// .bin -> compressed, .txt -> sparse.
func resolveFormat(explicit, outputPath string) (string, error) {
	if explicit != "" {
		switch explicit {
		case "dense", "compressed", "sparse":
			return explicit, nil
		default:
			return "", fmt.Errorf("unknown format %q", explicit)
		}
	}

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".binvox":
		return "dense", nil
	case ".bin":
		return "compressed", nil
	case ".txt":
		return "sparse", nil
	default:
		return "", fmt.Errorf("cannot infer format from extension %q; pass an explicit format argument", filepath.Ext(outputPath))
	}
}

func write(format, path string, voxels *bitgrid.Grid, bounds *mesh.Bounds) error {
	switch format {
	case "dense":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return writer.WriteDense(f, voxels, bounds)
	case "compressed":
		return writer.WriteCompressedFile(path, voxels, bounds)
	case "sparse":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return writer.WriteSparse(f, voxels, bounds)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
