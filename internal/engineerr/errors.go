// Package engineerr defines the engine's error kinds per the error-handling
// design: MeshLoadError, InvalidParameter, and IOError. Errors are plain
// values, wrapped with fmt.Errorf/%w so callers can errors.Is against the
// sentinels below.
package engineerr

import "errors"

var (
	// ErrMeshLoad indicates the mesh file was missing, unparseable, or
	// empty. The engine enters a no-op state after this error: subsequent
	// voxelization calls return immediately and writers emit empty
	// headers with zero bodies.
	ErrMeshLoad = errors.New("engine: mesh load error")

	// ErrInvalidParameter indicates N < 1 or T < 1, rejected at
	// construction time.
	ErrInvalidParameter = errors.New("engine: invalid parameter")

	// ErrIO indicates a writer failed to read or write its target file.
	ErrIO = errors.New("engine: io error")
)
