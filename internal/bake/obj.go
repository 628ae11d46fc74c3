package bake

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/driftline/veldt/pkg/terrain"
)

// WriteOBJ writes tile meshes as a Wavefront OBJ: one object per tile with
// positions, normals and triangle faces sharing a global 1-based index
// space. Tiles are written in row-major order so repeated bakes produce
// identical files.
func WriteOBJ(w io.Writer, meshes []*terrain.TileMesh) error {
	sorted := make([]*terrain.TileMesh, len(meshes))
	copy(sorted, meshes)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Tile.Z != sorted[j].Tile.Z {
			return sorted[i].Tile.Z < sorted[j].Tile.Z
		}
		return sorted[i].Tile.X < sorted[j].Tile.X
	})

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# veldt terrain bake")

	offset := uint32(1) // OBJ indices are 1-based
	for _, m := range sorted {
		fmt.Fprintf(bw, "o tile_%d_%d\n", m.Tile.X, m.Tile.Z)
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v.Position.X, v.Position.Y, v.Position.Z)
		}
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal.X, v.Normal.Y, v.Normal.Z)
		}
		for i := 0; i+2 < len(m.Indices); i += 3 {
			a := m.Indices[i] + offset
			b := m.Indices[i+1] + offset
			c := m.Indices[i+2] + offset
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		}
		offset += uint32(len(m.Vertices))
	}

	return bw.Flush()
}

// SaveOBJ writes tile meshes to an OBJ file, creating parent directories as
// needed.
func SaveOBJ(path string, meshes []*terrain.TileMesh) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := WriteOBJ(f, meshes); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
