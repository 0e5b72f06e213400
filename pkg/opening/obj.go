package opening

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteOBJ writes the mesh in Wavefront OBJ form. Faces reference both
// vertex and normal (indices in OBJ are 1-based).
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}
	for i := 0; i < len(m.Vertices); i += 3 {
		fmt.Fprintf(bw, "v %g %g %g\n", m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2])
	}
	for i := 0; i < len(m.Normals); i += 3 {
		fmt.Fprintf(bw, "vn %g %g %g\n", m.Normals[i], m.Normals[i+1], m.Normals[i+2])
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("opening: write obj: %w", err)
	}
	return nil
}

// SaveOBJ writes the mesh to path.
func SaveOBJ(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening: create obj: %w", err)
	}
	if err := WriteOBJ(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
