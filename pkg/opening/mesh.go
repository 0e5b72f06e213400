package opening

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
)

// defaultMeshCells is the marching cubes resolution along the longest
// axis of the solid's bounding box.
const defaultMeshCells = 200

// Mesh is a flat triangle mesh. Vertices and normals are packed xyz
// triples; indices address vertices, three per triangle.
type Mesh struct {
	Name     string    `json:"name,omitempty"`
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0 || len(m.Indices) == 0
}

// Tessellate meshes a solid with marching cubes. Triangles are not
// deduplicated: each contributes three vertices with the face normal.
func (c *Carver) Tessellate(s sdf.SDF3, name string) *Mesh {
	renderer := render.NewMarchingCubesUniform(c.cells)
	triangles := render.ToTriangles(s, renderer)

	mesh := &Mesh{
		Name:     name,
		Vertices: make([]float32, 0, len(triangles)*9),
		Normals:  make([]float32, 0, len(triangles)*9),
		Indices:  make([]uint32, 0, len(triangles)*3),
	}
	for i, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			mesh.Vertices = append(mesh.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			mesh.Normals = append(mesh.Normals, float32(n.X), float32(n.Y), float32(n.Z))
			mesh.Indices = append(mesh.Indices, uint32(i*3+j))
		}
	}
	return mesh
}
