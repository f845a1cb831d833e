// Package geometry concatenates the fragments of one livery into a single
// mesh ready for the container writer.
package geometry

import (
	"csl2glb/internal/diag"
	"csl2glb/internal/obj8"
)

// Merged is the combined mesh of one livery: parallel vertex and UV
// buffers, triangle indices shifted into the combined index space, and
// every distinct texture reference in first-declared order.
type Merged struct {
	Vertices [][3]float32
	UVs      [][2]float32
	Indices  []uint32
	Textures []string
}

// TriangleCount returns the number of triangles in the combined mesh.
func (m *Merged) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Empty reports whether there is nothing to serialize.
func (m *Merged) Empty() bool {
	return m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0
}

// Merge concatenates fragments in declaration order. Each fragment's
// indices are renumbered by the vertex count that preceded it, so triangles
// keep pointing at their own vertices. Fragments that bring no usable
// geometry are skipped with a diagnostic; when every fragment is, the
// result is nil and the livery has nothing to emit.
func Merge(frags []*obj8.Fragment) (*Merged, diag.List) {
	var diags diag.List
	m := &Merged{}
	seen := make(map[string]bool)
	offset := uint32(0)

	for _, f := range frags {
		switch {
		case len(f.Vertices) == 0:
			diags.Addf(diag.FragmentSkipped, f.Name, 0, "no vertices")
			continue
		case len(f.Indices) == 0:
			diags.Addf(diag.FragmentSkipped, f.Name, 0, "no valid triangles")
			continue
		case len(f.UVs) != len(f.Vertices):
			diags.Addf(diag.FragmentSkipped, f.Name, 0,
				"uv/vertex mismatch: %d uvs for %d vertices", len(f.UVs), len(f.Vertices))
			continue
		}

		m.Vertices = append(m.Vertices, f.Vertices...)
		m.UVs = append(m.UVs, f.UVs...)
		for _, idx := range f.Indices {
			m.Indices = append(m.Indices, idx+offset)
		}
		if f.Texture != "" && !seen[f.Texture] {
			seen[f.Texture] = true
			m.Textures = append(m.Textures, f.Texture)
		}
		offset += uint32(len(f.Vertices))
	}

	if m.Empty() {
		return nil, diags
	}
	return m, diags
}
