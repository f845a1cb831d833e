package obj8

// Fragment is the geometry parsed from one OBJ8 mesh-source file.
//
// Vertices and UVs are parallel: index i of both describes the same vertex.
// Indices reference Vertices, its length is always a multiple of three, and
// every value is validated to be in range, so downstream code can trust the
// buffers without re-checking.
type Fragment struct {
	Name     string
	Vertices [][3]float32
	UVs      [][2]float32
	Indices  []uint32
	Texture  string
}

// TriangleCount returns the number of complete triangles.
func (f *Fragment) TriangleCount() int {
	return len(f.Indices) / 3
}

// Empty reports whether the fragment carries nothing worth merging.
func (f *Fragment) Empty() bool {
	return len(f.Vertices) == 0 || len(f.Indices) == 0
}
