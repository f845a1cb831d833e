package obj8

import (
	"path/filepath"
	"strings"
	"testing"

	"csl2glb/internal/diag"
)

const bodyObj = `A
800
OBJ

TEXTURE	A320_DAL.png
POINT_COUNTS	5 0 0 6

# fuselage strip
VT	0.0 0.0 0.0	0 1 0	0.00 0.00
VT	1.0 0.0 0.0	0 1 0	0.25 0.00
VT	1.0 1.0 0.0	0 1 0	0.25 0.50
VT	0.0 1.0 0.0	0 1 0	0.00 0.50
VT	0.5 2.0 0.0	0 1 0	0.50 1.00

IDX10	0 1 2 3 4 10

ATTR_LOD 0 4000
TRIS	0 6
`

func TestParseKeepsOnlyValidTriangles(t *testing.T) {
	frag, diags := Parse(strings.NewReader(bodyObj), "body.obj")

	if got := len(frag.Vertices); got != 5 {
		t.Fatalf("vertices = %d, want 5", got)
	}
	if got := len(frag.UVs); got != len(frag.Vertices) {
		t.Fatalf("uvs = %d, want %d (parallel to vertices)", got, len(frag.Vertices))
	}
	if got := frag.TriangleCount(); got != 1 {
		t.Fatalf("triangles = %d, want 1", got)
	}
	want := []uint32{0, 1, 2}
	for i, idx := range frag.Indices {
		if idx != want[i] {
			t.Errorf("indices[%d] = %d, want %d", i, idx, want[i])
		}
	}
	if got := diags.Total(diag.TrianglesDropped); got != 1 {
		t.Errorf("dropped triangles = %d, want 1", got)
	}
	if frag.Texture != "A320_DAL.png" {
		t.Errorf("texture = %q, want %q", frag.Texture, "A320_DAL.png")
	}
}

func TestParseVertexColumns(t *testing.T) {
	src := "VT -1.5 2.0 3.25 0 1 0 0.125 0.75\nIDX 0 0 0\n"
	frag, diags := Parse(strings.NewReader(src), "wing.obj")

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if want := [3]float32{-1.5, 2.0, 3.25}; frag.Vertices[0] != want {
		t.Errorf("position = %v, want %v", frag.Vertices[0], want)
	}
	if want := [2]float32{0.125, 0.75}; frag.UVs[0] != want {
		t.Errorf("uv = %v, want %v", frag.UVs[0], want)
	}
}

func TestParseIndicesSpanDirectives(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 4; i++ {
		sb.WriteString("VT 0 0 0 0 1 0 0 0\n")
	}
	sb.WriteString("IDX10 0 1 2 3\n")
	sb.WriteString("IDX 0\n")
	sb.WriteString("IDX 1\n")

	frag, diags := Parse(strings.NewReader(sb.String()), "strip.obj")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []uint32{0, 1, 2, 3, 0, 1}
	if len(frag.Indices) != len(want) {
		t.Fatalf("indices = %v, want %v", frag.Indices, want)
	}
	for i := range want {
		if frag.Indices[i] != want[i] {
			t.Errorf("indices[%d] = %d, want %d", i, frag.Indices[i], want[i])
		}
	}
}

func TestParseDanglingRemainderDiscarded(t *testing.T) {
	src := "VT 0 0 0 0 1 0 0 0\nVT 1 0 0 0 1 0 1 0\nIDX10 0 1 0 1 0\n"
	frag, diags := Parse(strings.NewReader(src), "tail.obj")

	if got := frag.TriangleCount(); got != 1 {
		t.Errorf("triangles = %d, want 1", got)
	}
	if got := diags.Total(diag.TrianglesDropped); got != 0 {
		t.Errorf("dropped = %d, want 0 (remainder is not a triangle)", got)
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	cases := []struct {
		name string
		line string
		kind diag.Kind
	}{
		{"short vertex", "VT 1 2 3 4 5", diag.LineSkipped},
		{"bad position", "VT x 0 0 0 1 0 0 0", diag.LineSkipped},
		{"bad uv", "VT 0 0 0 0 1 0 zero 0", diag.LineSkipped},
		{"empty index directive", "IDX10", diag.LineSkipped},
		{"bare texture directive", "TEXTURE", diag.LineSkipped},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frag, diags := Parse(strings.NewReader(tc.line+"\n"), "bad.obj")
			if len(frag.Vertices) != 0 {
				t.Errorf("vertices = %d, want 0", len(frag.Vertices))
			}
			if got := diags.Count(tc.kind); got != 1 {
				t.Errorf("%v diagnostics = %d, want 1 (%v)", tc.kind, got, diags)
			}
		})
	}
}

func TestParseBadIndexFieldSkippedAlone(t *testing.T) {
	src := "VT 0 0 0 0 1 0 0 0\nVT 1 0 0 0 1 0 1 0\nVT 1 1 0 0 1 0 1 1\nIDX10 0 x 1 2\n"
	frag, diags := Parse(strings.NewReader(src), "mixed.obj")

	if got := diags.Count(diag.IndexFieldSkipped); got != 1 {
		t.Fatalf("IndexFieldSkipped = %d, want 1", got)
	}
	// The remaining values regroup: 0 1 2 forms one triangle.
	if got := frag.TriangleCount(); got != 1 {
		t.Errorf("triangles = %d, want 1", got)
	}
}

func TestParseNegativeIndexDropsTriple(t *testing.T) {
	src := "VT 0 0 0 0 1 0 0 0\nIDX10 0 0 -1\n"
	frag, diags := Parse(strings.NewReader(src), "neg.obj")

	if got := frag.TriangleCount(); got != 0 {
		t.Errorf("triangles = %d, want 0", got)
	}
	if got := diags.Total(diag.TrianglesDropped); got != 1 {
		t.Errorf("dropped = %d, want 1", got)
	}
}

func TestParseLastTextureWins(t *testing.T) {
	src := "TEXTURE old.png\nTEXTURE liveries\\A320_DAL.png\n"
	frag, _ := Parse(strings.NewReader(src), "tex.obj")

	if frag.Texture != "liveries/A320_DAL.png" {
		t.Errorf("texture = %q, want %q", frag.Texture, "liveries/A320_DAL.png")
	}
}

func TestParseIgnoresCommentsAndUnknownDirectives(t *testing.T) {
	src := `# preamble
ATTR_no_blend
ANIM_begin
VT 0 0 0 0 1 0 0 0
ANIM_end
LIGHTS 0 1
`
	frag, diags := Parse(strings.NewReader(src), "anim.obj")
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if len(frag.Vertices) != 1 {
		t.Errorf("vertices = %d, want 1", len(frag.Vertices))
	}
}

func TestParseFileMissing(t *testing.T) {
	_, _, err := ParseFile(filepath.Join(t.TempDir(), "nope.obj"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
